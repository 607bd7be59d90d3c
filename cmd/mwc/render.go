package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vango-dev/mwc/internal/demo"
	"github.com/vango-dev/mwc/pkg/assets"
	"github.com/vango-dev/mwc/pkg/element"
	"github.com/vango-dev/mwc/pkg/render"
	"github.com/vango-dev/mwc/pkg/vdom"
)

func renderCmd(opts *globalOptions) *cobra.Command {
	var (
		output string
		live   bool
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo page to HTML",
		Long: `Render the demo page once and write the HTML document.

By default the page is static: no bridge script, no live session.
Use --live to include the bridge so the page connects to a running
'mwc serve'.

Examples:
  mwc render
  mwc render -o index.html --pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return renderPage(w, cfg.Title, cfg.Assets.Prefix, !live, pretty)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file (- for stdout)")
	cmd.Flags().BoolVar(&live, "live", false, "Include the bridge script")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the output")

	return cmd
}

func renderPage(w io.Writer, title, modulesPrefix string, static, pretty bool) error {
	tree := demo.New().Render()
	vdom.AssignHIDs(tree, vdom.NewHIDGenerator())

	r := render.NewRenderer(render.RendererConfig{Pretty: pretty})
	return r.RenderPage(w, render.PageData{
		Body:    tree,
		Title:   title,
		Styles:  []string{demo.Styles},
		Modules: render.ModuleURLs(element.Default(), assets.NewResolver(nil, modulesPrefix)),
		Static:  static,
	})
}
