// Package build fingerprints element modules for production.
//
// Every .js, .mjs and .css file under the source directory is copied into
// the output directory with a content hash in its name. Other files are
// copied unchanged. A manifest maps each original name to its hashed name:
//
//	{
//	  "mwc-dialog.js": "mwc-dialog.3f9a0c1d.js",
//	  "theme/styles.css": "theme/styles.8b41e2aa.css"
//	}
//
// Serving the output directory with assets.manifest set to manifest.json
// makes pages reference the hashed names, which can be cached forever.
//
// # Usage
//
//	builder := build.New(cfg, build.Options{Output: "dist"})
//	result, err := builder.Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Fingerprinted %d modules in %s\n", len(result.Manifest), result.Duration)
package build
