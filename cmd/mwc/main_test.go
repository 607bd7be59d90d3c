package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level, format string
		wantErr       bool
	}{
		{"info", "text", false},
		{"debug", "json", false},
		{"WARN", "", false},
		{"loud", "text", true},
		{"info", "xml", true},
	}
	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			_, err := newLogger(tt.level, tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("newLogger() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	if err := renderPage(&buf, "Demo", "/_mwc/modules/", true, false); err != nil {
		t.Fatalf("renderPage() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<title>Demo</title>",
		`<script type="module" src="/_mwc/modules/mwc-dialog.js"></script>`,
		`<mwc-dialog escape-key-action="cancel" heading="Discard draft?" scrim-click-action="cancel" data-hid="h4">`,
		`<span dialogAction="discard" slot="primaryAction">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "bridge.js") {
		t.Error("static page should not include the bridge")
	}
}

func TestVersionShort(t *testing.T) {
	cmd := versionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--short"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != version {
		t.Errorf("output = %q, want %q", buf.String(), version)
	}
}

func TestBuildCommand(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "mwc-dialog.js"), []byte("export {};"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "dist")

	opts := &globalOptions{dir: t.TempDir()}
	cmd := buildCmd(opts)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--src", src, "--output", out, "--hash-length", "10"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("build error = %v", err)
	}

	if !strings.Contains(buf.String(), "mwc-dialog.js -> mwc-dialog.") {
		t.Errorf("output = %q", buf.String())
	}
	if _, err := os.Stat(filepath.Join(out, "manifest.json")); err != nil {
		t.Errorf("manifest not written: %v", err)
	}
}
