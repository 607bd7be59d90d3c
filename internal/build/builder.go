package build

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/vango-dev/mwc/internal/config"
	"github.com/vango-dev/mwc/internal/errors"
	"github.com/vango-dev/mwc/pkg/assets"
	"github.com/zeebo/blake3"
)

// DefaultHashLength is the number of hex digits of the content hash kept in
// fingerprinted names.
const DefaultHashLength = 8

// Result contains the build output.
type Result struct {
	// Duration is how long the build took.
	Duration time.Duration

	// Output is the output directory.
	Output string

	// Manifest maps original module names to fingerprinted names.
	Manifest map[string]string

	// Files is the number of files written, manifest excluded.
	Files int

	// Bytes is the total size of the files written.
	Bytes int64
}

// Options configures the builder.
type Options struct {
	// Source is the module directory. Defaults to the configured asset
	// directory.
	Source string

	// Output is the output directory. Defaults to "dist".
	Output string

	// HashLength is the number of hash digits in fingerprinted names.
	HashLength int

	// Clean removes the output directory before building.
	Clean bool

	// OnProgress is called with progress updates.
	OnProgress func(step string)
}

// Builder fingerprints a module directory.
type Builder struct {
	config  *config.Config
	options Options
}

// New creates a new builder.
func New(cfg *config.Config, options Options) *Builder {
	if options.Source == "" && cfg != nil {
		options.Source = cfg.AssetsDir()
	}
	if options.Output == "" {
		options.Output = "dist"
	}
	if options.HashLength <= 0 || options.HashLength > 64 {
		options.HashLength = DefaultHashLength
	}
	return &Builder{config: cfg, options: options}
}

// Build copies the source directory into the output directory and writes
// the manifest.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()

	src, err := b.sourceDir()
	if err != nil {
		return nil, err
	}
	out, err := filepath.Abs(b.options.Output)
	if err != nil {
		return nil, errors.New("M402").Wrap(err)
	}

	if b.options.Clean {
		b.progress("Cleaning " + out)
		if err := os.RemoveAll(out); err != nil {
			return nil, errors.New("M402").Wrap(err)
		}
	}
	if err := os.MkdirAll(out, 0755); err != nil {
		return nil, errors.New("M402").Wrap(err)
	}

	result := &Result{Output: out, Manifest: make(map[string]string)}
	b.progress("Fingerprinting " + src)

	err = filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p == out {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == assets.ManifestName {
			return nil
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}

		name := rel
		if fingerprinted(rel) {
			name = hashedName(rel, b.hash(data))
			result.Manifest[rel] = name
		}

		dst := filepath.Join(out, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return err
		}
		result.Files++
		result.Bytes += int64(len(data))
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.New("M402").Wrap(err)
	}

	b.progress("Writing manifest...")
	if err := writeManifest(out, result.Manifest); err != nil {
		return nil, errors.New("M403").Wrap(err)
	}

	result.Duration = time.Since(start)
	return result, nil
}

func (b *Builder) sourceDir() (string, error) {
	if b.options.Source == "" {
		return "", errors.New("M401").
			WithSuggestion("Set assets.dir in mwc.json or pass --src")
	}
	src, err := filepath.Abs(b.options.Source)
	if err != nil {
		return "", errors.New("M401").Wrap(err)
	}
	fi, err := os.Stat(src)
	if err != nil {
		return "", errors.New("M401").WithDetail(err.Error())
	}
	if !fi.IsDir() {
		return "", errors.New("M401").WithDetail(src + " is not a directory")
	}
	return src, nil
}

// hash returns the leading hex digits of the BLAKE3 digest of data.
func (b *Builder) hash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])[:b.options.HashLength]
}

// Clean removes the build output directory.
func (b *Builder) Clean() error {
	return os.RemoveAll(b.options.Output)
}

// progress reports build progress.
func (b *Builder) progress(step string) {
	if b.options.OnProgress != nil {
		b.options.OnProgress(step)
	}
}

// fingerprinted reports whether a file gets a hashed name.
func fingerprinted(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".js", ".mjs", ".css":
		return true
	}
	return false
}

// hashedName inserts hash before the extension: "a/b.js" becomes
// "a/b.<hash>.js".
func hashedName(name, hash string) string {
	ext := path.Ext(name)
	return fmt.Sprintf("%s.%s%s", strings.TrimSuffix(name, ext), hash, ext)
}

// writeManifest writes the asset manifest.
func writeManifest(outputDir string, manifest map[string]string) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(filepath.Join(outputDir, assets.ManifestName), data, 0644)
}
