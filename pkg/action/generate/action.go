package generate

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"

	"github.com/cmmoran/patternweave/pkg/generator"
	"github.com/cmmoran/patternweave/pkg/manifest"
)

// Run loads the manifest, expands every request through the configured
// backend, writes the output file, and records it back into the manifest.
// It returns the written path.
func Run(opts *generator.Options) (string, error) {
	gen := generator.NewWithOpts(opts)
	opts = gen.Opts()

	m, err := manifest.Load(opts.ManifestPath)
	if err != nil {
		return "", err
	}
	if len(m.Requests) == 0 {
		return "", fmt.Errorf("manifest %s holds no requests", opts.ManifestPath)
	}
	if m.Package != "" {
		opts.Package = m.Package
	}

	var data []byte
	switch opts.Backend {
	case generator.BackendGo:
		data, err = gen.RenderGo(m.Requests)
	default:
		var src string
		src, err = gen.RenderSource(m.Requests)
		data = []byte(src)
	}
	if err != nil {
		return "", err
	}

	if err = os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	outFile := filepath.Clean(filepath.Join(opts.OutDir, opts.OutFile))
	if err = os.WriteFile(outFile, data, 0o644); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}

	for _, req := range m.Requests {
		m.AddRecord(manifest.Record{Kind: req.Kind, Name: req.Name, File: outFile})
	}
	if err = m.Save(opts.ManifestPath); err != nil {
		return "", err
	}

	slog.Default().Info("generated patterns",
		"manifest", opts.ManifestPath, "backend", opts.Backend,
		"requests", len(m.Requests), "file", outFile)
	return outFile, nil
}

// Diff regenerates the manifest's requests in memory and returns a textual
// diff against the file recorded for the named request. An empty diff means
// the recorded output is current.
func Diff(opts *generator.Options, kind, name string) (string, error) {
	gen := generator.NewWithOpts(opts)
	opts = gen.Opts()

	m, err := manifest.Load(opts.ManifestPath)
	if err != nil {
		return "", err
	}
	recorded := m.RecordFile(kind, name)
	if recorded == "" {
		return "", fmt.Errorf("no record for %s %q", kind, name)
	}
	previous, err := os.ReadFile(recorded)
	if err != nil {
		return "", fmt.Errorf("read recorded output: %w", err)
	}

	var data []byte
	switch opts.Backend {
	case generator.BackendGo:
		data, err = gen.RenderGo(m.Requests)
	default:
		var src string
		src, err = gen.RenderSource(m.Requests)
		data = []byte(src)
	}
	if err != nil {
		return "", err
	}

	return cmp.Diff(string(previous), string(data)), nil
}
