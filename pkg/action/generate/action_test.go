package generate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/patternweave/pkg/generator"
	"github.com/cmmoran/patternweave/pkg/manifest"
)

func writeManifest(t *testing.T, dir string, m *manifest.Manifest) string {
	t.Helper()
	path := filepath.Join(dir, "patterns.yaml")
	require.NoError(t, m.Save(path))
	return path
}

func TestRunSourceBackend(tt *testing.T) {
	dir := tt.TempDir()
	path := writeManifest(tt, dir, &manifest.Manifest{
		Requests: []manifest.Request{
			{Kind: "singleton", Name: "Broker", Load: "eager"},
			{Kind: "flags", Name: "Permissions", Members: []string{"Read", "Write"}},
		},
	})

	opts := generator.NewOptions()
	opts.ManifestPath = path
	opts.OutDir = filepath.Join(dir, "gen")

	out, err := Run(opts)
	require.NoError(tt, err)

	data, err := os.ReadFile(out)
	require.NoError(tt, err)
	require.Contains(tt, string(data), "class Broker")
	require.Contains(tt, string(data), "enum Permissions")

	// the run records every request against the written file
	m, err := manifest.Load(path)
	require.NoError(tt, err)
	require.Equal(tt, out, m.RecordFile("singleton", "Broker"))
	require.Equal(tt, out, m.RecordFile("flags", "Permissions"))
}

func TestRunGoBackend(tt *testing.T) {
	dir := tt.TempDir()
	path := writeManifest(tt, dir, &manifest.Manifest{
		Package: "widgets",
		Requests: []manifest.Request{
			{Kind: "observable", Name: "Size", Type: "int", Owner: "Widget"},
		},
	})

	opts := generator.NewOptions()
	opts.ManifestPath = path
	opts.OutDir = filepath.Join(dir, "gen")
	opts.Backend = generator.BackendGo

	out, err := Run(opts)
	require.NoError(tt, err)
	data, err := os.ReadFile(out)
	require.NoError(tt, err)
	require.Contains(tt, string(data), "package widgets")
	require.Contains(tt, string(data), "func (o *Widget) SetSize(value int)")
}

func TestRunEmptyManifest(tt *testing.T) {
	dir := tt.TempDir()
	opts := generator.NewOptions()
	opts.ManifestPath = filepath.Join(dir, "patterns.yaml")
	opts.OutDir = filepath.Join(dir, "gen")

	_, err := Run(opts)
	require.Error(tt, err)
}

func TestDiff(tt *testing.T) {
	dir := tt.TempDir()
	path := writeManifest(tt, dir, &manifest.Manifest{
		Requests: []manifest.Request{
			{Kind: "singleton", Name: "Broker"},
		},
	})

	opts := generator.NewOptions()
	opts.ManifestPath = path
	opts.OutDir = filepath.Join(dir, "gen")

	_, err := Run(opts)
	require.NoError(tt, err)

	// unchanged requests diff clean against the recorded output
	d, err := Diff(opts, "singleton", "Broker")
	require.NoError(tt, err)
	require.Empty(tt, d)

	// a drifted recorded file produces a non-empty diff
	m, err := manifest.Load(path)
	require.NoError(tt, err)
	require.NoError(tt, os.WriteFile(m.RecordFile("singleton", "Broker"), []byte("stale"), 0o644))
	d, err = Diff(opts, "singleton", "Broker")
	require.NoError(tt, err)
	require.NotEmpty(tt, d)

	_, err = Diff(opts, "singleton", "Missing")
	require.Error(tt, err)
}
