package generator

import (
	"path/filepath"
	"strings"
)

// Options control a generation run.
//
// ManifestPath – pattern manifest to read
// OutDir       – output directory
// OutFile      – output filename for the rendered source
// Package      – package name stamped on Go output
// SupportPath  – import path of the runtime helpers linked by Go output
// Backend      – "source" renders the imperative tree, "go" lowers to Go
// Documented   – synthesize structured documentation on every member
type Options struct {
	ManifestPath string `json:"manifest,omitempty" yaml:"manifest,omitempty" toml:"manifest,omitempty" mapstructure:"manifest,omitempty"`
	OutDir       string `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	OutFile      string `json:"out_file,omitempty" yaml:"out_file,omitempty" toml:"out_file,omitempty" mapstructure:"out_file,omitempty"`
	Package      string `json:"package,omitempty" yaml:"package,omitempty" toml:"package,omitempty" mapstructure:"package,omitempty"`
	SupportPath  string `json:"support_path,omitempty" yaml:"support_path,omitempty" toml:"support_path,omitempty" mapstructure:"support_path,omitempty"`
	Backend      string `json:"backend,omitempty" yaml:"backend,omitempty" toml:"backend,omitempty" mapstructure:"backend,omitempty"`
	Documented   bool   `json:"documented,omitempty" yaml:"documented,omitempty" toml:"documented,omitempty" mapstructure:"documented,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		ManifestPath: "patterns.yaml",
		OutDir:       "gen",
		OutFile:      "patterns_gen.cs",
		Package:      "patterns",
		Backend:      BackendSource,
	}
}

const (
	BackendSource = "source"
	BackendGo     = "go"
)

func (o *Options) Normalize() {
	if strings.Contains(o.OutDir, ".") {
		o.OutDir, _ = filepath.Abs(o.OutDir)
	}
	if len(o.OutDir) == 0 {
		o.OutDir = "gen"
	}
	if len(o.OutFile) == 0 {
		if o.Backend == BackendGo {
			o.OutFile = "patterns_gen.go"
		} else {
			o.OutFile = "patterns_gen.cs"
		}
	}
	if o.Package == "" {
		o.Package = "patterns"
	}
	if o.Backend == "" {
		o.Backend = BackendSource
	}
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithManifest(p string) Option    { return func(o *Options) { o.ManifestPath = p } }
func WithOutDir(d string) Option      { return func(o *Options) { o.OutDir = d } }
func WithOutFile(f string) Option     { return func(o *Options) { o.OutFile = f } }
func WithPackage(p string) Option     { return func(o *Options) { o.Package = p } }
func WithSupportPath(p string) Option { return func(o *Options) { o.SupportPath = p } }
func WithBackend(b string) Option     { return func(o *Options) { o.Backend = strings.ToLower(b) } }
func WithDocumented() Option          { return func(o *Options) { o.Documented = true } }
