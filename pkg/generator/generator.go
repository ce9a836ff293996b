// Package generator is the public entry point: it turns manifest requests
// into expanded declarations and renders them through one of two backends.
package generator

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/cmmoran/patternweave/internal/codedom"
	"github.com/cmmoran/patternweave/internal/expand"
	"github.com/cmmoran/patternweave/internal/gogen"
	"github.com/cmmoran/patternweave/internal/pattern"
	"github.com/cmmoran/patternweave/internal/render"
	"github.com/cmmoran/patternweave/pkg/manifest"
)

// Generator expands pattern requests. Construct with New; the zero value is
// not usable.
type Generator struct {
	opts *Options
	log  *slog.Logger
}

func New(opts ...Option) *Generator {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}
	o.Normalize()
	return &Generator{opts: o, log: slog.Default()}
}

func NewWithOpts(o *Options) *Generator {
	o.Normalize()
	return &Generator{opts: o, log: slog.Default()}
}

// Opts exposes the normalized options in effect.
func (g *Generator) Opts() *Options { return g.opts }

// documentable is satisfied by every pattern generator; toggling regenerates
// the member documentation from current state.
type documentable interface {
	SetHasComments(bool)
}

func (g *Generator) document(p documentable) {
	if g.opts.Documented {
		p.SetHasComments(true)
	}
}

func parseScope(s string) (pattern.Scope, error) {
	switch strings.ToLower(s) {
	case "", "instance":
		return pattern.Instance, nil
	case "static":
		return pattern.Static, nil
	default:
		return pattern.Instance, &expand.ConfigError{Reason: fmt.Sprintf("unknown scope %q", s)}
	}
}

func parseLoad(s string) (pattern.LoadStrategy, error) {
	switch strings.ToLower(s) {
	case "", "eager":
		return pattern.Eager, nil
	case "lazy":
		return pattern.Lazy, nil
	default:
		return pattern.Eager, &expand.ConfigError{Reason: fmt.Sprintf("unknown load strategy %q", s)}
	}
}

var eventNames = map[string]pattern.EventCategory{
	"clearing":   pattern.EventClearing,
	"cleared":    pattern.EventCleared,
	"inserting":  pattern.EventInserting,
	"inserted":   pattern.EventInserted,
	"removing":   pattern.EventRemoving,
	"removed":    pattern.EventRemoved,
	"setting":    pattern.EventSetting,
	"set":        pattern.EventSet,
	"validating": pattern.EventValidating,
	"all":        pattern.EventAll,
}

func parseEvents(names []string) (pattern.EventCategory, error) {
	var out pattern.EventCategory
	for _, n := range names {
		bit, ok := eventNames[strings.ToLower(n)]
		if !ok {
			return 0, &expand.ConfigError{Reason: fmt.Sprintf("unknown event category %q", n)}
		}
		out |= bit
	}
	return out, nil
}

func fieldSpecs(fields []manifest.Field) []pattern.FieldSpec {
	out := make([]pattern.FieldSpec, 0, len(fields))
	for _, f := range fields {
		out = append(out, pattern.FieldSpec{Name: f.Name, Type: codedom.Type(f.Type)})
	}
	return out
}

// ownerClass wraps member declarations in a public class so standalone
// requests render as complete types.
func ownerClass(name string, members []codedom.Decl) *codedom.TypeDecl {
	cls := codedom.NewClass(name, codedom.Public)
	cls.Members = members
	return cls
}

// Expand dispatches one request to its pattern generator and returns the
// top-level declarations it produces.
func (g *Generator) Expand(req manifest.Request) ([]codedom.Decl, error) {
	switch strings.ToLower(req.Kind) {
	case "observable":
		scope, err := parseScope(req.Scope)
		if err != nil {
			return nil, err
		}
		owner := req.Owner
		if owner == "" {
			owner = req.Name + "Host"
		}
		p, err := pattern.NewObservableProperty(req.Name, codedom.Type(req.Type), codedom.Type(owner), scope)
		if err != nil {
			return nil, err
		}
		g.document(p)
		return []codedom.Decl{ownerClass(owner, p.Members())}, nil

	case "singleton":
		strategy, err := parseLoad(req.Load)
		if err != nil {
			return nil, err
		}
		p, err := pattern.NewSingleton(req.Name, strategy)
		if err != nil {
			return nil, err
		}
		g.document(p)
		return []codedom.Decl{ownerClass(req.Name, p.Members())}, nil

	case "collection":
		categories, err := parseEvents(req.Events)
		if err != nil {
			return nil, err
		}
		p, err := pattern.NewTypedCollection(req.Name, codedom.Type(req.Element), categories, req.SuppressLoad)
		if err != nil {
			return nil, err
		}
		g.document(p)
		return p.Members(), nil

	case "flags":
		p, err := pattern.NewFlagsEnum(req.Name, req.Members)
		if err != nil {
			return nil, err
		}
		g.document(p)
		return []codedom.Decl{p.Declaration()}, nil

	case "attribute":
		targets := req.Targets
		if len(targets) == 0 {
			targets = []string{"All"}
		}
		mask, err := pattern.TargetsMask(targets...)
		if err != nil {
			return nil, err
		}
		p, err := pattern.NewCustomAttribute(req.Name, mask, fieldSpecs(req.Fields)...)
		if err != nil {
			return nil, err
		}
		g.document(p)
		return []codedom.Decl{p.Declaration()}, nil

	case "exception":
		p, err := pattern.NewCustomException(req.Name, fieldSpecs(req.Fields)...)
		if err != nil {
			return nil, err
		}
		g.document(p)
		return []codedom.Decl{p.Declaration()}, nil

	case "async":
		scope, err := parseScope(req.Scope)
		if err != nil {
			return nil, err
		}
		ret := codedom.TypeVoid
		if req.Type != "" {
			ret = codedom.Type(req.Type)
		}
		owner := req.Owner
		if owner == "" {
			return nil, &expand.InvalidArgumentError{Name: "owner", Reason: "async requests need an owning type"}
		}
		p, err := pattern.NewAsyncOperation(req.Name, ret, fieldSpecs(req.Fields), codedom.Type(owner), scope)
		if err != nil {
			return nil, err
		}
		g.document(p)
		return []codedom.Decl{ownerClass(owner, p.Members())}, nil

	case "guard":
		scope, err := parseScope(req.Scope)
		if err != nil {
			return nil, err
		}
		owner := req.Owner
		if owner == "" {
			owner = req.Name + "Host"
		}
		p, err := pattern.NewProcessGuard(req.Name, req.Predicate, codedom.Type(owner), scope)
		if err != nil {
			return nil, err
		}
		g.document(p)
		return []codedom.Decl{ownerClass(owner, p.Members())}, nil

	case "disposable":
		owner := req.Name
		if owner == "" {
			return nil, &expand.InvalidArgumentError{Name: "name", Reason: "disposable requests need a type name"}
		}
		p, err := pattern.NewDisposable(codedom.Type(owner))
		if err != nil {
			return nil, err
		}
		g.document(p)
		cls := codedom.NewClass(owner, codedom.Public)
		p.Attach(cls)
		return []codedom.Decl{cls}, nil

	default:
		return nil, &expand.ConfigError{Reason: fmt.Sprintf("unknown pattern kind %q", req.Kind)}
	}
}

// RenderSource expands every request and renders the declarations as
// target-language source text.
func (g *Generator) RenderSource(reqs []manifest.Request) (string, error) {
	var all []codedom.Decl
	for _, req := range reqs {
		decls, err := g.Expand(req)
		if err != nil {
			return "", fmt.Errorf("expand %s %q: %w", req.Kind, req.Name, err)
		}
		g.log.Debug("expanded request", "kind", req.Kind, "name", req.Name, "decls", len(decls))
		all = append(all, decls...)
	}
	return render.Decls(all), nil
}

// RenderGo lowers the subset of kinds with native Go spellings and returns
// formatted Go source. Kinds outside that subset are a configuration error;
// use the source backend for them.
func (g *Generator) RenderGo(reqs []manifest.Request) ([]byte, error) {
	gopts := &gogen.Options{Package: g.opts.Package, SupportPath: g.opts.SupportPath}
	if err := gopts.Normalize(); err != nil {
		return nil, err
	}
	f := gogen.File(gopts)

	for _, req := range reqs {
		var err error
		switch strings.ToLower(req.Kind) {
		case "singleton":
			err = gogen.Singleton(f, req.Name)
		case "flags":
			err = gogen.FlagsEnum(f, gopts, req.Name, req.Members)
		case "observable":
			owner := req.Owner
			if owner == "" {
				owner = req.Name + "Host"
			}
			err = gogen.ObservableProperty(f, owner, req.Name, req.Type)
		case "collection":
			var categories pattern.EventCategory
			categories, err = parseEvents(req.Events)
			if err == nil {
				err = gogen.TypedCollection(f, gopts, req.Name, req.Element, categories, req.SuppressLoad)
			}
		default:
			err = &expand.ConfigError{Reason: fmt.Sprintf("kind %q has no Go lowering", req.Kind)}
		}
		if err != nil {
			return nil, fmt.Errorf("lower %s %q: %w", req.Kind, req.Name, err)
		}
		g.log.Debug("lowered request", "kind", req.Kind, "name", req.Name)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("render go source: %w", err)
	}
	out, err := imports.Process(g.opts.OutFile, buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("fix imports: %w", err)
	}
	return out, nil
}
