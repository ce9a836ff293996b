package generator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/patternweave/internal/expand"
	"github.com/cmmoran/patternweave/pkg/manifest"
)

func TestOptionsDefaults(tt *testing.T) {
	o := NewOptions()
	o.Normalize()
	require.Equal(tt, "patterns.yaml", o.ManifestPath)
	require.Equal(tt, BackendSource, o.Backend)
	require.Equal(tt, "patterns_gen.cs", o.OutFile)

	goOpts := &Options{Backend: BackendGo}
	goOpts.Normalize()
	require.Equal(tt, "patterns_gen.go", goOpts.OutFile)
}

func TestFunctionalOptions(tt *testing.T) {
	g := New(
		WithManifest("m.yaml"),
		WithBackend("GO"),
		WithPackage("widgets"),
		WithDocumented(),
	)
	require.Equal(tt, "m.yaml", g.Opts().ManifestPath)
	require.Equal(tt, BackendGo, g.Opts().Backend)
	require.Equal(tt, "widgets", g.Opts().Package)
	require.True(tt, g.Opts().Documented)
}

func TestExpandDispatch(tt *testing.T) {
	g := New()
	tests := []struct {
		name string
		req  manifest.Request
		want []string
	}{
		{
			name: "observable",
			req:  manifest.Request{Kind: "observable", Name: "Size", Type: "int", Owner: "Widget"},
			want: []string{"class Widget", "public int Size", "event SizeChangedEventHandler SizeChanged;"},
		},
		{
			name: "observable default owner",
			req:  manifest.Request{Kind: "observable", Name: "Size", Type: "int"},
			want: []string{"class SizeHost"},
		},
		{
			name: "singleton lazy",
			req:  manifest.Request{Kind: "singleton", Name: "Broker", Load: "lazy"},
			want: []string{"class Broker", "class BrokerHolder", "private Broker()"},
		},
		{
			name: "collection",
			req:  manifest.Request{Kind: "collection", Name: "", Element: "Order", Events: []string{"inserting"}, SuppressLoad: true},
			want: []string{"class Orders : CollectionBase", "public event OrderInsertEventHandler Inserting;", "BeginLoad"},
		},
		{
			name: "flags",
			req:  manifest.Request{Kind: "flags", Name: "Permissions", Members: []string{"Read", "Write"}},
			want: []string{"[Flags()]", "public enum Permissions", "Read = 1,", "Write = 2,"},
		},
		{
			name: "attribute",
			req:  manifest.Request{Kind: "attribute", Name: "Audit", Targets: []string{"Class"}, Fields: []manifest.Field{{Name: "owner", Type: "string"}}},
			want: []string{"sealed class AuditAttribute : Attribute", "[AttributeUsage(AttributeTargets.Class)]", "public string Owner"},
		},
		{
			name: "exception",
			req:  manifest.Request{Kind: "exception", Name: "QuotaExceeded", Fields: []manifest.Field{{Name: "limit", Type: "long"}}},
			want: []string{"class QuotaExceededException : ApplicationException", "GetObjectData"},
		},
		{
			name: "async",
			req:  manifest.Request{Kind: "async", Name: "Fetch", Type: "int", Owner: "Client", Fields: []manifest.Field{{Name: "url", Type: "string"}}},
			want: []string{"class Client", "BeginFetch", "EndFetch", "IAsyncResult"},
		},
		{
			name: "guard",
			req:  manifest.Request{Kind: "guard", Name: "Load", Owner: "Catalog"},
			want: []string{"class Catalog", "BeginLoad", "EndLoad", "IsLoading"},
		},
		{
			name: "disposable",
			req:  manifest.Request{Kind: "disposable", Name: "Session"},
			want: []string{"class Session : IDisposable", "GC.SuppressFinalize(this);"},
		},
	}
	for _, tc := range tests {
		tt.Run(tc.name, func(t *testing.T) {
			out, err := g.RenderSource([]manifest.Request{tc.req})
			require.NoError(t, err)
			for _, want := range tc.want {
				require.Contains(t, out, want)
			}
		})
	}
}

func TestExpandErrors(tt *testing.T) {
	g := New()
	tests := []struct {
		name string
		req  manifest.Request
	}{
		{"unknown kind", manifest.Request{Kind: "widget", Name: "X"}},
		{"unknown scope", manifest.Request{Kind: "observable", Name: "Size", Type: "int", Scope: "global"}},
		{"unknown load strategy", manifest.Request{Kind: "singleton", Name: "B", Load: "deferred"}},
		{"unknown event", manifest.Request{Kind: "collection", Element: "Order", Events: []string{"mutating"}}},
		{"unknown target", manifest.Request{Kind: "attribute", Name: "A", Targets: []string{"Widget"}}},
		{"async without owner", manifest.Request{Kind: "async", Name: "Fetch"}},
	}
	for _, tc := range tests {
		tt.Run(tc.name, func(t *testing.T) {
			_, err := g.Expand(tc.req)
			require.Error(t, err)
		})
	}
}

func TestExpandDocumented(tt *testing.T) {
	plain := New()
	out, err := plain.RenderSource([]manifest.Request{{Kind: "singleton", Name: "Broker"}})
	require.NoError(tt, err)
	require.NotContains(tt, out, "///")

	documented := New(WithDocumented())
	out, err = documented.RenderSource([]manifest.Request{{Kind: "singleton", Name: "Broker"}})
	require.NoError(tt, err)
	require.Contains(tt, out, "/// <summary>")
}

func TestRenderGo(tt *testing.T) {
	g := New(WithBackend(BackendGo), WithPackage("widgets"))
	reqs := []manifest.Request{
		{Kind: "singleton", Name: "Broker"},
		{Kind: "flags", Name: "Permissions", Members: []string{"Read", "Write"}},
		{Kind: "observable", Name: "Size", Type: "int", Owner: "Widget"},
		{Kind: "collection", Name: "Orders", Element: "Order", Events: []string{"inserting"}, SuppressLoad: true},
	}
	out, err := g.RenderGo(reqs)
	require.NoError(tt, err)
	src := string(out)
	require.Contains(tt, src, "package widgets")
	require.Contains(tt, src, "func BrokerInstance() *Broker")
	require.Contains(tt, src, "type Permissions uint64")
	require.Contains(tt, src, "func (o *Widget) SetSize(value int)")
	require.Contains(tt, src, "type Orders struct")
}

func TestRenderGoRejectsUnloweredKinds(tt *testing.T) {
	g := New(WithBackend(BackendGo))
	_, err := g.RenderGo([]manifest.Request{{Kind: "exception", Name: "Quota"}})
	var cfgErr *expand.ConfigError
	require.ErrorAs(tt, err, &cfgErr)
}
