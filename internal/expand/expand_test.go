package expand

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/patternweave/internal/codedom"
	"github.com/cmmoran/patternweave/internal/render"
)

func TestNamesNext(tt *testing.T) {
	names := NewNames()
	require.Equal(tt, "resource1", names.Next("resource"))
	require.Equal(tt, "resource2", names.Next("resource"))
	require.Equal(tt, "enumerator1", names.Next("enumerator"))
	require.Equal(tt, "resource3", names.Next("resource"))

	// separate allocators never observe each other
	other := NewNames()
	require.Equal(tt, "resource1", other.Next("resource"))
}

func TestUsing(tt *testing.T) {
	tests := []struct {
		name     string
		category ResourceCategory
		want     []string
		wantNot  []string
	}{
		{
			name:     "reference release is null-guarded",
			category: ResourceReference,
			want: []string{
				"Stream resource1 = OpenFile();",
				"if ((resource1 != null))",
				"resource1.Dispose();",
			},
		},
		{
			name:     "value release is unconditional",
			category: ResourceValue,
			want:     []string{"resource1.Dispose();"},
			wantNot:  []string{"!= null"},
		},
	}
	for _, tc := range tests {
		tt.Run(tc.name, func(t *testing.T) {
			stmts, err := Using(NewNames(),
				codedom.Invoke(nil, "OpenFile"),
				codedom.Type("Stream"),
				tc.category,
				codedom.Do(codedom.Invoke(nil, "Work")),
			)
			require.NoError(t, err)
			out := render.Stmts(stmts)
			for _, want := range tc.want {
				require.Contains(t, out, want)
			}
			for _, not := range tc.wantNot {
				require.NotContains(t, out, not)
			}
			require.Contains(t, out, "try")
			require.Contains(t, out, "finally")
			require.Contains(t, out, "Work();")
		})
	}
}

func TestUsingNilResource(tt *testing.T) {
	_, err := Using(NewNames(), nil, codedom.Type("Stream"), ResourceReference)
	var argErr *InvalidArgumentError
	require.ErrorAs(tt, err, &argErr)
	require.Equal(tt, "resource", argErr.Name)
}

func TestUsingVar(tt *testing.T) {
	stmts, err := UsingVar("conn", ResourceReference, codedom.Do(codedom.Invoke(nil, "Query")))
	require.NoError(tt, err)
	out := render.Stmts(stmts)
	require.NotContains(tt, out, "conn =", "must not redeclare the resource")
	require.Contains(tt, out, "if ((conn != null))")
	require.Contains(tt, out, "conn.Dispose();")
}

func TestLock(tt *testing.T) {
	stmts, err := Lock(NewNames(),
		codedom.Property(codedom.This(), "SyncRoot"),
		codedom.Do(codedom.Invoke(nil, "Mutate")),
	)
	require.NoError(tt, err)
	out := render.Stmts(stmts)

	// the guarded expression is cached once so enter and exit agree
	require.Contains(tt, out, "object syncTemp1 = this.SyncRoot;")
	require.Contains(tt, out, "System.Threading.Monitor.Enter(syncTemp1);")
	require.Contains(tt, out, "System.Threading.Monitor.Exit(syncTemp1);")
	require.Contains(tt, out, "finally")

	_, err = Lock(NewNames(), nil)
	require.Error(tt, err)
}

func TestClassifyEnumerator(tt *testing.T) {
	disposableStruct := codedom.Register("ValueCursor", codedom.KindStruct, codedom.TypeIDisposable.Name)
	disposableClass := codedom.Register("RefCursor", codedom.KindClass, codedom.TypeIDisposable.Name)
	plainStruct := codedom.Register("PlainCursor", codedom.KindStruct)
	unknown := codedom.Type("MysteryCursor")

	tests := []struct {
		name string
		typ  *codedom.TypeRef
		want EnumeratorClass
	}{
		{"interface", codedom.TypeIEnumerator, EnumeratorInterface},
		{"disposable value", disposableStruct, EnumeratorDisposableValue},
		{"disposable reference", disposableClass, EnumeratorDisposableReference},
		{"plain", plainStruct, EnumeratorPlain},
	}
	for _, tc := range tests {
		tt.Run(tc.name, func(t *testing.T) {
			got, err := ClassifyEnumerator(tc.typ)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	tt.Run("unknown kind is rejected", func(t *testing.T) {
		_, err := ClassifyEnumerator(unknown)
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
	})
}

func TestForEach(tt *testing.T) {
	element := codedom.Type("Employee")
	collection := codedom.Var("employees")
	body := codedom.Do(codedom.Invoke(nil, "Visit", codedom.Var("entry")))

	tt.Run("interface enumerator gets guarded disposal", func(t *testing.T) {
		stmts, err := ForEach(NewNames(), "entry", element, collection, body)
		require.NoError(t, err)
		out := render.Stmts(stmts)
		require.Contains(t, out, "enumerator1 = employees.GetEnumerator();")
		require.Contains(t, out, "for (; enumerator1.MoveNext(); )")
		require.Contains(t, out, "Employee entry = ((Employee)(enumerator1.Current));")
		require.Contains(t, out, "enumerator1 is IDisposable")
		require.Contains(t, out, "((IDisposable)(enumerator1)).Dispose();")
	})

	tt.Run("disposable value enumerator releases unconditionally", func(t *testing.T) {
		en := codedom.Register("ListCursor", codedom.KindStruct, codedom.TypeIDisposable.Name)
		stmts, err := ForEachWith(NewNames(), "entry", element, en, collection, body)
		require.NoError(t, err)
		out := render.Stmts(stmts)
		require.Contains(t, out, "enumerator1.Dispose();")
		require.NotContains(t, out, "!= null")
		require.NotContains(t, out, " is ")
	})

	tt.Run("disposable reference enumerator releases behind null check", func(t *testing.T) {
		en := codedom.Register("NodeCursor", codedom.KindClass, codedom.TypeIDisposable.Name)
		stmts, err := ForEachWith(NewNames(), "entry", element, en, collection, body)
		require.NoError(t, err)
		out := render.Stmts(stmts)
		require.Contains(t, out, "if ((enumerator1 != null))")
		require.Contains(t, out, "enumerator1.Dispose();")
		require.NotContains(t, out, " is ")
	})

	tt.Run("plain enumerator skips try/finally", func(t *testing.T) {
		en := codedom.Register("RawCursor", codedom.KindClass)
		stmts, err := ForEachWith(NewNames(), "entry", element, en, collection, body)
		require.NoError(t, err)
		out := render.Stmts(stmts)
		require.NotContains(t, out, "try")
		require.NotContains(t, out, "finally")
		require.Contains(t, out, "MoveNext")
	})

	tt.Run("empty element name is rejected", func(t *testing.T) {
		_, err := ForEach(NewNames(), "", element, collection, body)
		require.Error(t, err)
	})
}

func TestTruth(tt *testing.T) {
	cmp := codedom.Binary(codedom.OpLt, codedom.Var("a"), codedom.Var("b"))
	require.Same(tt, codedom.Expr(cmp), Truth(cmp), "comparisons pass through untouched")

	out := render.Stmts([]codedom.Stmt{codedom.Do(Truth(codedom.Var("flag")))})
	require.Contains(tt, out, "(flag == true)")
}

func TestNegate(tt *testing.T) {
	tests := []struct {
		name string
		in   codedom.Expr
		want string
	}{
		{"eq flips to neq", codedom.Binary(codedom.OpEq, codedom.Var("a"), codedom.Var("b")), "(a != b)"},
		{"lt flips to gte", codedom.Binary(codedom.OpLt, codedom.Var("a"), codedom.Var("b")), "(a >= b)"},
		{"lte flips to gt", codedom.Binary(codedom.OpLte, codedom.Var("a"), codedom.Var("b")), "(a > b)"},
		{"bare value compares against false", codedom.Var("flag"), "(flag == false)"},
		{"double negation normalizes to truth", codedom.Not(codedom.Var("flag")), "(flag == true)"},
	}
	for _, tc := range tests {
		tt.Run(tc.name, func(t *testing.T) {
			out := render.Stmts([]codedom.Stmt{codedom.Do(Negate(tc.in))})
			require.Contains(t, out, tc.want)
		})
	}
}

func TestAsserts(tt *testing.T) {
	tests := []struct {
		name string
		stmt codedom.Stmt
		want []string
	}{
		{
			name: "not null",
			stmt: AssertNotNull("value"),
			want: []string{"if ((value == null))", `throw new ArgumentNullException("value");`},
		},
		{
			name: "not empty",
			stmt: AssertNotEmpty("name"),
			want: []string{"(name == null)", "(name.Length == 0)", "ArgumentException"},
		},
		{
			name: "in range",
			stmt: AssertInRange("count", codedom.Lit(0), codedom.Lit(10)),
			want: []string{"(count < 0)", "(count > 10)", `throw new ArgumentOutOfRangeException("count");`},
		},
		{
			name: "not in range",
			stmt: AssertNotInRange("code", codedom.Lit(100), codedom.Lit(199)),
			want: []string{"(code >= 100)", "(code <= 199)", "ArgumentOutOfRangeException"},
		},
		{
			name: "is instance",
			stmt: AssertIsInstance("item", codedom.Type("Employee")),
			want: []string{"!((item is Employee))", "ArgumentException"},
		},
		{
			name: "enum defined",
			stmt: AssertEnumDefined("mode", codedom.Type("FileMode")),
			want: []string{"Enum.IsDefined(typeof(FileMode), mode)", "InvalidEnumArgumentException"},
		},
	}
	for _, tc := range tests {
		tt.Run(tc.name, func(t *testing.T) {
			out := render.Stmts([]codedom.Stmt{tc.stmt})
			for _, want := range tc.want {
				require.Contains(t, out, want)
			}
		})
	}
}
