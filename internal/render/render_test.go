package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/patternweave/internal/codedom"
)

func TestDeclClass(tt *testing.T) {
	cls := codedom.NewClass("Counter", codedom.Public|codedom.Final)
	cls.BaseTypes = []*codedom.TypeRef{codedom.Type("CounterBase")}
	cls.SetDoc([]string{"<summary>", "Counts.", "</summary>"})

	field := codedom.NewField("count", codedom.TypeInt, codedom.Private)
	field.Init = codedom.Lit(0)

	ctor := codedom.NewConstructor(codedom.Public, codedom.Param("seed", codedom.TypeInt))
	ctor.Body = []codedom.Stmt{
		codedom.Assign(codedom.Field(codedom.This(), "count"), codedom.Arg("seed")),
	}

	bump := codedom.NewMethod("Bump", codedom.Public, codedom.TypeInt)
	bump.Body = []codedom.Stmt{
		codedom.Assign(codedom.Field(codedom.This(), "count"),
			codedom.Binary(codedom.OpAdd, codedom.Field(codedom.This(), "count"), codedom.Lit(1))),
		codedom.Return(codedom.Field(codedom.This(), "count")),
	}

	cls.Members = []codedom.Decl{field, ctor, bump}

	want := `/// <summary>
/// Counts.
/// </summary>
public sealed class Counter : CounterBase
{
    private int count = 0;

    public Counter(int seed)
    {
        this.count = seed;
    }

    public int Bump()
    {
        this.count = (this.count + 1);
        return this.count;
    }
}
`
	require.Equal(tt, want, Decl(cls))
}

func TestDeclEnum(tt *testing.T) {
	enum := codedom.NewEnum("Mode", codedom.Public)
	enum.Members = []codedom.Decl{
		&codedom.EnumMemberDecl{Name: "Off", Value: codedom.Lit(uint64(1))},
		&codedom.EnumMemberDecl{Name: "On", Value: codedom.Lit(uint64(2))},
	}

	out := Decl(enum)
	require.Contains(tt, out, "public enum Mode")
	require.Contains(tt, out, "Off = 1,")
	require.Contains(tt, out, "On = 2,")
}

func TestDeclPropertyAndIndexer(tt *testing.T) {
	prop := codedom.NewProperty("Size", codedom.TypeInt, codedom.Public)
	prop.HasGet = true
	prop.Get = []codedom.Stmt{codedom.Return(codedom.Field(codedom.This(), "size"))}
	prop.HasSet = true
	prop.Set = []codedom.Stmt{codedom.Assign(codedom.Field(codedom.This(), "size"), codedom.Arg("value"))}

	out := Decl(prop)
	require.Contains(tt, out, "public int Size")
	require.Contains(tt, out, "get")
	require.Contains(tt, out, "set")
	require.Contains(tt, out, "return this.size;")

	idx := codedom.NewProperty("Item", codedom.Type("Widget"), codedom.Public)
	idx.Params = []*codedom.ParamDecl{codedom.Param("index", codedom.TypeInt)}
	idx.HasGet = true
	idx.Get = []codedom.Stmt{codedom.Return(codedom.Index(codedom.Property(codedom.This(), "List"), codedom.Arg("index")))}
	require.Contains(tt, Decl(idx), "public Widget this[int index]")
}

func TestStaticConstructorAndChains(tt *testing.T) {
	cls := codedom.NewClass("Holder", codedom.Private)

	static := codedom.NewConstructor(codedom.Static)
	chained := codedom.NewConstructor(codedom.Public, codedom.Param("n", codedom.TypeInt))
	chained.HasChain = true
	chained.ChainArgs = []codedom.Expr{codedom.Arg("n"), codedom.Null()}
	based := codedom.NewConstructor(codedom.Public, codedom.Param("m", codedom.TypeString))
	based.BaseArgs = []codedom.Expr{codedom.Arg("m")}

	cls.Members = []codedom.Decl{static, chained, based}
	out := Decl(cls)
	require.Contains(tt, out, "static Holder()")
	require.Contains(tt, out, "public Holder(int n) : this(n, null)")
	require.Contains(tt, out, "public Holder(string m) : base(m)")
}

func TestStmts(tt *testing.T) {
	stmts := []codedom.Stmt{
		codedom.DeclareVar("i", codedom.TypeInt, codedom.Lit(0)),
		codedom.If(
			codedom.Binary(codedom.OpLt, codedom.Var("i"), codedom.Lit(10)),
			codedom.Do(codedom.Invoke(nil, "Work")),
		),
		codedom.TryFinally(
			[]codedom.Stmt{codedom.Do(codedom.Invoke(nil, "Risky"))},
			[]codedom.Stmt{codedom.Do(codedom.Invoke(nil, "Cleanup"))},
		),
		codedom.For(
			nil,
			codedom.Invoke(codedom.Var("it"), "MoveNext"),
			nil,
			codedom.Do(codedom.Invoke(nil, "Step")),
		),
		codedom.Throw(codedom.New(codedom.Type("FailureException"), codedom.Lit("boom"))),
	}

	want := `int i = 0;
if ((i < 10))
{
    Work();
}
try
{
    Risky();
}
finally
{
    Cleanup();
}
for (; it.MoveNext(); )
{
    Step();
}
throw new FailureException("boom");
`
	require.Equal(tt, want, Stmts(stmts))
}

func TestExprs(tt *testing.T) {
	tests := []struct {
		name string
		expr codedom.Expr
		want string
	}{
		{"cast", codedom.Cast(codedom.Type("Widget"), codedom.Var("x")), "((Widget)(x));"},
		{"typeof", codedom.TypeOf(codedom.Type("Widget")), "typeof(Widget);"},
		{"is", codedom.Is(codedom.Var("x"), codedom.Type("Widget")), "(x is Widget);"},
		{"not", codedom.Not(codedom.Var("ok")), "!(ok);"},
		{"new array", codedom.NewArray(codedom.Type("Widget"), codedom.Lit(4)), "new Widget[4];"},
		{"index", codedom.Index(codedom.Var("xs"), codedom.Lit(2)), "xs[2];"},
		{"delegate invoke", codedom.InvokeDelegate(codedom.Var("handler"), codedom.This(), codedom.Var("e")), "handler(this, e);"},
		{"string literal", codedom.Lit(`say "hi"`), `"say \"hi\"";`},
		{"null", codedom.Null(), "null;"},
		{"bitor", codedom.Binary(codedom.OpBitOr, codedom.Var("a"), codedom.Var("b")), "(a | b);"},
	}
	for _, tc := range tests {
		tt.Run(tc.name, func(t *testing.T) {
			out := Stmts([]codedom.Stmt{codedom.Do(tc.expr)})
			require.Equal(t, tc.want+"\n", out)
		})
	}
}
