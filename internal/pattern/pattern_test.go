package pattern

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/patternweave/internal/codedom"
	"github.com/cmmoran/patternweave/internal/expand"
	"github.com/cmmoran/patternweave/internal/render"
)

func renderAll(t *testing.T, decls []codedom.Decl) string {
	t.Helper()
	return render.Decls(decls)
}

func TestObservablePropertyMembers(tt *testing.T) {
	owner := codedom.Type("Widget")
	p, err := NewObservableProperty("size", codedom.Type("int"), owner, Instance)
	require.NoError(tt, err)

	members := p.Members()
	require.Len(tt, members, 6)
	require.Same(tt, codedom.Decl(p.Delegate), members[0])
	require.Same(tt, codedom.Decl(p.Args), members[1])
	require.Same(tt, codedom.Decl(p.Field), members[2])
	require.Same(tt, codedom.Decl(p.Property), members[3])
	require.Same(tt, codedom.Decl(p.Event), members[4])
	require.Same(tt, codedom.Decl(p.Invoker), members[5])

	require.Equal(tt, "SizeChangedEventHandler", p.Delegate.Name)
	require.Equal(tt, "SizeChangedEventArgs", p.Args.Name)
	require.Equal(tt, "size", p.Field.Name)
	require.Equal(tt, "Size", p.Property.Name)
	require.Equal(tt, "SizeChanged", p.Event.Name)
	require.Equal(tt, "OnSizeChanged", p.Invoker.Name)

	out := renderAll(tt, members)
	require.Contains(tt, out, "if ((value.Equals(this.size) == false))")
	require.Contains(tt, out, "int oldValue = this.size;")
	require.Contains(tt, out, "this.OnSizeChanged(new SizeChangedEventArgs(oldValue, value));")
	require.Contains(tt, out, "if ((this.SizeChanged != null))")
	require.Contains(tt, out, "this.SizeChanged(this, e);")
}

func TestObservablePropertyStatic(tt *testing.T) {
	owner := codedom.Type("Registry")
	p, err := NewObservableProperty("Count", codedom.Type("long"), owner, Static)
	require.NoError(tt, err)

	out := renderAll(tt, p.Members())
	require.Contains(tt, out, "Registry.count")
	require.Contains(tt, out, "Registry.CountChanged(null, e);", "static events carry a null sender")
	require.NotContains(tt, out, "this.count")
	require.True(tt, p.Field.Attributes.Has(codedom.Static))
	require.True(tt, p.Property.Attributes.Has(codedom.Static))
}

func TestObservablePropertyValidation(tt *testing.T) {
	_, err := NewObservableProperty("", codedom.Type("int"), codedom.Type("Widget"), Instance)
	require.Error(tt, err)
	_, err = NewObservableProperty("Size", nil, codedom.Type("Widget"), Instance)
	require.Error(tt, err)
	_, err = NewObservableProperty("Size", codedom.Type("int"), nil, Instance)
	require.Error(tt, err)
}

func TestObservableCommentToggleIsIdempotent(tt *testing.T) {
	p, err := NewObservableProperty("Size", codedom.Type("int"), codedom.Type("Widget"), Instance)
	require.NoError(tt, err)

	require.Empty(tt, p.Field.DocLines())

	p.SetHasComments(true)
	first := renderAll(tt, p.Members())
	require.Contains(tt, first, "/// <summary>")

	p.SetHasComments(false)
	stripped := renderAll(tt, p.Members())
	require.NotContains(tt, stripped, "///")

	p.SetHasComments(true)
	second := renderAll(tt, p.Members())
	require.Equal(tt, first, second, "off/on round trip must reproduce the documentation verbatim")
}

func TestObservableCommentNarrativeSurvivesToggle(tt *testing.T) {
	p, err := NewObservableProperty("Size", codedom.Type("int"), codedom.Type("Widget"), Instance)
	require.NoError(tt, err)

	require.NoError(tt, p.SetComment("size", "Cached extent in device pixels."))
	require.Error(tt, p.SetComment("nosuch", "text"))

	p.SetHasComments(true)
	require.Contains(tt, renderAll(tt, p.Members()), "Cached extent in device pixels.")

	p.SetHasComments(false)
	p.SetHasComments(true)
	require.Contains(tt, renderAll(tt, p.Members()), "Cached extent in device pixels.")
}

func TestSingletonEager(tt *testing.T) {
	s, err := NewSingleton("Broker", Eager)
	require.NoError(tt, err)

	members := s.Members()
	require.Len(tt, members, 4)
	require.Nil(tt, s.Holder)

	out := renderAll(tt, members)
	require.Contains(tt, out, "private static Broker instance = new Broker();")
	require.Contains(tt, out, "return Broker.instance;")
	require.True(tt, s.TypeInitializer.Attributes.Has(codedom.Static))
	require.True(tt, s.Constructor.Attributes.Has(codedom.Private))
	require.Empty(tt, s.Constructor.Params)
}

func TestSingletonLazy(tt *testing.T) {
	s, err := NewSingleton("Broker", Lazy)
	require.NoError(tt, err)

	members := s.Members()
	require.Len(tt, members, 3)
	require.NotNil(tt, s.Holder)
	require.Equal(tt, "BrokerHolder", s.Holder.Name)
	require.True(tt, s.Holder.Attributes.Has(codedom.Private))

	out := renderAll(tt, members)
	require.Contains(tt, out, "private static Broker instance = new Broker();")
	require.Contains(tt, out, "return BrokerHolder.instance;")
	require.Contains(tt, out, "return BrokerHolder.Instance;")

	_, err = NewSingleton("", Lazy)
	require.Error(tt, err)
}

func TestProcessGuard(tt *testing.T) {
	g, err := NewProcessGuard("Load", "", codedom.Type("Catalog"), Instance)
	require.NoError(tt, err)

	require.Equal(tt, "loadCount", g.Field.Name)
	require.Equal(tt, "BeginLoad", g.Begin.Name)
	require.Equal(tt, "EndLoad", g.End.Name)
	require.Equal(tt, "IsLoading", g.Predicate.Name)
	require.True(tt, g.Predicate.Attributes.Has(codedom.Family))
	require.Len(tt, g.Members(), 4)

	out := renderAll(tt, g.Members())
	require.Contains(tt, out, "this.loadCount = (this.loadCount + 1);")
	require.Contains(tt, out, "if ((this.loadCount > 0))")
	require.Contains(tt, out, "this.loadCount = (this.loadCount - 1);")
	require.Contains(tt, out, "return (this.loadCount != 0);")
}

func TestProcessGuardCustomPredicate(tt *testing.T) {
	g, err := NewProcessGuard("import", "InBulkImport", codedom.Type("Catalog"), Static)
	require.NoError(tt, err)
	require.Equal(tt, "BeginImport", g.Begin.Name)
	require.Equal(tt, "InBulkImport", g.Predicate.Name)
	require.Contains(tt, renderAll(tt, g.Members()), "Catalog.importCount")
}

func TestFlagsEnum(tt *testing.T) {
	e, err := NewFlagsEnum("Permissions", []string{"None", "Read", "Write", "Execute"})
	require.NoError(tt, err)

	out := render.Decl(e.Declaration())
	require.Contains(tt, out, "[Flags()]")
	require.Contains(tt, out, "None = 1,")
	require.Contains(tt, out, "Read = 2,")
	require.Contains(tt, out, "Write = 4,")
	require.Contains(tt, out, "Execute = 8,")

	names, err := e.Names(6)
	require.NoError(tt, err)
	require.Equal(tt, []string{"Write", "Read"}, names)

	_, err = e.Names(1 << 60)
	require.Error(tt, err)
}

func TestFlagsEnumWidthLimit(tt *testing.T) {
	wide := make([]string, 65)
	for i := range wide {
		wide[i] = "M" + string(rune('A'+i%26)) + string(rune('0'+i/26))
	}
	_, err := NewFlagsEnum("Wide", wide)
	var cfgErr *expand.ConfigError
	require.ErrorAs(tt, err, &cfgErr)

	_, err = NewFlagsEnum("Exact", wide[:64])
	require.NoError(tt, err)
}

func TestCustomAttribute(tt *testing.T) {
	mask, err := TargetsMask("Class", "Method")
	require.NoError(tt, err)
	require.Equal(tt, uint64(68), mask)

	a, err := NewCustomAttribute("Audit", mask,
		FieldSpec{Name: "owner", Type: codedom.TypeString},
		FieldSpec{Name: "level", Type: codedom.TypeInt},
	)
	require.NoError(tt, err)

	out := render.Decl(a.Declaration())
	require.Contains(tt, out, "[AttributeUsage(AttributeTargets.Method | AttributeTargets.Class)]")
	require.Contains(tt, out, "sealed class AuditAttribute : Attribute")
	require.Contains(tt, out, "private string owner;")
	require.Contains(tt, out, "public AuditAttribute()")
	require.Contains(tt, out, "public AuditAttribute(string owner, int level)")
	require.Contains(tt, out, "public string Owner")
	require.NotNil(tt, a.Constructor)
}

func TestCustomAttributeNoFields(tt *testing.T) {
	a, err := NewCustomAttribute("Marker", 32767)
	require.NoError(tt, err)
	require.Nil(tt, a.Constructor)

	out := render.Decl(a.Declaration())
	require.Contains(tt, out, "[AttributeUsage(AttributeTargets.All)]")
	require.Contains(tt, out, "public MarkerAttribute()")
}

func TestTargetsMaskUnknownName(tt *testing.T) {
	_, err := TargetsMask("Widget")
	var cfgErr *expand.ConfigError
	require.ErrorAs(tt, err, &cfgErr)
}

func TestCustomException(tt *testing.T) {
	e, err := NewCustomException("QuotaExceeded",
		FieldSpec{Name: "limit", Type: codedom.TypeLong},
	)
	require.NoError(tt, err)

	out := render.Decl(e.Declaration())
	require.Contains(tt, out, "class QuotaExceededException : ApplicationException")
	require.Contains(tt, out, "[Serializable()]")
	require.Contains(tt, out, "public QuotaExceededException(long limit)")
	require.Contains(tt, out, "public QuotaExceededException(string message, long limit)")
	require.Contains(tt, out, "public QuotaExceededException(string message, Exception innerException, long limit)")
	require.Contains(tt, out, "protected QuotaExceededException(SerializationInfo info, StreamingContext context)")
	require.Contains(tt, out, `info.AddValue("limit", this.limit);`)
	require.Contains(tt, out, "public override void GetObjectData(SerializationInfo info, StreamingContext context)")
	require.Contains(tt, out, "base.GetObjectData(info, context);")
	require.Contains(tt, out, "public long Limit")
}

func TestDisposable(tt *testing.T) {
	d, err := NewDisposable(codedom.Type("Session"))
	require.NoError(tt, err)

	cls := codedom.NewClass("Session", codedom.Public)
	d.Attach(cls)

	out := render.Decl(cls)
	require.Contains(tt, out, "class Session : IDisposable")
	require.Contains(tt, out, "private bool disposed = false;")
	require.Contains(tt, out, "public void Dispose()")
	require.Contains(tt, out, "this.Dispose(true);")
	require.Contains(tt, out, "this.disposed = true;")
	require.Contains(tt, out, "GC.SuppressFinalize(this);")
	require.Contains(tt, out, "protected virtual void Dispose(bool disposing)")
	require.Contains(tt, out, "ObjectDisposedException")
}

func TestAsyncOperation(tt *testing.T) {
	a, err := NewAsyncOperation("Fetch", codedom.TypeInt,
		[]FieldSpec{{Name: "url", Type: codedom.TypeString}},
		codedom.Type("Client"), Instance)
	require.NoError(tt, err)

	out := renderAll(tt, a.Members())
	require.Contains(tt, out, "delegate int FetchDelegate(string url);")
	require.Contains(tt, out, "private FetchDelegate fetchDelegate;")
	require.Contains(tt, out, "public IAsyncResult BeginFetch(string url, AsyncCallback callback, object state)")
	require.Contains(tt, out, "if ((this.fetchDelegate == null))")
	require.Contains(tt, out, "new FetchDelegate(this.Fetch)")
	require.Contains(tt, out, "return this.fetchDelegate.BeginInvoke(url, callback, state);")
	require.Contains(tt, out, "public IAsyncResult BeginFetch(string url)")
	require.Contains(tt, out, "return this.BeginFetch(url, null, null);")
	require.Contains(tt, out, "public int EndFetch(IAsyncResult asyncResult)")
	require.Contains(tt, out, "InvalidOperationException")
	require.Contains(tt, out, "return this.fetchDelegate.EndInvoke(asyncResult);")
}

func TestAsyncOperationVoid(tt *testing.T) {
	a, err := NewAsyncOperation("Flush", codedom.TypeVoid, nil, codedom.Type("Client"), Instance)
	require.NoError(tt, err)

	out := renderAll(tt, a.Members())
	require.Contains(tt, out, "public void EndFlush(IAsyncResult asyncResult)")
	require.Contains(tt, out, "this.flushDelegate.EndInvoke(asyncResult);")
	require.NotContains(tt, out, "return this.flushDelegate.EndInvoke")
}

// Declarations own their statement trees outright; a reference to the same
// field or event must be a distinct node in each body so customizing one
// member cannot leak into another.
func TestGeneratedBodiesShareNoExpressionNodes(tt *testing.T) {
	owner := codedom.Type("Catalog")

	g, err := NewProcessGuard("Load", "", owner, Instance)
	require.NoError(tt, err)
	beginRef := g.Begin.Body[0].(*codedom.AssignStmt).Left
	endRef := g.End.Body[0].(*codedom.IfStmt).Then[0].(*codedom.AssignStmt).Left
	predRef := g.Predicate.Body[0].(*codedom.ReturnStmt).Result.(*codedom.BinaryExpr).Left
	require.NotSame(tt, beginRef, endRef)
	require.NotSame(tt, beginRef, predRef)
	require.NotSame(tt, endRef, predRef)

	p, err := NewObservableProperty("Size", codedom.TypeInt, owner, Instance)
	require.NoError(tt, err)
	getRef := p.Property.Get[0].(*codedom.ReturnStmt).Result
	setRef := p.Property.Set[0].(*codedom.IfStmt).Then[0].(*codedom.VarDeclStmt).Init
	require.NotSame(tt, getRef, setRef)
	invIf := p.Invoker.Body[0].(*codedom.IfStmt)
	condRef := invIf.Cond.(*codedom.BinaryExpr).Left
	callRef := invIf.Then[0].(*codedom.ExprStmt).X.(*codedom.DelegateInvokeExpr).Target
	require.NotSame(tt, condRef, callRef)

	d, err := NewDisposable(owner)
	require.NoError(tt, err)
	disposeRef := d.Dispose.Body[0].(*codedom.IfStmt).Cond.(*codedom.BinaryExpr).Left
	checkRef := d.CheckNot.Body[0].(*codedom.IfStmt).Cond.(*codedom.BinaryExpr).Left
	require.NotSame(tt, disposeRef, checkRef)

	a, err := NewAsyncOperation("Calculate", codedom.TypeInt, nil, owner, Instance)
	require.NoError(tt, err)
	asyncBegin := a.Begin.Body[0].(*codedom.IfStmt).Cond.(*codedom.BinaryExpr).Left
	asyncEnd := a.End.Body[0].(*codedom.IfStmt).Cond.(*codedom.BinaryExpr).Left
	require.NotSame(tt, asyncBegin, asyncEnd)
}
