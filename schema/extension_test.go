package schema

import (
	"errors"
	"testing"

	"github.com/golangyang/yangc/internal/testutil"
	"github.com/golangyang/yangc/stmt"
)

// recordPlugin counts lifecycle callbacks and can be told to fail them.
type recordPlugin struct {
	compiled     int
	validated    int
	freed        int
	failCompile  bool
	failValidate bool
}

func (p *recordPlugin) Compile(cc *CompileContext, pext *stmt.ExtInstance, inst *ExtInstance) error {
	p.compiled++
	if p.failCompile {
		return errors.New("refused by plugin")
	}
	return inst.SetData("compiled:" + pext.Arg)
}

func (p *recordPlugin) Validate(inst *ExtInstance, node *DataNode) error {
	p.validated++
	if p.failValidate {
		return errors.New("rejected by plugin")
	}
	return nil
}

func (p *recordPlugin) Free(inst *ExtInstance) { p.freed++ }

func registerRecordPlugin(t *testing.T, ctx *Context, p *recordPlugin) {
	t.Helper()
	err := ctx.RegisterPlugin("vendor-exts", "", "tag", &PluginDescriptor{
		ID:      "record-v1",
		Version: APIVersion,
		Plugin:  p,
	})
	testutil.NoError(t, err)
}

func taggedLeaf(name, arg string) *stmt.Statement {
	return leafOf(name, "string").WithExt(&stmt.ExtInstance{
		Module: "vendor-exts",
		Name:   "tag",
		Arg:    arg,
	})
}

func TestExtensionLifecycle(t *testing.T) {
	ctx := NewContext()
	plugin := &recordPlugin{}
	registerRecordPlugin(t, ctx, plugin)

	mod, err := ctx.CompileModule(testModule("app", "a",
		taggedLeaf("x", "hello"),
	), 0)
	testutil.NoError(t, err)
	testutil.Equal(t, 1, plugin.compiled)

	inst := mod.Node("x").Extension("tag")
	testutil.NotNil(t, inst)
	testutil.Equal(t, StateCompiled, inst.State())
	testutil.Equal(t, "hello", inst.Argument())
	testutil.Equal(t, "vendor-exts", inst.DefiningModule())
	testutil.Equal(t, ParentNode, inst.ParentKind())
	testutil.True(t, inst.Parent().(*Node) == mod.Node("x"))
	testutil.Equal(t, "compiled:hello", inst.Data().(string))

	// the compiled form is immutable
	err = inst.SetData("tampered")
	testutil.ErrorIs(t, err, ErrInvalidExtensionData)
	testutil.Equal(t, "compiled:hello", inst.Data().(string))

	// validate any number of times without state transitions
	for range 3 {
		testutil.NoError(t, ctx.ValidateData(&DataNode{Schema: mod.Node("x"), Value: "v"}))
	}
	testutil.Equal(t, 3, plugin.validated)
	testutil.Equal(t, StateCompiled, inst.State())

	// teardown frees exactly once, even if Free is called again
	ctx.Free()
	testutil.Equal(t, 1, plugin.freed)
	testutil.Equal(t, StateFreed, inst.State())
	ctx.Free()
	testutil.Equal(t, 1, plugin.freed)
}

func TestExtensionFreeWithoutValidate(t *testing.T) {
	ctx := NewContext()
	plugin := &recordPlugin{}
	registerRecordPlugin(t, ctx, plugin)

	_, err := ctx.CompileModule(testModule("app", "a",
		taggedLeaf("x", "one"),
		taggedLeaf("y", "two"),
	), 0)
	testutil.NoError(t, err)

	ctx.Free()
	testutil.Equal(t, 0, plugin.validated)
	testutil.Equal(t, 2, plugin.freed)
}

func TestExtensionCompileFailureAbortsModule(t *testing.T) {
	ctx := NewContext()
	plugin := &recordPlugin{failCompile: true}
	registerRecordPlugin(t, ctx, plugin)

	_, err := ctx.CompileModule(testModule("app", "a",
		taggedLeaf("x", "boom"),
	), 0)
	testutil.ErrorIs(t, err, ErrInvalidExtensionData)
	testutil.Contains(t, err.Error(), "refused by plugin")
	testutil.True(t, ctx.Module("app") == nil)
}

func TestExtensionFreedOnAbortedCompile(t *testing.T) {
	ctx := NewContext()
	plugin := &recordPlugin{}
	registerRecordPlugin(t, ctx, plugin)

	// the extension compiles before the dangling leafref fails the drain
	_, err := ctx.CompileModule(testModule("app", "a",
		taggedLeaf("x", "kept"),
		stmt.New(stmt.KindLeaf, "broken",
			stmt.New(stmt.KindType, "leafref",
				stmt.New(stmt.KindPath, "/a:no-such-node"),
			),
		),
	), 0)
	testutil.ErrorIs(t, err, ErrUnresolvedTarget)
	testutil.True(t, ctx.Module("app") == nil)

	// the aborted module is never published, so teardown cannot reach its
	// instance; the compile error path frees it, exactly once
	testutil.Equal(t, 1, plugin.compiled)
	testutil.Equal(t, 1, plugin.freed)
	ctx.Free()
	testutil.Equal(t, 1, plugin.freed)
}

func TestExtensionUnknown(t *testing.T) {
	ctx := NewContext()

	// no plugin registered for this extension
	_, err := ctx.CompileModule(testModule("app", "a",
		taggedLeaf("x", "hello"),
	), 0)
	testutil.ErrorIs(t, err, ErrUnknownExtension)
}

func TestExtensionDefinitionChecked(t *testing.T) {
	ctx := NewContext()
	plugin := &recordPlugin{}
	registerRecordPlugin(t, ctx, plugin)

	// the defining module is compiled but does not define "tag"
	_, err := ctx.CompileModule(testModule("vendor-exts", "v",
		stmt.New(stmt.KindExtension, "other",
			stmt.New(stmt.KindArgument, "name"),
		),
	), 0)
	testutil.NoError(t, err)

	_, err = ctx.CompileModule(testModule("app", "a",
		taggedLeaf("x", "hello"),
	), 0)
	testutil.ErrorIs(t, err, ErrUnknownExtension)
	testutil.Contains(t, err.Error(), "does not define")
}

func TestExtensionRevisionFromDefiningModule(t *testing.T) {
	ctx := NewContext()
	plugin := &recordPlugin{}
	registerRecordPlugin(t, ctx, plugin)

	_, err := ctx.CompileModule(testModule("vendor-exts", "v",
		stmt.New(stmt.KindRevision, "2024-03-01"),
		stmt.New(stmt.KindExtension, "tag",
			stmt.New(stmt.KindArgument, "name"),
		),
	), 0)
	testutil.NoError(t, err)

	mod, err := ctx.CompileModule(testModule("app", "a",
		taggedLeaf("x", "hello"),
	), 0)
	testutil.NoError(t, err)
	testutil.NotNil(t, mod.Node("x").Extension("tag"))
}

func TestExtensionOnModuleAndTypedef(t *testing.T) {
	ctx := NewContext()
	plugin := &recordPlugin{}
	registerRecordPlugin(t, ctx, plugin)

	parsed := testModule("app", "a",
		stmt.New(stmt.KindTypedef, "percent",
			stmt.New(stmt.KindType, "uint8"),
		).WithExt(&stmt.ExtInstance{Module: "vendor-exts", Name: "tag", Arg: "on-typedef"}),
		leafOf("load", "a:percent"),
	)
	parsed.WithExt(&stmt.ExtInstance{Module: "vendor-exts", Name: "tag", Arg: "on-module"})

	mod, err := ctx.CompileModule(parsed, 0)
	testutil.NoError(t, err)

	testutil.Len(t, mod.Extensions(), 1)
	testutil.Equal(t, ParentModule, mod.Extensions()[0].ParentKind())
	testutil.Equal(t, "on-module", mod.Extensions()[0].Argument())

	td := mod.Typedef("percent")
	testutil.Len(t, td.Extensions(), 1)
	testutil.Equal(t, ParentTypedef, td.Extensions()[0].ParentKind())
}

func TestExtensionOnEnumValue(t *testing.T) {
	ctx := NewContext()
	plugin := &recordPlugin{}
	registerRecordPlugin(t, ctx, plugin)

	enumUp := stmt.New(stmt.KindEnum, "up")
	enumUp.WithExt(&stmt.ExtInstance{Module: "vendor-exts", Name: "tag", Arg: "on-up"})

	mod, err := ctx.CompileModule(testModule("app", "a",
		stmt.New(stmt.KindLeaf, "status", enumeration(
			enumUp,
			stmt.New(stmt.KindEnum, "down"),
		)),
	), 0)
	testutil.NoError(t, err)

	up := mod.Node("status").Type().Enum("up")
	testutil.Len(t, up.Exts, 1)
	testutil.Equal(t, ParentTypeEnum, up.Exts[0].ParentKind())
	testutil.True(t, up.Exts[0].Parent().(*EnumValue) == up)
}

func TestExtensionTypeUseSiteCopy(t *testing.T) {
	ctx := NewContext()
	plugin := &recordPlugin{}
	registerRecordPlugin(t, ctx, plugin)

	typeUse := stmt.New(stmt.KindType, "string")
	typeUse.WithExt(&stmt.ExtInstance{Module: "vendor-exts", Name: "tag", Arg: "on-type"})

	mod, err := ctx.CompileModule(testModule("app", "a",
		stmt.New(stmt.KindLeaf, "tagged", typeUse),
		leafOf("plain", "string"),
	), 0)
	testutil.NoError(t, err)

	tagged := mod.Node("tagged").Type()
	testutil.Len(t, tagged.Extensions(), 1)
	// the shared builtin is copied for the tagged use, never mutated
	plain := mod.Node("plain").Type()
	testutil.Len(t, plain.Extensions(), 0)
	testutil.False(t, tagged == plain)
}

func TestExtensionFreeOrderReversed(t *testing.T) {
	var order []string
	ctx := NewContext()
	err := ctx.RegisterPlugin("vendor-exts", "", "tag", &PluginDescriptor{
		ID:      "order-v1",
		Version: APIVersion,
		Plugin: &funcPlugin{
			free: func(inst *ExtInstance) { order = append(order, inst.Argument()) },
		},
	})
	testutil.NoError(t, err)

	_, err = ctx.CompileModule(testModule("first", "f", taggedLeaf("x", "f1")), 0)
	testutil.NoError(t, err)
	_, err = ctx.CompileModule(testModule("second", "s",
		taggedLeaf("x", "s1"),
		taggedLeaf("y", "s2"),
	), 0)
	testutil.NoError(t, err)

	ctx.Free()
	testutil.Len(t, order, 3)
	// later modules and later instances are freed first
	testutil.Equal(t, "s2", order[0])
	testutil.Equal(t, "s1", order[1])
	testutil.Equal(t, "f1", order[2])
}

// funcPlugin adapts standalone funcs to the Plugin interface.
type funcPlugin struct {
	compile  func(cc *CompileContext, pext *stmt.ExtInstance, inst *ExtInstance) error
	validate func(inst *ExtInstance, node *DataNode) error
	free     func(inst *ExtInstance)
}

func (p *funcPlugin) Compile(cc *CompileContext, pext *stmt.ExtInstance, inst *ExtInstance) error {
	if p.compile == nil {
		return nil
	}
	return p.compile(cc, pext, inst)
}

func (p *funcPlugin) Validate(inst *ExtInstance, node *DataNode) error {
	if p.validate == nil {
		return nil
	}
	return p.validate(inst, node)
}

func (p *funcPlugin) Free(inst *ExtInstance) {
	if p.free != nil {
		p.free(inst)
	}
}
