package schema

import (
	"testing"

	"github.com/golangyang/yangc/internal/testutil"
	"github.com/golangyang/yangc/stmt"
)

func annotationExt(name string, children ...*stmt.Statement) *stmt.ExtInstance {
	return &stmt.ExtInstance{
		Module:   "ietf-yang-metadata",
		Name:     "annotation",
		Arg:      name,
		Children: children,
	}
}

func TestAnnotationPlugin(t *testing.T) {
	ctx := NewContext()

	parsed := testModule("annotated", "an")
	parsed.WithExt(annotationExt("last-modified",
		stmt.New(stmt.KindType, "string"),
		stmt.New(stmt.KindUnits, "seconds"),
		stmt.New(stmt.KindDescription, "time of last change"),
	))

	mod, err := ctx.CompileModule(parsed, 0)
	testutil.NoError(t, err)

	testutil.Len(t, mod.Extensions(), 1)
	inst := mod.Extensions()[0]
	testutil.Equal(t, "annotation", inst.Name())
	testutil.Equal(t, "last-modified", inst.Argument())
	testutil.Equal(t, StateCompiled, inst.State())

	data := inst.Data().(*AnnotationData)
	testutil.Equal(t, BaseString, data.Type.Base())
	testutil.Equal(t, "seconds", data.Units)
	testutil.Equal(t, "time of last change", data.Description)
}

func TestAnnotationRequiresType(t *testing.T) {
	ctx := NewContext()

	parsed := testModule("annotated", "an")
	parsed.WithExt(annotationExt("half-baked",
		stmt.New(stmt.KindUnits, "seconds"),
	))

	_, err := ctx.CompileModule(parsed, 0)
	testutil.ErrorIs(t, err, ErrInvalidExtensionData)
	testutil.ErrorIs(t, err, ErrCardinality)
}

func TestAnnotationRequiresArgument(t *testing.T) {
	ctx := NewContext()

	parsed := testModule("annotated", "an")
	parsed.WithExt(annotationExt("",
		stmt.New(stmt.KindType, "string"),
	))

	_, err := ctx.CompileModule(parsed, 0)
	testutil.ErrorIs(t, err, ErrInvalidExtensionData)
	testutil.Contains(t, err.Error(), "name argument")
}

func TestAnnotationRejectsUnknownSubstatement(t *testing.T) {
	ctx := NewContext()

	parsed := testModule("annotated", "an")
	parsed.WithExt(annotationExt("bad",
		stmt.New(stmt.KindType, "string"),
		stmt.New(stmt.KindMust, "1 = 1"),
	))

	_, err := ctx.CompileModule(parsed, 0)
	testutil.ErrorIs(t, err, ErrInvalidExtensionData)
	testutil.ErrorIs(t, err, ErrUnsupportedStatement)
}
