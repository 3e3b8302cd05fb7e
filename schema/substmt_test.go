package schema

import (
	"errors"
	"testing"

	"github.com/golangyang/yangc/internal/testutil"
	"github.com/golangyang/yangc/stmt"
)

func newTestCompileContext(t *testing.T) *CompileContext {
	t.Helper()
	ctx := NewContext()
	return newCompileContext(ctx, newModule("test"), 0)
}

func TestCompileSubstatementsStoresArguments(t *testing.T) {
	cc := newTestCompileContext(t)

	var units, description string
	var revisions []string
	table := []SubstmtDescriptor{
		{stmt.KindRevision, CardinalityAny, &revisions},
		{stmt.KindUnits, CardinalityOptional, &units},
		{stmt.KindDescription, CardinalityMandatory, &description},
	}
	children := []*stmt.Statement{
		stmt.New(stmt.KindDescription, "a counter"),
		stmt.New(stmt.KindUnits, "seconds"),
		stmt.New(stmt.KindRevision, "2024-01-01"),
		stmt.New(stmt.KindRevision, "2023-06-01"),
	}

	err := cc.compileSubstatements(nil, table, children)
	testutil.NoError(t, err)
	testutil.Equal(t, "seconds", units)
	testutil.Equal(t, "a counter", description)
	testutil.Len(t, revisions, 2)
	testutil.Equal(t, "2024-01-01", revisions[0])
}

func TestCompileSubstatementsMissingMandatory(t *testing.T) {
	cc := newTestCompileContext(t)

	var description string
	table := []SubstmtDescriptor{
		{stmt.KindDescription, CardinalityMandatory, &description},
		{stmt.KindReference, CardinalityOptional, nil},
	}
	err := cc.compileSubstatements(nil, table, []*stmt.Statement{
		stmt.New(stmt.KindReference, "RFC 0000"),
	})
	testutil.ErrorIs(t, err, ErrCardinality)
}

func TestCompileSubstatementsTooMany(t *testing.T) {
	cc := newTestCompileContext(t)

	var units string
	table := []SubstmtDescriptor{
		{stmt.KindUnits, CardinalityOptional, &units},
	}
	err := cc.compileSubstatements(nil, table, []*stmt.Statement{
		stmt.New(stmt.KindUnits, "seconds"),
		stmt.New(stmt.KindUnits, "minutes"),
	})
	testutil.ErrorIs(t, err, ErrCardinality)
}

func TestCompileSubstatementsSomeRequiresOne(t *testing.T) {
	cc := newTestCompileContext(t)

	var args []string
	table := []SubstmtDescriptor{
		{stmt.KindEnum, CardinalitySome, &args},
	}
	err := cc.compileSubstatements(nil, table, nil)
	testutil.ErrorIs(t, err, ErrCardinality)

	err = cc.compileSubstatements(nil, table, []*stmt.Statement{
		stmt.New(stmt.KindEnum, "up"),
		stmt.New(stmt.KindEnum, "down"),
	})
	testutil.NoError(t, err)
	testutil.Len(t, args, 2)
}

func TestCompileSubstatementsUnsupported(t *testing.T) {
	cc := newTestCompileContext(t)

	table := []SubstmtDescriptor{
		{stmt.KindDescription, CardinalityOptional, nil},
	}
	err := cc.compileSubstatements(nil, table, []*stmt.Statement{
		stmt.New(stmt.KindMust, "count > 0"),
	})
	testutil.ErrorIs(t, err, ErrUnsupportedStatement)
}

func TestCompileSubstatementsDuplicateDescriptor(t *testing.T) {
	cc := newTestCompileContext(t)

	var first, second string
	table := []SubstmtDescriptor{
		{stmt.KindDescription, CardinalityOptional, &first},
		{stmt.KindReference, CardinalityOptional, nil},
		{stmt.KindDescription, CardinalityOptional, &second},
	}
	err := cc.compileSubstatements(nil, table, []*stmt.Statement{
		stmt.New(stmt.KindDescription, "text"),
	})
	testutil.ErrorIs(t, err, ErrDuplicateDescriptor)

	// the table is rejected before any child is consumed
	testutil.Equal(t, "", first)
	testutil.Equal(t, "", second)
}

func TestCompileSubstatementsBoolArgument(t *testing.T) {
	cc := newTestCompileContext(t)

	var config bool
	table := []SubstmtDescriptor{
		{stmt.KindConfig, CardinalityOptional, &config},
	}

	err := cc.compileSubstatements(nil, table, []*stmt.Statement{
		stmt.New(stmt.KindConfig, "true"),
	})
	testutil.NoError(t, err)
	testutil.True(t, config)

	err = cc.compileSubstatements(nil, table, []*stmt.Statement{
		stmt.New(stmt.KindConfig, "yes"),
	})
	testutil.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCompileSubstatementsIntegerArgument(t *testing.T) {
	cc := newTestCompileContext(t)

	var value int64
	table := []SubstmtDescriptor{
		{stmt.KindValue, CardinalityOptional, &value},
	}

	err := cc.compileSubstatements(nil, table, []*stmt.Statement{
		stmt.New(stmt.KindValue, "-42"),
	})
	testutil.NoError(t, err)
	testutil.Equal(t, int64(-42), value)

	err = cc.compileSubstatements(nil, table, []*stmt.Statement{
		stmt.New(stmt.KindValue, "many"),
	})
	testutil.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCompileSubstatementsErrorCarriesPath(t *testing.T) {
	cc := newTestCompileContext(t)
	cc.UpdatePath("test", "system")
	cc.UpdatePath("", "hostname")

	table := []SubstmtDescriptor{
		{stmt.KindDescription, CardinalityMandatory, nil},
	}
	err := cc.compileSubstatements(nil, table, nil)

	var ce *CompileError
	testutil.True(t, errors.As(err, &ce))
	testutil.Equal(t, "/test:system/hostname", ce.Path)
	testutil.Equal(t, "cardinality-missing", ce.Code)
}
