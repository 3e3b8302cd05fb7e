package schema

import (
	"testing"

	"github.com/golangyang/yangc/internal/testutil"
)

func TestBuiltinTypeLookup(t *testing.T) {
	testutil.Equal(t, BaseString, builtinType("string").Base())
	testutil.Equal(t, BaseUint64, builtinType("uint64").Base())
	testutil.True(t, builtinType("frob") == nil)
	// enumeration and leafref compile per use, never shared
	testutil.True(t, builtinType("enumeration") == nil)
	testutil.True(t, builtinType("leafref") == nil)

	// shared singletons
	testutil.True(t, builtinType("string") == builtinType("string"))
}

func TestCheckValueIntegers(t *testing.T) {
	ok := map[string]string{
		"int8":   "-128",
		"uint8":  "255",
		"int16":  "-32768",
		"uint16": "65535",
		"int64":  "-9223372036854775808",
		"uint64": "18446744073709551615",
	}
	for name, v := range ok {
		testutil.NoError(t, builtinType(name).checkValue(v), "%s value %s", name, v)
	}

	bad := map[string]string{
		"int8":   "128",
		"uint8":  "-1",
		"uint16": "65536",
		"int32":  "notanumber",
	}
	for name, v := range bad {
		if builtinType(name).checkValue(v) == nil {
			t.Fatalf("%s accepted %q", name, v)
		}
	}
}

func TestCheckValueOtherBases(t *testing.T) {
	testutil.NoError(t, builtinType("string").checkValue("anything at all"))

	testutil.NoError(t, builtinType("boolean").checkValue("true"))
	testutil.NoError(t, builtinType("boolean").checkValue("false"))
	if builtinType("boolean").checkValue("yes") == nil {
		t.Fatal("boolean accepted yes")
	}

	if builtinType("empty").checkValue("x") == nil {
		t.Fatal("empty type accepted a value")
	}

	enum := &Type{name: "enumeration", base: BaseEnumeration, enums: []*EnumValue{
		{Label: "up", Value: 0},
	}}
	testutil.NoError(t, enum.checkValue("up"))
	if enum.checkValue("down") == nil {
		t.Fatal("enumeration accepted an unknown label")
	}
}
