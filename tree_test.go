package yangc

import (
	"strings"
	"testing"

	"github.com/golangyang/yangc/internal/testutil"
	"github.com/golangyang/yangc/stmt"
)

const exampleTree = `{
  "kind": "module",
  "arg": "example",
  "children": [
    {"kind": "namespace", "arg": "urn:example"},
    {"kind": "prefix", "arg": "ex"},
    {
      "kind": "container",
      "arg": "system",
      "children": [
        {"kind": "leaf", "arg": "hostname",
         "children": [{"kind": "type", "arg": "string"}]}
      ]
    }
  ]
}`

func TestReadTree(t *testing.T) {
	in := InMemory([]byte(exampleTree))
	root, err := ReadTree(in)
	testutil.NoError(t, err)
	testutil.Equal(t, stmt.KindModule, root.Kind)
	testutil.Equal(t, "example", root.Arg)
	testutil.Len(t, root.Children, 3)

	// the input is consumed
	_, err = ReadTree(in)
	testutil.Contains(t, err.Error(), "empty input")

	// and rereadable after a reset
	in.Reset()
	again, err := ReadTree(in)
	testutil.NoError(t, err)
	testutil.Equal(t, "example", again.Arg)
}

func TestReadTreeRejectsNonModule(t *testing.T) {
	in := InMemory([]byte(`{"kind": "container", "arg": "c"}`))
	_, err := ReadTree(in)
	testutil.ErrorIs(t, err, ErrNotModule)
	testutil.Contains(t, err.Error(), "container")
}

func TestReadTreeRejectsMalformedJSON(t *testing.T) {
	in := InMemory([]byte(`{"kind": "module",`))
	_, err := ReadTree(in)
	if err == nil {
		t.Fatal("malformed JSON accepted")
	}

	in, err = InReader(strings.NewReader(`{"kind": "frobnicate"}`))
	testutil.NoError(t, err)
	_, err = ReadTree(in)
	testutil.Contains(t, err.Error(), "frobnicate")
}
