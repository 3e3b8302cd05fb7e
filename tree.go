package yangc

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/golangyang/yangc/stmt"
)

// ErrNotModule is returned by ReadTree when the decoded tree's root
// statement is not a module.
var ErrNotModule = errors.New("parse tree root is not a module")

// ReadTree decodes a JSON-encoded parse tree from the input. This is the
// hand-off point from an external parser: the parser serializes its
// statement tree, and ReadTree turns it back into stmt.Statement values
// ready for compilation.
func ReadTree(in *Input) (*stmt.Statement, error) {
	data := in.remaining()
	if len(data) == 0 {
		return nil, errors.New("read tree: empty input")
	}
	var root stmt.Statement
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("read tree: %w", err)
	}
	if root.Kind != stmt.KindModule {
		return nil, fmt.Errorf("%w: got %s", ErrNotModule, root.Kind)
	}
	in.Read(nil, len(data))
	return &root, nil
}
