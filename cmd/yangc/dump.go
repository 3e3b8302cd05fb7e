package main

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/golangyang/yangc"
)

// JSON projections of the compiled model. The model itself only exposes
// getters, so the dump builds these explicitly.

type moduleJSON struct {
	Name         string      `json:"name"`
	Namespace    string      `json:"namespace"`
	Prefix       string      `json:"prefix"`
	Revision     string      `json:"revision,omitempty"`
	Organization string      `json:"organization,omitempty"`
	Contact      string      `json:"contact,omitempty"`
	Nodes        []*nodeJSON `json:"nodes,omitempty"`
}

type nodeJSON struct {
	Kind      string      `json:"kind"`
	Name      string      `json:"name"`
	Type      *typeJSON   `json:"type,omitempty"`
	Default   string      `json:"default,omitempty"`
	Units     string      `json:"units,omitempty"`
	Config    bool        `json:"config"`
	Mandatory bool        `json:"mandatory,omitempty"`
	Children  []*nodeJSON `json:"children,omitempty"`
}

type typeJSON struct {
	Name    string           `json:"name"`
	Base    string           `json:"base"`
	Path    string           `json:"path,omitempty"`
	Enums   map[string]int64 `json:"enums,omitempty"`
	Typedef string           `json:"typedef,omitempty"`
}

func (c *cli) cmdDump(args []string) int {
	if len(args) == 0 {
		printError("dump: no input files")
		return exitError
	}

	ctx, compileErr := c.compileFiles(args)
	if ctx == nil {
		printError("%v", compileErr)
		return exitError
	}
	defer ctx.Free()
	if compileErr != nil {
		printError("%v", compileErr)
		return exitError
	}

	var out []*moduleJSON
	for mod := range ctx.Modules() {
		out = append(out, dumpModule(mod))
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		printError("encode: %v", err)
		return exitError
	}
	fmt.Println(string(data))
	return exitOK
}

func dumpModule(mod *yangc.Module) *moduleJSON {
	m := &moduleJSON{
		Name:         mod.Name(),
		Namespace:    mod.Namespace(),
		Prefix:       mod.Prefix(),
		Revision:     mod.Revision(),
		Organization: mod.Organization(),
		Contact:      mod.Contact(),
	}
	for _, n := range mod.Nodes() {
		m.Nodes = append(m.Nodes, dumpNode(n))
	}
	return m
}

func dumpNode(n *yangc.Node) *nodeJSON {
	j := &nodeJSON{
		Kind:      n.Kind().String(),
		Name:      n.Name(),
		Units:     n.Units(),
		Config:    n.Config(),
		Mandatory: n.Mandatory(),
	}
	if d, ok := n.Default(); ok {
		j.Default = d
	}
	if t := n.Type(); t != nil {
		j.Type = dumpType(t)
	}
	for _, child := range n.Children() {
		j.Children = append(j.Children, dumpNode(child))
	}
	return j
}

func dumpType(t *yangc.Type) *typeJSON {
	j := &typeJSON{
		Name: t.Name(),
		Base: t.Base().String(),
		Path: t.LeafrefPath(),
	}
	if td := t.Typedef(); td != nil {
		j.Typedef = td.Name()
	}
	if enums := t.Enums(); len(enums) > 0 {
		j.Enums = make(map[string]int64, len(enums))
		for _, ev := range enums {
			j.Enums[ev.Label] = ev.Value
		}
	}
	return j
}
