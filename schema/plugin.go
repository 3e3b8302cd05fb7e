package schema

import (
	"fmt"

	"github.com/golangyang/yangc/stmt"
)

// APIVersion is the extension plugins API version. A registered
// descriptor must carry exactly this version.
const APIVersion = 1

// Plugin implements a vendor extension.
//
// Compile is invoked exactly once per extension-instance use, during
// schema compilation: the generic parts of inst are pre-filled and the
// plugin adds its private data with inst.SetData. A returned error
// aborts compilation of the enclosing module.
//
// Validate is invoked once per applicable data instance, at
// data-validation time. It may run concurrently for different data
// instances and must not mutate the compiled extension data. A returned
// error fails that data instance only.
//
// Free releases whatever Compile allocated. It runs exactly once, at
// context teardown, and must not fail.
type Plugin interface {
	Compile(cc *CompileContext, pext *stmt.ExtInstance, inst *ExtInstance) error
	Validate(inst *ExtInstance, node *DataNode) error
	Free(inst *ExtInstance)
}

// PluginDescriptor binds a plugin implementation to a stable identifier
// and the extensions API version it was built against.
type PluginDescriptor struct {
	ID      string
	Version int
	Plugin  Plugin
}

// registryKey identifies one registry entry. An empty revision applies
// to any revision of the defining module.
type registryKey struct {
	module   string
	revision string
	name     string
}

// pluginRegistry maps extension definitions to plugin descriptors.
// Multiple entries may share one descriptor (one plugin, many revisions).
type pluginRegistry struct {
	entries map[registryKey]*PluginDescriptor
}

func newPluginRegistry() *pluginRegistry {
	return &pluginRegistry{entries: make(map[registryKey]*PluginDescriptor)}
}

// register adds one registry entry. The API version gate runs first,
// before any other validation or use of the descriptor.
func (r *pluginRegistry) register(module, revision, name string, desc *PluginDescriptor) error {
	if desc == nil {
		return fmt.Errorf("%w: nil plugin descriptor", ErrInvalidArgument)
	}
	if desc.Version != APIVersion {
		return fmt.Errorf("%w: plugin %q has API version %d, expected %d",
			ErrVersionMismatch, desc.ID, desc.Version, APIVersion)
	}
	if module == "" || name == "" {
		return fmt.Errorf("%w: plugin registration needs a module and extension name", ErrInvalidArgument)
	}
	if desc.Plugin == nil {
		return fmt.Errorf("%w: plugin %q has no implementation", ErrInvalidArgument, desc.ID)
	}
	key := registryKey{module: module, revision: revision, name: name}
	if _, dup := r.entries[key]; dup {
		return fmt.Errorf("%w: extension %s:%s (revision %q) already registered",
			ErrInvalidArgument, module, name, revision)
	}
	r.entries[key] = desc
	return nil
}

// lookup finds the descriptor for an extension use: exact revision match
// first, then the any-revision entry.
func (r *pluginRegistry) lookup(module, revision, name string) *PluginDescriptor {
	if revision != "" {
		if desc, ok := r.entries[registryKey{module, revision, name}]; ok {
			return desc
		}
	}
	return r.entries[registryKey{module, "", name}]
}
