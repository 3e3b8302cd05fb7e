package schema

import (
	"errors"

	"github.com/golangyang/yangc/stmt"
)

// AnnotationData is the compiled payload of an annotation extension
// instance (the metadata extension, modeled after RFC 7952).
type AnnotationData struct {
	Type        *Type
	Units       string
	Description string
}

// annotationPlugin implements the built-in annotation extension. It also
// serves as the reference implementation of the plugin contract: declare
// the legal substatements in a descriptor table and hand them to
// CompileExtensionInstance.
type annotationPlugin struct{}

func (annotationPlugin) Compile(cc *CompileContext, pext *stmt.ExtInstance, inst *ExtInstance) error {
	if pext.Arg == "" {
		return errors.New("annotation needs a name argument")
	}
	data := &AnnotationData{}
	substmts := []SubstmtDescriptor{
		{stmt.KindType, CardinalityMandatory, &data.Type},
		{stmt.KindUnits, CardinalityOptional, &data.Units},
		{stmt.KindStatus, CardinalityOptional, nil},
		{stmt.KindDescription, CardinalityOptional, &data.Description},
		{stmt.KindReference, CardinalityOptional, nil},
	}
	if err := cc.CompileExtensionInstance(pext, substmts); err != nil {
		return err
	}
	return inst.SetData(data)
}

func (annotationPlugin) Validate(inst *ExtInstance, node *DataNode) error {
	// annotations constrain metadata attached to instances, not the
	// instance value itself
	return nil
}

func (annotationPlugin) Free(inst *ExtInstance) {}

// registerBuiltinPlugins installs the plugins every context starts with.
func registerBuiltinPlugins(r *pluginRegistry) {
	// Registration of built-ins cannot fail: descriptors are ours and
	// carry the current API version.
	_ = r.register("ietf-yang-metadata", "", "annotation", &PluginDescriptor{
		ID:      "yangc-annotation-v1",
		Version: APIVersion,
		Plugin:  annotationPlugin{},
	})
}
