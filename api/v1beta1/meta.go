// Package v1beta1 contains the metadata shared by v1beta1 promptrec
// configuration kinds.
package v1beta1

import "github.com/invopop/jsonschema"

// APIVersion is the current API version for all promptrec configuration kinds.
const APIVersion = "promptrec.aidrax.dev/v1beta1"

// ValidAPIVersions contains all valid API versions.
var ValidAPIVersions = []string{APIVersion}

// TypeMeta contains the API version and kind metadata common to all config types.
type TypeMeta struct {
	// APIVersion specifies the API version for this configuration.
	APIVersion string `json:"apiVersion" jsonschema:"title=API Version,required"`
	// Kind defines the type of configuration.
	Kind string `json:"kind" jsonschema:"title=Kind,required"`
}

// GetAPIVersion returns the API version.
func (tm TypeMeta) GetAPIVersion() string {
	return tm.APIVersion
}

// GetKind returns the kind.
func (tm TypeMeta) GetKind() string {
	return tm.Kind
}

// Object is the interface that all config types implement.
type Object interface {
	GetAPIVersion() string
	GetKind() string
	EnsureDefaults()
}

// Validator is implemented by config types with checks that cannot be
// expressed in the JSON schema.
type Validator interface {
	Validate() error
}

// NewTypeMeta returns a [TypeMeta] for kind at [APIVersion].
func NewTypeMeta(kind string) TypeMeta {
	return TypeMeta{APIVersion: APIVersion, Kind: kind}
}

// ExtendSchemaWithEnums restricts the apiVersion and kind properties of jss
// to the given values. It panics if either property is missing.
func ExtendSchemaWithEnums(jss *jsonschema.Schema, apiVersions, kinds []string) {
	restrict(jss, "apiVersion", "API Version", apiVersions)
	restrict(jss, "kind", "Kind", kinds)
}

func restrict(jss *jsonschema.Schema, name, title string, values []string) {
	prop, ok := jss.Properties.Get(name)
	if !ok {
		panic(name + " property not found in schema")
	}

	for _, v := range values {
		prop.OneOf = append(prop.OneOf, &jsonschema.Schema{
			Type:  "string",
			Const: v,
			Title: title,
		})
	}
}
