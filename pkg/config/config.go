package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	_ "embed"

	"github.com/aidrax/promptrec/api"
	"github.com/aidrax/promptrec/api/v1beta1"
	"github.com/aidrax/promptrec/pkg/component"
	"github.com/aidrax/promptrec/pkg/detect"
	"github.com/aidrax/promptrec/pkg/profile"
	"github.com/aidrax/promptrec/pkg/yaml"
)

//go:generate go run ../../internal/schemagen -o config.v1beta1.json

const (
	Kind = "Configuration"

	// SchemaFile is written next to the config file by [WriteDefault].
	SchemaFile = "config.v1beta1.json"
)

var (
	//go:embed config.yaml
	defaultConfigYAML []byte

	//go:embed config.v1beta1.json
	schemaJSON []byte

	// ValidKinds contains the valid kind values.
	ValidKinds = []string{Kind}

	// DefaultValidator validates configuration against the embedded schema.
	DefaultValidator = yaml.MustNewValidator("/"+SchemaFile, schemaJSON)

	_ v1beta1.Object    = (*Config)(nil)
	_ v1beta1.Validator = (*Config)(nil)
)

// Config is the promptrec configuration.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	v1beta1.TypeMeta `json:",inline"`
	// Profile is the recommendation profile used when none is given on the
	// command line.
	Profile string `json:"profile,omitempty" jsonschema:"title=Profile,enum=safe,enum=auto,enum=full,default=auto"`
	// IncludeCritical adds system-critical files to the install plan.
	IncludeCritical bool `json:"includeCritical" jsonschema:"title=Include Critical"`
	// IncludeNotNeeded adds test artifacts to the install plan.
	IncludeNotNeeded bool `json:"includeNotNeeded" jsonschema:"title=Include Not Needed"`
	// Components declares the specific components in classification
	// priority order. The catch-all `general` component is implicit.
	Components []component.Definition `json:"components,omitempty" jsonschema:"title=Components"`
}

// New creates a [Config] with the built-in defaults.
func New() *Config {
	c := &Config{TypeMeta: v1beta1.NewTypeMeta(Kind)}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults fills unset fields. An explicit empty component list is
// kept, leaving only the catch-all component.
func (c *Config) EnsureDefaults() {
	if c.APIVersion == "" {
		c.APIVersion = v1beta1.APIVersion
	}
	if c.Kind == "" {
		c.Kind = Kind
	}
	if c.Profile == "" {
		c.Profile = profile.Default.String()
	}
	if c.Components == nil {
		c.Components = component.DefaultDefinitions()
	}
}

// Validate runs the checks the schema cannot express: the profile is known,
// component names are unique, match expressions compile, and detection
// candidates parse.
func (c *Config) Validate() error {
	_, err := profile.Parse(c.Profile)
	if err != nil {
		return yaml.NewError(err, yaml.WithPath(yaml.NewPathBuilder().Root().Child("profile").Build()))
	}

	_, err = component.NewRegistry(c.Components)
	if err != nil {
		return fmt.Errorf("validate components: %w", err)
	}

	for i, def := range c.Components {
		for j, candidate := range def.Detect {
			_, err := detect.ParsePattern(candidate)
			if err != nil {
				path := yaml.NewPathBuilder().Root().
					Child("components").Index(uint(i)).
					Child("detect").Index(uint(j)).
					Build()

				return yaml.NewError(err, yaml.WithPath(path))
			}
		}
	}

	return nil
}

// Registry compiles the configured components.
func (c *Config) Registry() (*component.Registry, error) {
	reg, err := component.NewRegistry(c.Components)
	if err != nil {
		return nil, fmt.Errorf("build component registry: %w", err)
	}

	return reg, nil
}

// Policy returns the configured [profile.Policy].
func (c *Config) Policy() (profile.Policy, error) {
	p, err := profile.Parse(c.Profile)
	if err != nil {
		return profile.Policy{}, fmt.Errorf("config: %w", err)
	}

	return profile.Policy{
		Profile:          p,
		IncludeCritical:  c.IncludeCritical,
		IncludeNotNeeded: c.IncludeNotNeeded,
	}, nil
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, ValidKinds)
}

// MarshalYAML serializes the config to YAML.
func (c Config) MarshalYAML() ([]byte, error) {
	type alias Config

	b, err := api.MarshalYAML(alias(c))
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	return b, nil
}

// Load reads the config at path. When path is empty, the default location
// from [GetPath] is tried and the embedded default is used if no file exists
// there. An explicitly given path must exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = GetPath()

		ok, err := api.Exists(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if !ok {
			slog.Debug("no config file found, using defaults", slog.String("path", path))

			return LoadBytes(defaultConfigYAML)
		}
	}

	slog.Debug("load config", slog.String("path", path))

	l, err := NewLoaderFromFile(path, newEmpty, DefaultValidator)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}

		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg, err := l.Load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// LoadBytes parses and validates config data.
func LoadBytes(data []byte) (*Config, error) {
	return NewLoaderFromBytes(data, newEmpty, DefaultValidator).Load() //nolint:wrapcheck // Errors carry source positions.
}

// Default returns the embedded default config.
func Default() *Config {
	c, err := LoadBytes(defaultConfigYAML)
	if err != nil {
		panic(fmt.Errorf("embedded config: %w", err))
	}

	return c
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultConfigYAML...)
}

// Schema returns the embedded JSON schema.
func Schema() []byte {
	return append([]byte(nil), schemaJSON...)
}

// WriteDefault writes the embedded default config.yaml to path, and the JSON
// schema next to it. The schema is always refreshed so it matches the
// running binary.
func WriteDefault(path string, force bool) (api.WriteResult, error) {
	res, err := api.WriteDefaultFile(path, defaultConfigYAML, force, "configuration")
	if err != nil {
		return res, fmt.Errorf("write default config: %w", err)
	}

	schemaPath := filepath.Join(filepath.Dir(path), SchemaFile)
	slog.Debug("write JSON schema", slog.String("path", schemaPath))

	err = os.WriteFile(schemaPath, schemaJSON, 0o600)
	if err != nil {
		return res, fmt.Errorf("write schema file: %w", err)
	}

	return res, nil
}

// GetPath returns the default configuration file path.
func GetPath() string {
	return api.GetConfigPath("config.yaml")
}

func newEmpty() *Config {
	return &Config{}
}
