package config

import (
	"github.com/aidrax/promptrec/api"
	"github.com/aidrax/promptrec/api/v1beta1"
	"github.com/aidrax/promptrec/pkg/yaml"
)

// Validator validates configuration data against a schema.
type Validator interface {
	Validate(data any) error
}

// Loader is a generic configuration loader that handles validation,
// YAML parsing, and error formatting for any config type T.
type Loader[T v1beta1.Object] struct {
	validator Validator
	newFunc   func() T
	yamlError *yaml.ErrorWrapper
	data      []byte
}

// NewLoaderFromBytes creates a [Loader] from byte data.
// The newFunc parameter is the constructor for the zero value of T.
func NewLoaderFromBytes[T v1beta1.Object](data []byte, newFunc func() T, validator Validator) *Loader[T] {
	return &Loader[T]{
		data:      data,
		newFunc:   newFunc,
		validator: validator,
		yamlError: yaml.NewErrorWrapper(yaml.WithSource(data)),
	}
}

// NewLoaderFromFile creates a [Loader] from a file path.
func NewLoaderFromFile[T v1beta1.Object](path string, newFunc func() T, validator Validator) (*Loader[T], error) {
	data, err := api.ReadFile(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // Return the original error.
	}

	return NewLoaderFromBytes(data, newFunc, validator), nil
}

// Validate validates the configuration data against the schema. Empty
// data fails with [yaml.ErrEmptyDocument].
func (l *Loader[T]) Validate() error {
	if l.validator == nil {
		return nil
	}

	var anyConfig any

	err := yaml.Unmarshal(l.data, &anyConfig)
	if err != nil {
		return l.yamlError.Wrap(err)
	}

	return l.yamlError.Wrap(l.validator.Validate(anyConfig))
}

// Load validates, parses and returns the configuration. Types implementing
// [v1beta1.Validator] are checked after defaults are applied.
//
//nolint:ireturn // Generic type parameter return is intentional.
func (l *Loader[T]) Load() (T, error) {
	var zero T

	err := l.Validate()
	if err != nil {
		return zero, err
	}

	cfg := l.newFunc()

	err = yaml.Unmarshal(l.data, cfg, yaml.Strict())
	if err != nil {
		return zero, l.yamlError.Wrap(err)
	}

	cfg.EnsureDefaults()

	if v, ok := any(cfg).(v1beta1.Validator); ok {
		err = v.Validate()
		if err != nil {
			return zero, l.yamlError.Wrap(err)
		}
	}

	return cfg, nil
}
