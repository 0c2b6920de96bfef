package yaml

import (
	"io"

	"github.com/goccy/go-yaml"
)

// DefaultEncoderOptions are applied by [NewEncoder].
var DefaultEncoderOptions = []yaml.EncodeOption{
	yaml.Indent(2),
	yaml.IndentSequence(true),
	yaml.UseLiteralStyleIfMultiline(true),
}

// Encoder writes YAML documents.
type Encoder struct {
	e *yaml.Encoder
}

func NewEncoder(w io.Writer, opts ...yaml.EncodeOption) *Encoder {
	return &Encoder{
		e: yaml.NewEncoder(w, append(DefaultEncoderOptions, opts...)...),
	}
}

func (e *Encoder) Encode(v any) error {
	return e.e.Encode(v) //nolint:wrapcheck // Return the original error.
}

func (e *Encoder) Close() error {
	return e.e.Close() //nolint:wrapcheck // Return the original error.
}

// Marshal encodes v with [DefaultEncoderOptions].
func Marshal(v any) ([]byte, error) {
	return yaml.MarshalWithOptions(v, DefaultEncoderOptions...) //nolint:wrapcheck // Return the original error.
}
