package yaml

import (
	"bytes"
	"errors"
	"io"

	"github.com/goccy/go-yaml"
)

// ErrEmptyDocument is returned by [Unmarshal] when data holds no document.
var ErrEmptyDocument = errors.New("empty document")

// Decoder reads YAML documents. Decode errors are returned as [*Error] so
// they can be annotated with the offending source.
type Decoder struct {
	d *yaml.Decoder
}

func NewDecoder(r io.Reader, opts ...yaml.DecodeOption) *Decoder {
	return &Decoder{
		d: yaml.NewDecoder(r, opts...),
	}
}

// Strict makes decoding fail on keys that have no matching field.
func Strict() yaml.DecodeOption {
	return yaml.DisallowUnknownField()
}

func (d *Decoder) Decode(v any) error {
	err := d.d.Decode(v)
	if err == nil {
		return nil
	}

	var yamlErr yaml.Error
	if errors.As(err, &yamlErr) {
		return &Error{
			Err:   errors.New(yamlErr.GetMessage()),
			Token: yamlErr.GetToken(),
		}
	}

	//nolint:wrapcheck // Return the original error if it's not a [yaml.Error].
	return err
}

// Unmarshal decodes the first document in data into v. Errors carry data as
// their source.
func Unmarshal(data []byte, v any, opts ...yaml.DecodeOption) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyDocument
	}

	err := NewDecoder(bytes.NewReader(data), opts...).Decode(v)
	if err != nil {
		return NewErrorWrapper(WithSource(data)).Wrap(err)
	}

	return nil
}
