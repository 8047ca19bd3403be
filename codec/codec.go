// Package codec encodes table sequences for snapshots.
//
// Snapshot headers record the codec name, so a blob written with one codec is
// always decoded with the same one. Built-in codecs are resolved with ByName.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Encode marshals a typed sequence with c, falling back to Default when c is nil.
func Encode[T any](c Codec, values []T) ([]byte, error) {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("codec %s: encode %d values: %w", c.Name(), len(values), err)
	}
	return b, nil
}

// Decode unmarshals a typed sequence with c, falling back to Default when c is nil.
func Decode[T any](c Codec, data []byte) ([]T, error) {
	if c == nil {
		c = Default
	}
	var values []T
	if err := c.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("codec %s: decode: %w", c.Name(), err)
	}
	return values, nil
}
