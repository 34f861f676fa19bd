package serialize

import "bytes"

// Serializer reads and writes values of one type.
// Implementations may keep state across calls; such state is scoped to a session
// and the owner decides when a session ends.
type Serializer[T any] interface {
	Read(d *Decoder) (T, error)
	Write(e *Encoder, v T) error
}

// Marshal writes v with s into a new byte slice.
func Marshal[T any](s Serializer[T], v T) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Write(NewEncoder(&buf), v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal reads one value with s from data.
func Unmarshal[T any](s Serializer[T], data []byte) (T, error) {
	return s.Read(NewDecoder(bytes.NewReader(data)))
}
