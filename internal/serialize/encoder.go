// Package serialize provides the primitive binary encodings shared by every
// graphcache serializer: LEB128 varints, booleans, length-prefixed strings.
//
// The encodings are positional. Nothing on the wire says what a value is, so a
// reader must consume values in exactly the order the writer produced them.
package serialize

import (
	"encoding/binary"
	"io"

	"go.trai.ch/graphcache/internal/core/domain"
	"go.trai.ch/zerr"
)

// Encoder writes primitive values to an io.Writer.
// Writes go straight to the underlying writer; wrap it in a bufio.Writer when it is unbuffered.
type Encoder struct {
	w       io.Writer
	scratch [binary.MaxVarintLen64]byte
	written int64
}

// NewEncoder creates an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Written returns the number of bytes written so far.
func (e *Encoder) Written() int64 {
	return e.written
}

func (e *Encoder) write(p []byte) error {
	n, err := e.w.Write(p)
	e.written += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return err
}

// WriteByte writes a single byte.
func (e *Encoder) WriteByte(b byte) error {
	e.scratch[0] = b
	return e.write(e.scratch[:1])
}

// WriteBytes writes p without a length prefix.
func (e *Encoder) WriteBytes(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	return e.write(p)
}

// WriteBoolean writes 1 for true and 0 for false.
func (e *Encoder) WriteBoolean(v bool) error {
	if v {
		return e.WriteByte(1)
	}
	return e.WriteByte(0)
}

// WriteSmallInt writes a non-negative int as an unsigned LEB128 varint.
func (e *Encoder) WriteSmallInt(v int) error {
	if v < 0 {
		return zerr.With(zerr.Wrap(domain.ErrNegativeSmallInt, "cannot encode small int"), "value", v)
	}
	n := binary.PutUvarint(e.scratch[:], uint64(v))
	return e.write(e.scratch[:n])
}

// WriteSmallLong writes v as a signed LEB128 varint.
// Small magnitudes of either sign take one byte.
func (e *Encoder) WriteSmallLong(v int64) error {
	n := 0
	for {
		b := byte(v & 0x7f)
		v >>= 7
		done := (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0)
		if !done {
			b |= 0x80
		}
		e.scratch[n] = b
		n++
		if done {
			break
		}
	}
	return e.write(e.scratch[:n])
}

// WriteString writes the UTF-8 bytes of s prefixed with their length.
func (e *Encoder) WriteString(s string) error {
	if err := e.WriteSmallInt(len(s)); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	n, err := io.WriteString(e.w, s)
	e.written += int64(n)
	if err == nil && n < len(s) {
		err = io.ErrShortWrite
	}
	return err
}

// WriteNullableString writes a presence flag followed by the string when s is not nil.
func (e *Encoder) WriteNullableString(s *string) error {
	if s == nil {
		return e.WriteBoolean(false)
	}
	if err := e.WriteBoolean(true); err != nil {
		return err
	}
	return e.WriteString(*s)
}
