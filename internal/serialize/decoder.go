package serialize

import (
	"bufio"
	"errors"
	"io"
	"math"
	"unicode/utf8"

	"go.trai.ch/graphcache/internal/core/domain"
	"go.trai.ch/zerr"
)

// MaxStringLength bounds a single length-prefixed string. Longer prefixes are
// treated as corruption rather than allocated.
const MaxStringLength = 64 << 20

// maxVarintLen64 is the longest LEB128 encoding of a 64-bit value.
const maxVarintLen64 = 10

type byteReader interface {
	io.Reader
	io.ByteReader
}

// remainder is implemented by in-memory readers that know how many bytes are left.
type remainder interface {
	Len() int
}

// Decoder reads primitive values written by an Encoder.
type Decoder struct {
	r   byteReader
	pos int64
}

// NewDecoder creates a Decoder reading from r.
// Readers that are not an io.ByteReader are wrapped in a bufio.Reader, which
// may read ahead of the last decoded value.
func NewDecoder(r io.Reader) *Decoder {
	br, ok := r.(byteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Decoder{r: br}
}

// Position returns the number of bytes consumed so far.
func (d *Decoder) Position() int64 {
	return d.pos
}

// ReadByte reads a single byte.
func (d *Decoder) ReadByte() (byte, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, d.failure(err, "byte")
	}
	d.pos++
	return b, nil
}

// ReadBoolean reads a byte that must be 0 or 1.
func (d *Decoder) ReadBoolean() (bool, error) {
	start := d.pos
	b, err := d.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, zerr.With(d.malformedAt(start, "invalid boolean flag"), "flag", b)
	}
}

// ReadSmallInt reads an unsigned LEB128 varint that must fit in an int32.
func (d *Decoder) ReadSmallInt() (int, error) {
	start := d.pos
	var result uint64
	var shift uint
	for i := 0; ; i++ {
		if i == maxVarintLen64 {
			return 0, d.malformedAt(start, "small int overflows 64 bits")
		}
		b, err := d.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
	}
	if result > math.MaxInt32 {
		return 0, zerr.With(d.malformedAt(start, "small int out of range"), "value", result)
	}
	return int(result), nil
}

// ReadSmallLong reads a signed LEB128 varint.
func (d *Decoder) ReadSmallLong() (int64, error) {
	start := d.pos
	var result int64
	var shift uint
	var b byte
	for i := 0; ; i++ {
		if i == maxVarintLen64 {
			return 0, d.malformedAt(start, "small long overflows 64 bits")
		}
		var err error
		b, err = d.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	// Sign extend
	if shift < 64 && b&0x40 != 0 {
		result |= ^int64(0) << shift
	}
	return result, nil
}

// ReadBytes reads exactly n bytes.
func (d *Decoder) ReadBytes(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if err := d.checkRemaining(n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(d.r, buf)
	d.pos += int64(read)
	if err != nil {
		return nil, d.failure(err, "bytes")
	}
	return buf, nil
}

// ReadString reads a length-prefixed UTF-8 string.
func (d *Decoder) ReadString() (string, error) {
	start := d.pos
	n, err := d.ReadSmallInt()
	if err != nil {
		return "", err
	}
	if n > MaxStringLength {
		return "", zerr.With(d.malformedAt(start, "string length exceeds limit"), "length", n)
	}
	data, err := d.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", d.malformedAt(start, "invalid UTF-8 in string")
	}
	return string(data), nil
}

// ReadNullableString reads a presence flag and, when set, a string.
func (d *Decoder) ReadNullableString() (*string, error) {
	present, err := d.ReadBoolean()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	s, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Malformed returns an ErrMalformedStream error for the current position.
// Serializers built on the Decoder use it for tags and indexes they reject.
func (d *Decoder) Malformed(reason string) error {
	return d.malformedAt(d.pos, reason)
}

func (d *Decoder) malformedAt(offset int64, reason string) error {
	return zerr.With(zerr.Wrap(domain.ErrMalformedStream, reason), "offset", offset)
}

func (d *Decoder) checkRemaining(n int) error {
	rem, ok := d.r.(remainder)
	if !ok || n <= rem.Len() {
		return nil
	}
	err := zerr.Wrap(errors.Join(domain.ErrMalformedStream, io.ErrUnexpectedEOF), "length prefix exceeds remaining input")
	err = zerr.With(err, "offset", d.pos)
	err = zerr.With(err, "length", n)
	return zerr.With(err, "remaining", rem.Len())
}

// failure turns an end of input inside a value into a malformed-stream error.
// Any other error belongs to the underlying reader and is returned as-is.
func (d *Decoder) failure(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		truncated := zerr.Wrap(errors.Join(domain.ErrMalformedStream, io.ErrUnexpectedEOF), "truncated "+what)
		return zerr.With(truncated, "offset", d.pos)
	}
	return err
}
