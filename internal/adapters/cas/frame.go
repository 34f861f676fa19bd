package cas

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
	"go.trai.ch/graphcache/internal/core/domain"
	"go.trai.ch/graphcache/internal/serialize"
	"go.trai.ch/zerr"
)

// Session file layout:
//
//	magic "GCRS" | format version | compression | session name |
//	body length | payload length | payload | xxhash64(body)
//
// The body is the uncompressed record stream. The checksum is big-endian.
const (
	frameMagic   = "GCRS"
	frameVersion = 1
	checksumSize = 8
)

// Compression modes of the payload.
const (
	compressionNone byte = 0
	compressionZstd byte = 1
)

// maxBodySize bounds the declared body length of a session file.
const maxBodySize = 1 << 30

var errIncompressible = errors.New("data is incompressible")

// frame is a decoded session file.
type frame struct {
	session string
	body    []byte
}

// codecs holds the zstd encoder and decoder shared by all sessions.
// zstd.Encoder and zstd.Decoder are safe for concurrent use through EncodeAll and DecodeAll.
type codecs struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func newCodecs() (*codecs, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, zerr.Wrap(err, "zstd encoder initialization failed")
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxBodySize))
	if err != nil {
		return nil, zerr.Wrap(err, "zstd decoder initialization failed")
	}
	return &codecs{encoder: encoder, decoder: decoder}, nil
}

func (c *codecs) compress(data []byte) ([]byte, error) {
	compressed := c.encoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return nil, errIncompressible
	}
	return compressed, nil
}

func (c *codecs) decompress(compressed []byte, size int) ([]byte, error) {
	result, err := c.decoder.DecodeAll(compressed, make([]byte, 0, size))
	if err != nil {
		return nil, err
	}
	if len(result) != size {
		return nil, zerr.With(zerr.New("decompressed size mismatch"), "expected", size)
	}
	return result, nil
}

// encodeFrame wraps body into a session file, compressing it when that makes it smaller.
func (c *codecs) encodeFrame(session string, body []byte, compress bool) ([]byte, error) {
	mode, payload := compressionNone, body
	if compress && c != nil {
		if compressed, err := c.compress(body); err == nil {
			mode, payload = compressionZstd, compressed
		}
	}

	var buf bytes.Buffer
	enc := serialize.NewEncoder(&buf)
	if err := enc.WriteBytes([]byte(frameMagic)); err != nil {
		return nil, err
	}
	if err := enc.WriteByte(frameVersion); err != nil {
		return nil, err
	}
	if err := enc.WriteByte(mode); err != nil {
		return nil, err
	}
	if err := enc.WriteString(session); err != nil {
		return nil, err
	}
	if err := enc.WriteSmallInt(len(body)); err != nil {
		return nil, err
	}
	if err := enc.WriteSmallInt(len(payload)); err != nil {
		return nil, err
	}
	if err := enc.WriteBytes(payload); err != nil {
		return nil, err
	}

	var sum [checksumSize]byte
	binary.BigEndian.PutUint64(sum[:], xxhash.Sum64(body))
	if err := enc.WriteBytes(sum[:]); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeFrame validates a session file and returns its uncompressed body.
func (c *codecs) decodeFrame(data []byte) (frame, error) {
	dec := serialize.NewDecoder(bytes.NewReader(data))

	magic, err := dec.ReadBytes(len(frameMagic))
	if err != nil || string(magic) != frameMagic {
		return frame{}, corrupt("bad magic")
	}
	version, err := dec.ReadByte()
	if err != nil {
		return frame{}, corrupt("missing format version")
	}
	if version != frameVersion {
		return frame{}, zerr.With(corrupt("unsupported format version"), "version", version)
	}
	mode, err := dec.ReadByte()
	if err != nil {
		return frame{}, corrupt("missing compression mode")
	}
	session, err := dec.ReadString()
	if err != nil {
		return frame{}, zerr.Wrap(errors.Join(domain.ErrStoreCorrupt, err), "bad session name")
	}
	bodySize, err := dec.ReadSmallInt()
	if err != nil || bodySize > maxBodySize {
		return frame{}, corrupt("bad body length")
	}
	payloadSize, err := dec.ReadSmallInt()
	if err != nil {
		return frame{}, corrupt("bad payload length")
	}
	payload, err := dec.ReadBytes(payloadSize)
	if err != nil {
		return frame{}, zerr.Wrap(errors.Join(domain.ErrStoreCorrupt, err), "truncated payload")
	}
	sum, err := dec.ReadBytes(checksumSize)
	if err != nil {
		return frame{}, corrupt("missing checksum")
	}
	if rest := int64(len(data)) - dec.Position(); rest != 0 {
		return frame{}, zerr.With(corrupt("trailing bytes after checksum"), "trailing", rest)
	}

	var body []byte
	switch mode {
	case compressionNone:
		if payloadSize != bodySize {
			return frame{}, corrupt("payload length differs from body length")
		}
		body = payload
	case compressionZstd:
		if c == nil {
			return frame{}, corrupt("compressed payload without decoder")
		}
		body, err = c.decompress(payload, bodySize)
		if err != nil {
			return frame{}, zerr.Wrap(errors.Join(domain.ErrStoreCorrupt, err), "zstd decompress failed")
		}
	default:
		return frame{}, zerr.With(corrupt("unknown compression mode"), "mode", mode)
	}

	if binary.BigEndian.Uint64(sum) != xxhash.Sum64(body) {
		return frame{}, corrupt("checksum mismatch")
	}
	return frame{session: session, body: body}, nil
}

func corrupt(reason string) error {
	return zerr.Wrap(domain.ErrStoreCorrupt, reason)
}
