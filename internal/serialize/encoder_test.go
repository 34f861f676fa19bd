package serialize_test

import (
	"bytes"
	"encoding/hex"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/graphcache/internal/core/domain"
	"go.trai.ch/graphcache/internal/serialize"
)

var smallLongCases = []struct {
	value int64
	hex   string
}{
	{0, "00"},
	{1, "01"},
	{42, "2a"},
	{63, "3f"},
	{64, "c000"},
	{-1, "7f"},
	{-64, "40"},
	{-65, "bf7f"},
	{127, "ff00"},
	{128, "8001"},
	{300, "ac02"},
	{-300, "d47d"},
	{math.MaxInt64, "ffffffffffffffffff00"},
	{math.MinInt64, "8080808080808080807f"},
}

var smallIntCases = []struct {
	value int
	hex   string
}{
	{0, "00"},
	{127, "7f"},
	{128, "8001"},
	{300, "ac02"},
	{16384, "808001"},
	{math.MaxInt32, "ffffffff07"},
}

func TestEncoder_WriteSmallLong(t *testing.T) {
	t.Parallel()

	for _, tt := range smallLongCases {
		var buf bytes.Buffer
		enc := serialize.NewEncoder(&buf)
		require.NoError(t, enc.WriteSmallLong(tt.value))
		assert.Equal(t, tt.hex, hex.EncodeToString(buf.Bytes()), "value %d", tt.value)
		assert.Equal(t, int64(buf.Len()), enc.Written())
	}
}

func TestEncoder_WriteSmallInt(t *testing.T) {
	t.Parallel()

	for _, tt := range smallIntCases {
		var buf bytes.Buffer
		require.NoError(t, serialize.NewEncoder(&buf).WriteSmallInt(tt.value))
		assert.Equal(t, tt.hex, hex.EncodeToString(buf.Bytes()), "value %d", tt.value)
	}

	t.Run("negative", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		err := serialize.NewEncoder(&buf).WriteSmallInt(-1)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNegativeSmallInt)
		assert.Zero(t, buf.Len())
	})
}

func TestEncoder_Strings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	enc := serialize.NewEncoder(&buf)
	present := "ok"

	require.NoError(t, enc.WriteString(""))
	require.NoError(t, enc.WriteString("héllo"))
	require.NoError(t, enc.WriteNullableString(nil))
	require.NoError(t, enc.WriteNullableString(&present))
	require.NoError(t, enc.WriteBoolean(true))
	require.NoError(t, enc.WriteBytes(nil))

	assert.Equal(t, "00"+"0668c3a96c6c6f"+"00"+"01026f6b"+"01", hex.EncodeToString(buf.Bytes()))
	assert.Equal(t, int64(buf.Len()), enc.Written())
}

// shortWriter reports success while dropping every byte.
type shortWriter struct{}

func (shortWriter) Write([]byte) (int, error) { return 0, nil }

func TestEncoder_ShortWrite(t *testing.T) {
	t.Parallel()

	enc := serialize.NewEncoder(shortWriter{})
	require.ErrorIs(t, enc.WriteByte(1), io.ErrShortWrite)
	require.ErrorIs(t, enc.WriteString("abc"), io.ErrShortWrite)
	assert.Zero(t, enc.Written())
}
