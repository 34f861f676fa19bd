package codec_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/graphcache/internal/codec"
	"go.trai.ch/graphcache/internal/core/domain"
	"go.trai.ch/graphcache/internal/serialize"
)

func TestComponentIdentifierSerializer_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   domain.ComponentIdentifier
		tag  byte
	}{
		{name: "module", id: domain.NewModuleComponentIdentifier("com.x", "lib", "1.0"), tag: 0},
		{name: "project", id: domain.ProjectComponentIdentifier{BuildPath: ":", ProjectPath: ":core", ProjectName: "core"}, tag: 1},
		{name: "library", id: domain.LibraryBinaryIdentifier{ProjectPath: ":native", LibraryName: "hello", Variant: "release"}, tag: 2},
		{name: "opaque", id: domain.OpaqueComponentIdentifier{Name: "flat dir jar"}, tag: 3},
		{name: "empty fields", id: domain.ProjectComponentIdentifier{}, tag: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := codec.NewComponentIdentifierSerializer()

			data, err := serialize.Marshal[domain.ComponentIdentifier](s, tt.id)
			require.NoError(t, err)
			require.NotEmpty(t, data)
			assert.Equal(t, tt.tag, data[0])

			got, err := serialize.Unmarshal[domain.ComponentIdentifier](s, data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, got)
			assert.Equal(t, tt.id.DisplayName(), got.DisplayName())
		})
	}
}

func TestComponentIdentifierSerializer_Errors(t *testing.T) {
	t.Parallel()

	t.Run("nil identifier", func(t *testing.T) {
		t.Parallel()
		_, err := serialize.Marshal[domain.ComponentIdentifier](codec.NewComponentIdentifierSerializer(), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnsupportedComponentIdentifier)
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()
		data, _ := hex.DecodeString("0400")
		_, err := serialize.Unmarshal[domain.ComponentIdentifier](codec.NewComponentIdentifierSerializer(), data)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMalformedStream)
		assert.ErrorContains(t, err, "unknown component identifier kind")
	})

	t.Run("truncated project", func(t *testing.T) {
		t.Parallel()
		data, _ := hex.DecodeString("01013a")
		_, err := serialize.Unmarshal[domain.ComponentIdentifier](codec.NewComponentIdentifierSerializer(), data)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMalformedStream)
	})
}
