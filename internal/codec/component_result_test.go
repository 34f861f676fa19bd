package codec_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/graphcache/internal/codec"
	"go.trai.ch/graphcache/internal/core/domain"
	"go.trai.ch/graphcache/internal/serialize"
)

// Golden encodings of the apiElements scenario. If these change, every stored
// session becomes unreadable. Validate the change carefully before updating them.
const (
	goldenWithRepository = "2a05636f6d2e78036c696203312e30010000097265717565737465640005636f6d2e78036c6962" +
		"03312e300b617069456c656d656e747301106f72672e677261646c652e757361676500086a6176612d617069" +
		"010c6d6176656e43656e7472616c"
	goldenWithoutRepository = "2a05636f6d2e78036c696203312e30010000097265717565737465640005636f6d2e78036c6962" +
		"03312e300b617069456c656d656e747301106f72672e677261646c652e757361676500086a6176612d617069" +
		"00"
	// goldenRepeatedReason is record 43 written right after record 42 in the same session:
	// the "requested" description is a back-reference to index 0.
	goldenRepeatedReason = "2b05636f6d2e78036c696203312e30010001000005636f6d2e78036c696203312e300b617069456c65" +
		"6d656e747301106f72672e677261646c652e757361676500086a6176612d617069010c6d6176656e43656e74" +
		"72616c"
)

func strPtr(s string) *string {
	return &s
}

func apiElements(id int64, repository *string) domain.DetachedComponentResult {
	module := domain.NewModuleVersionIdentifier("com.x", "lib", "1.0")
	return domain.DetachedComponentResult{
		ID:         id,
		Module:     module,
		Reason:     domain.Requested(),
		Component:  domain.ModuleComponentFor(module),
		Variant:    "apiElements",
		Attributes: domain.EmptyAttributes().With("org.gradle.usage", "java-api"),
		Repository: repository,
	}
}

func encode(t *testing.T, s *codec.ComponentResultSerializer, results ...domain.ComponentResult) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := serialize.NewEncoder(&buf)
	for _, r := range results {
		require.NoError(t, s.Write(enc, r))
	}
	return buf.Bytes()
}

func decodeAll(t *testing.T, data []byte, n int) []domain.DetachedComponentResult {
	t.Helper()
	s := codec.NewComponentResultSerializer(nil)
	dec := serialize.NewDecoder(bytes.NewReader(data))
	out := make([]domain.DetachedComponentResult, 0, n)
	for range n {
		r, err := s.Read(dec)
		require.NoError(t, err)
		out = append(out, r)
	}
	assert.Equal(t, int64(len(data)), dec.Position(), "trailing bytes after %d records", n)
	return out
}

func TestComponentResultSerializer_RoundTrip(t *testing.T) {
	t.Parallel()

	module := domain.NewModuleVersionIdentifier("org.example", "core", "2.3.1")

	tests := []struct {
		name   string
		result domain.DetachedComponentResult
	}{
		{
			name:   "scenario with repository",
			result: apiElements(42, strPtr("mavenCentral")),
		},
		{
			name:   "scenario without repository",
			result: apiElements(42, nil),
		},
		{
			name:   "empty repository is not absent",
			result: apiElements(7, strPtr("")),
		},
		{
			name: "empty attributes",
			result: domain.DetachedComponentResult{
				ID:        0,
				Module:    module,
				Reason:    domain.Root(),
				Component: domain.ProjectComponentIdentifier{BuildPath: ":", ProjectPath: ":", ProjectName: "app"},
				Variant:   "runtimeElements",
			},
		},
		{
			name: "composite reason with custom descriptions",
			result: domain.DetachedComponentResult{
				ID:     9000,
				Module: module,
				Reason: domain.NewSelectionReason(
					domain.NewSelectionDescriptor(domain.CauseRequested),
					domain.DescribedAs(domain.CauseConflictResolution, "between versions 2.3.1 and 2.0"),
					domain.DescribedAs(domain.CauseSelectedByRule, "pinned by platform"),
				),
				Component:  domain.ModuleComponentFor(module),
				Variant:    "apiElements",
				Attributes: domain.EmptyAttributes().With("org.gradle.jvm.version", 17).With("org.gradle.status", "release"),
				Repository: strPtr("maven"),
			},
		},
		{
			name: "library binary with typed attributes",
			result: domain.DetachedComponentResult{
				ID:        128,
				Module:    domain.NewModuleVersionIdentifier("", "native", ""),
				Reason:    domain.Forced(),
				Component: domain.LibraryBinaryIdentifier{ProjectPath: ":native", LibraryName: "hello", Variant: "debug"},
				Variant:   "debug",
				Attributes: domain.EmptyAttributes().
					With("optimized", false).
					With("org.gradle.native.debuggable", true).
					With("abi", int64(-3)),
			},
		},
		{
			name: "opaque component with no reason",
			result: domain.DetachedComponentResult{
				ID:        1 << 40,
				Module:    module,
				Component: domain.OpaqueComponentIdentifier{Name: "local jar"},
				Variant:   "default",
			},
		},
		{
			name: "negative result id",
			result: domain.DetachedComponentResult{
				ID:        -65,
				Module:    module,
				Reason:    domain.Requested(),
				Component: domain.ModuleComponentFor(module),
				Variant:   "apiElements",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := encode(t, codec.NewComponentResultSerializer(nil), tt.result)
			got := decodeAll(t, data, 1)

			assert.Equal(t, tt.result, got[0])
		})
	}
}

func TestComponentResultSerializer_NullPreservation(t *testing.T) {
	t.Parallel()

	absent := decodeAll(t, encode(t, codec.NewComponentResultSerializer(nil), apiElements(42, nil)), 1)[0]
	repo, ok := absent.RepositoryID()
	assert.False(t, ok)
	assert.Empty(t, repo)
	assert.Nil(t, absent.Repository)

	present := decodeAll(t, encode(t, codec.NewComponentResultSerializer(nil), apiElements(42, strPtr("repoA"))), 1)[0]
	repo, ok = present.RepositoryID()
	assert.True(t, ok)
	assert.Equal(t, "repoA", repo)
}

func TestComponentResultSerializer_GoldenBytes(t *testing.T) {
	t.Parallel()

	t.Run("with repository", func(t *testing.T) {
		t.Parallel()
		data := encode(t, codec.NewComponentResultSerializer(nil), apiElements(42, strPtr("mavenCentral")))
		assert.Equal(t, goldenWithRepository, hex.EncodeToString(data), "field order or primitive encoding changed")
	})

	t.Run("without repository", func(t *testing.T) {
		t.Parallel()
		data := encode(t, codec.NewComponentResultSerializer(nil), apiElements(42, nil))
		assert.Equal(t, goldenWithoutRepository, hex.EncodeToString(data), "field order or primitive encoding changed")
	})

	t.Run("repeated reason in one session", func(t *testing.T) {
		t.Parallel()
		data := encode(t, codec.NewComponentResultSerializer(nil),
			apiElements(42, strPtr("mavenCentral")),
			apiElements(43, strPtr("mavenCentral")),
		)
		assert.Equal(t, goldenWithRepository+goldenRepeatedReason, hex.EncodeToString(data))
	})

	t.Run("golden bytes decode", func(t *testing.T) {
		t.Parallel()
		data, err := hex.DecodeString(goldenWithRepository + goldenRepeatedReason)
		require.NoError(t, err)

		got := decodeAll(t, data, 2)
		assert.Equal(t, apiElements(42, strPtr("mavenCentral")), got[0])
		assert.Equal(t, apiElements(43, strPtr("mavenCentral")), got[1])
	})
}

// liveResult stands in for a node owned by the resolution engine.
type liveResult struct {
	id      int64
	module  domain.ModuleVersionIdentifier
	variant domain.Describable
	repo    string
}

type variantName struct {
	name string
}

func (v variantName) DisplayName() string { return v.name }

func (r *liveResult) ResultID() int64                                  { return r.id }
func (r *liveResult) ModuleVersion() domain.ModuleVersionIdentifier    { return r.module }
func (r *liveResult) SelectionReason() domain.ComponentSelectionReason { return domain.Forced() }
func (r *liveResult) ComponentID() domain.ComponentIdentifier {
	return domain.ModuleComponentFor(r.module)
}
func (r *liveResult) VariantName() domain.Describable { return r.variant }
func (r *liveResult) VariantAttributes() domain.AttributeContainer {
	return domain.EmptyAttributes().With("org.gradle.category", "library")
}

func (r *liveResult) RepositoryID() (string, bool) { return r.repo, r.repo != "" }

func TestComponentResultSerializer_LiveResultIsDetached(t *testing.T) {
	t.Parallel()

	live := &liveResult{
		id:      3,
		module:  domain.NewModuleVersionIdentifier("com.x", "util", "4.1"),
		variant: variantName{name: "runtimeElements"},
		repo:    "ivy",
	}

	got := decodeAll(t, encode(t, codec.NewComponentResultSerializer(nil), live), 1)[0]

	assert.Equal(t, domain.Detach(live), got)
	assert.Equal(t, "runtimeElements", got.VariantName().DisplayName())

	// Mutating the live node afterwards does not reach the decoded value.
	live.repo = ""
	repo, ok := got.RepositoryID()
	assert.True(t, ok)
	assert.Equal(t, "ivy", repo)
}

func TestComponentResultSerializer_ResetIsolation(t *testing.T) {
	t.Parallel()

	r := apiElements(42, strPtr("mavenCentral"))

	t.Run("session after reset decodes alone", func(t *testing.T) {
		t.Parallel()
		writer := codec.NewComponentResultSerializer(nil)
		_ = encode(t, writer, r)

		writer.Reset()
		second := encode(t, writer, r)

		assert.Equal(t, goldenWithRepository, hex.EncodeToString(second))
		got := decodeAll(t, second, 1)
		assert.Equal(t, r, got[0])
	})

	t.Run("session without reset depends on the first", func(t *testing.T) {
		t.Parallel()
		writer := codec.NewComponentResultSerializer(nil)
		_ = encode(t, writer, r)
		second := encode(t, writer, r)

		_, err := codec.NewComponentResultSerializer(nil).Read(serialize.NewDecoder(bytes.NewReader(second)))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMalformedStream)
		assert.ErrorContains(t, err, "description reference not seen in this session")
	})

	t.Run("reader reset between sessions", func(t *testing.T) {
		t.Parallel()
		first := encode(t, codec.NewComponentResultSerializer(nil), r)
		second := encode(t, codec.NewComponentResultSerializer(nil), r)

		reader := codec.NewComponentResultSerializer(nil)
		_, err := reader.Read(serialize.NewDecoder(bytes.NewReader(first)))
		require.NoError(t, err)

		reader.Reset()
		got, err := reader.Read(serialize.NewDecoder(bytes.NewReader(second)))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	})
}

func TestComponentResultSerializer_ResetState(t *testing.T) {
	t.Parallel()

	s := codec.NewComponentResultSerializer(nil)

	// Safe before first use.
	s.Reset()
	written, read := s.Reasons().SessionSize()
	assert.Zero(t, written)
	assert.Zero(t, read)

	data := encode(t, s, apiElements(1, nil), apiElements(2, nil))
	written, _ = s.Reasons().SessionSize()
	assert.Equal(t, 1, written)

	_, err := s.Read(serialize.NewDecoder(bytes.NewReader(data)))
	require.NoError(t, err)
	_, read = s.Reasons().SessionSize()
	assert.Equal(t, 1, read)

	s.Reset()
	s.Reset()
	written, read = s.Reasons().SessionSize()
	assert.Zero(t, written)
	assert.Zero(t, read)
}

func TestComponentResultSerializer_Malformed(t *testing.T) {
	t.Parallel()

	full, err := hex.DecodeString(goldenWithoutRepository)
	require.NoError(t, err)

	t.Run("every truncation fails", func(t *testing.T) {
		t.Parallel()
		for n := range len(full) {
			_, err := codec.NewComponentResultSerializer(nil).Read(serialize.NewDecoder(bytes.NewReader(full[:n])))
			require.Error(t, err, "prefix of %d bytes decoded", n)
			assert.ErrorIs(t, err, domain.ErrMalformedStream)
			assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		}
	})

	t.Run("invalid presence flag", func(t *testing.T) {
		t.Parallel()
		data := bytes.Clone(full)
		data[len(data)-1] = 2

		_, err := codec.NewComponentResultSerializer(nil).Read(serialize.NewDecoder(bytes.NewReader(data)))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMalformedStream)
		assert.NotErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.ErrorContains(t, err, "invalid boolean flag")
	})

	t.Run("stream of another serializer", func(t *testing.T) {
		t.Parallel()
		data, err := serialize.Marshal[domain.ModuleVersionIdentifier](
			codec.NewModuleVersionIdentifierSerializer(),
			domain.NewModuleVersionIdentifier("com.x", "lib", "1.0"),
		)
		require.NoError(t, err)

		_, err = codec.NewComponentResultSerializer(nil).Read(serialize.NewDecoder(bytes.NewReader(data)))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMalformedStream)
	})
}

var errDiskFull = errors.New("disk full")

// limitWriter accepts limit bytes and then fails.
type limitWriter struct {
	buf   bytes.Buffer
	limit int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	room := w.limit - w.buf.Len()
	if room <= 0 {
		return 0, errDiskFull
	}
	if len(p) > room {
		w.buf.Write(p[:room])
		return room, errDiskFull
	}
	return w.buf.Write(p)
}

func TestComponentResultSerializer_IOFailures(t *testing.T) {
	t.Parallel()

	t.Run("write failure is returned unchanged", func(t *testing.T) {
		t.Parallel()
		full, err := hex.DecodeString(goldenWithRepository)
		require.NoError(t, err)

		for limit := range len(full) {
			w := &limitWriter{limit: limit}
			err := codec.NewComponentResultSerializer(nil).Write(serialize.NewEncoder(w), apiElements(42, strPtr("mavenCentral")))
			require.Error(t, err, "write with limit %d succeeded", limit)
			assert.Equal(t, errDiskFull, err)
			// Partial output is left in place.
			assert.Equal(t, hex.EncodeToString(full[:limit]), hex.EncodeToString(w.buf.Bytes()))
		}
	})

	t.Run("read failure is returned unchanged", func(t *testing.T) {
		t.Parallel()
		errBroken := errors.New("connection reset")
		_, err := codec.NewComponentResultSerializer(nil).Read(serialize.NewDecoder(iotest.ErrReader(errBroken)))
		require.Error(t, err)
		assert.Equal(t, errBroken, err)
	})
}

func TestComponentResultSerializer_WriteValidation(t *testing.T) {
	t.Parallel()

	t.Run("missing component id", func(t *testing.T) {
		t.Parallel()
		r := apiElements(1, nil)
		r.Component = nil

		var buf bytes.Buffer
		err := codec.NewComponentResultSerializer(nil).Write(serialize.NewEncoder(&buf), r)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnsupportedComponentIdentifier)
	})

	t.Run("missing variant name", func(t *testing.T) {
		t.Parallel()
		live := &liveResult{module: domain.NewModuleVersionIdentifier("a", "b", "c")}

		var buf bytes.Buffer
		err := codec.NewComponentResultSerializer(nil).Write(serialize.NewEncoder(&buf), live)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMissingVariantName)
		assert.Zero(t, buf.Len(), "nothing is written for a result without variant")
	})

	t.Run("unsupported attribute value", func(t *testing.T) {
		t.Parallel()
		r := apiElements(1, nil)
		r.Attributes = r.Attributes.With("weights", []float64{0.5})

		var buf bytes.Buffer
		err := codec.NewComponentResultSerializer(nil).Write(serialize.NewEncoder(&buf), r)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnsupportedAttributeType)
	})
}
