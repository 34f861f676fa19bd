package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/fxamacker/cbor/v2"
	"go.trai.ch/graphcache/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// Output format names.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

// JSONRenderer writes sessions as an indented JSON array.
type JSONRenderer struct{}

// Format returns "json".
func (JSONRenderer) Format() string { return FormatJSON }

// Render writes the sessions as JSON.
func (JSONRenderer) Render(w io.Writer, sessions []domain.SessionResults) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newSessionViews(sessions)); err != nil {
		return errors.Join(domain.ErrRenderFailed, err)
	}
	return nil
}

// YAMLRenderer writes sessions as a YAML sequence.
type YAMLRenderer struct{}

// Format returns "yaml".
func (YAMLRenderer) Format() string { return FormatYAML }

// Render writes the sessions as YAML.
func (YAMLRenderer) Render(w io.Writer, sessions []domain.SessionResults) error {
	// yaml.v3 flattens writer errors into text, so encode in memory first.
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(newSessionViews(sessions)); err != nil {
		return errors.Join(domain.ErrRenderFailed, err)
	}
	if err := enc.Close(); err != nil {
		return errors.Join(domain.ErrRenderFailed, err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return errors.Join(domain.ErrRenderFailed, err)
	}
	return nil
}

// CBORRenderer writes sessions as one CBOR array in Core Deterministic Encoding.
type CBORRenderer struct {
	mode cbor.EncMode
}

// NewCBORRenderer creates a CBORRenderer.
func NewCBORRenderer() (*CBORRenderer, error) {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	return &CBORRenderer{mode: mode}, nil
}

// Format returns "cbor".
func (*CBORRenderer) Format() string { return FormatCBOR }

// Render writes the sessions as CBOR.
func (r *CBORRenderer) Render(w io.Writer, sessions []domain.SessionResults) error {
	if err := r.mode.NewEncoder(w).Encode(newSessionViews(sessions)); err != nil {
		return errors.Join(domain.ErrRenderFailed, err)
	}
	return nil
}
