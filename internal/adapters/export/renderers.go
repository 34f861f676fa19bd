package export

import (
	"slices"

	"go.trai.ch/graphcache/internal/core/domain"
	"go.trai.ch/graphcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// Renderers returns one renderer per supported format.
func Renderers() ([]ports.Renderer, error) {
	cborRenderer, err := NewCBORRenderer()
	if err != nil {
		return nil, err
	}
	return []ports.Renderer{
		TextRenderer{},
		YAMLRenderer{},
		JSONRenderer{},
		cborRenderer,
	}, nil
}

// Lookup returns the renderer for format.
func Lookup(renderers []ports.Renderer, format string) (ports.Renderer, error) {
	i := slices.IndexFunc(renderers, func(r ports.Renderer) bool { return r.Format() == format })
	if i < 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownFormat, "cannot render results"), "format", format)
	}
	return renderers[i], nil
}
