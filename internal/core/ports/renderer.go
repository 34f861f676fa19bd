package ports

import (
	"io"

	"go.trai.ch/graphcache/internal/core/domain"
)

// Renderer writes decoded sessions in one output format.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Format returns the name the renderer is selected by.
	Format() string

	// Render writes the sessions to w in the order given.
	Render(w io.Writer, sessions []domain.SessionResults) error
}
