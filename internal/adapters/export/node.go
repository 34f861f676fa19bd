package export

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/graphcache/internal/core/ports"
)

// NodeID is the unique identifier for the renderers Graft node.
const NodeID graft.ID = "adapter.renderers"

func init() {
	graft.Register(graft.Node[[]ports.Renderer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) ([]ports.Renderer, error) {
			return Renderers()
		},
	})
}
