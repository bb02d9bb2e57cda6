package artefacts

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/core/ports"
)

const NodeID graft.ID = "adapter.artefacts"

// StateFile is the default on-disk location of the artefact store.
const StateFile = ".forge/artefacts.json"

func init() {
	graft.Register(graft.Node[ports.ArtefactStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ArtefactStore, error) {
			return NewStore(StateFile)
		},
	})
}
