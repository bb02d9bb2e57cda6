package analysis

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/adapters/fs"
)

const NodeID graft.ID = "adapter.analysis"

// StateFile is the analysis location relative to the working directory.
const StateFile = ".forge/analysis.json"

func init() {
	graft.Register(graft.Node[*Store]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID},
		Run: func(ctx context.Context) (*Store, error) {
			hasher, err := graft.Dep[*fs.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(StateFile, hasher)
		},
	})
}
