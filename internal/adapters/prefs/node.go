package prefs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/grindlemire/graft"
	"github.com/spf13/afero"
	"go.trai.ch/smartmate/internal/adapters/logger"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the preference store Graft node.
const NodeID graft.ID = "adapter.prefs"

func init() {
	graft.Register(graft.Node[ports.PreferenceStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.PreferenceStore, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			dir, err := os.UserConfigDir()
			if err != nil {
				return nil, zerr.Wrap(err, "failed to resolve user config directory")
			}

			return Open(afero.NewOsFs(), filepath.Join(dir, domain.AppName, domain.PreferencesFileName), log)
		},
	})
}
