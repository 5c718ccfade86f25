// Package engagement persists computed engagement snapshots for
// replay and debugging. The snapshot layer is an opaque store: the
// core never reads it back as a source of truth.
package engagement

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/lighthouise/engine/internal/config"
	"github.com/lighthouise/engine/internal/model"
)

// ErrNotFound is returned when a snapshot id does not exist.
var ErrNotFound = eris.New("engagement: snapshot not found")

// Store defines snapshot persistence.
type Store interface {
	Save(ctx context.Context, snap *model.EngagementSnapshot) error
	Get(ctx context.Context, id string) (*model.EngagementSnapshot, error)
	List(ctx context.Context, limit int) ([]model.EngagementSnapshot, error)
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		path := cfg.Path
		if path == "" {
			path = "lighthouise.db"
		}
		return NewSQLite(path)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("engagement: unknown store driver %q", cfg.Driver)
	}
}
