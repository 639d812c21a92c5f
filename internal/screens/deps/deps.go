// Package deps carries the services shared by the TUI screens.
package deps

import (
	"context"

	"github.com/abhisek/prepsmart/internal/catalog"
	"github.com/abhisek/prepsmart/internal/logging"
	"github.com/abhisek/prepsmart/internal/player"
	"github.com/abhisek/prepsmart/internal/rewards"
	"github.com/abhisek/prepsmart/internal/store"
)

// Deps are the services screens are built from. Any repo may be nil when
// the app runs without a database.
type Deps struct {
	Catalog  catalog.Catalog
	Player   *player.Player
	Profiles store.ProfileRepo
	Events   store.EventRepo
	Rewards  *rewards.Service
	Log      *logging.Logger
}

// CurrentProfile returns the signed-in profile, or nil.
func (d Deps) CurrentProfile(ctx context.Context) (*store.Profile, error) {
	if d.Profiles == nil {
		return nil, nil
	}
	return d.Profiles.Current(ctx)
}

// Logger returns Log, or a no-op logger when unset.
func (d Deps) Logger() *logging.Logger {
	if d.Log == nil {
		return logging.Nop()
	}
	return d.Log
}
