package app

import (
	"context"

	"github.com/abhisek/prepsmart/internal/player"
	"github.com/abhisek/prepsmart/internal/store"
)

// profileSessions exposes the signed-in local profile as the player's
// current user.
type profileSessions struct {
	profiles store.ProfileRepo
}

func (p profileSessions) CurrentUser(ctx context.Context) (*player.User, error) {
	if p.profiles == nil {
		return nil, nil
	}
	prof, err := p.profiles.Current(ctx)
	if err != nil || prof == nil {
		return nil, err
	}
	return &player.User{ID: prof.ID, Name: prof.Name, Role: prof.Role}, nil
}
