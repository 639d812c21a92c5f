package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/prepsmart/internal/catalog"
)

// Player opens play sessions for the signed-in learner.
type Player struct {
	catalog  catalog.Catalog
	sessions SessionProvider
	opts     []Option
}

// New creates a Player. opts apply to every session it opens.
func New(c catalog.Catalog, sessions SessionProvider, opts ...Option) *Player {
	return &Player{catalog: c, sessions: sessions, opts: opts}
}

// Open returns a fresh NotStarted session for moduleID. Without a signed-in
// learner it navigates to the sign-in path and returns ErrNotSignedIn. An
// unknown module is reported as *LookupError.
func (p *Player) Open(ctx context.Context, moduleID string) (*Session, error) {
	st := defaultSettings()
	for _, o := range p.opts {
		o(&st)
	}

	user, err := p.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	if user == nil {
		st.navigator.NavigateTo(PathSignIn)
		return nil, ErrNotSignedIn
	}

	m, err := p.catalog.Lookup(moduleID)
	if err != nil {
		return nil, &LookupError{ModuleID: moduleID, Err: err}
	}
	if len(m.Steps) == 0 {
		return nil, &LookupError{ModuleID: moduleID, Err: ErrNoSteps}
	}

	st.user = user
	st.log.Debug("module opened", "module", moduleID, "user", user.ID)
	return newSession(m, st), nil
}

// IsNotFound reports whether err is a lookup failure for an unknown module.
func IsNotFound(err error) bool {
	var le *LookupError
	return errors.As(err, &le) && errors.Is(le.Err, catalog.ErrModuleNotFound)
}
