package intro

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prepsmart/internal/catalog"
	"github.com/abhisek/prepsmart/internal/player"
	"github.com/abhisek/prepsmart/internal/router"
	"github.com/abhisek/prepsmart/internal/screens/notfound"
	"github.com/abhisek/prepsmart/internal/screens/play"
)

type stubCatalog map[string]*catalog.Module

func (c stubCatalog) Lookup(id string) (*catalog.Module, error) {
	if m, ok := c[id]; ok {
		return m, nil
	}
	return nil, catalog.ErrModuleNotFound
}

func (c stubCatalog) All() []*catalog.Module {
	var out []*catalog.Module
	for _, m := range c {
		out = append(out, m)
	}
	return out
}

type stubUser struct{ user *player.User }

func (s stubUser) CurrentUser(context.Context) (*player.User, error) { return s.user, nil }

func testPlayer(user *player.User, nav player.Navigator) *player.Player {
	c := stubCatalog{"1": {
		ID:            "1",
		Title:         "Earthquake Safety Basics",
		Description:   "Learn what to do before, during and after an earthquake.",
		Difficulty:    catalog.Beginner,
		EstimatedTime: "15 minutes",
		Points:        200,
		Steps: []catalog.Step{
			&catalog.ContentStep{Name: "Understanding Earthquakes"},
			&catalog.ContentStep{Name: "Drop, Cover, Hold On"},
		},
	}}
	return player.New(c, stubUser{user: user}, player.WithNavigator(nav))
}

func open(t *testing.T, s *IntroScreen) tea.Cmd {
	t.Helper()
	cmd := s.Init()
	require.NotNil(t, cmd)
	_, next := s.Update(cmd())
	return next
}

func TestIntroScreen_Loading(t *testing.T) {
	s := New(testPlayer(nil, nil), "1")
	assert.Contains(t, s.View(100, 30), "Loading module")
}

func TestIntroScreen_ShowsModule(t *testing.T) {
	s := New(testPlayer(&player.User{ID: "u1"}, nil), "1")
	assert.Nil(t, open(t, s))
	assert.Equal(t, "Earthquake Safety Basics", s.Title())

	view := s.View(100, 40)
	assert.Contains(t, view, "What You'll Learn")
	assert.Contains(t, view, "Drop, Cover, Hold On")
	assert.Contains(t, view, "15 minutes")
	assert.Contains(t, view, "200 points")
	assert.Contains(t, view, "Beginner")
}

func TestIntroScreen_StartReplacesWithPlayer(t *testing.T) {
	s := New(testPlayer(&player.User{ID: "u1"}, nil), "1")
	open(t, s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	ps, ok := msg.Screen.(*play.PlayScreen)
	require.True(t, ok)
	assert.Equal(t, player.StateInProgress, ps.Session().State())
	assert.Equal(t, 0, ps.Session().CurrentIndex())
}

func TestIntroScreen_UnknownModule(t *testing.T) {
	s := New(testPlayer(&player.User{ID: "u1"}, nil), "99")
	cmd := open(t, s)
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &notfound.NotFoundScreen{}, msg.Screen)
}

func TestIntroScreen_NotSignedIn(t *testing.T) {
	var paths []string
	nav := player.NavigatorFunc(func(p string) { paths = append(paths, p) })
	s := New(testPlayer(nil, nav), "1")
	assert.Nil(t, open(t, s))

	assert.Equal(t, []string{player.PathSignIn}, paths)
	assert.Contains(t, s.View(100, 30), "Please sign in")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
}
