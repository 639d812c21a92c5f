package notfound

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prepsmart/internal/router"
)

func TestNotFoundScreen(t *testing.T) {
	s := New("99")
	assert.Equal(t, "Module Not Found", s.Title())

	view := s.View(100, 30)
	assert.Contains(t, view, "Module Not Found")
	assert.Contains(t, view, "id: 99")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}
