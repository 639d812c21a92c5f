package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepsmart/internal/rewards"
	"github.com/abhisek/prepsmart/internal/ui/theme"
)

const badgeNovice = `┌─────┐
│  ·  │
│ ─┼─ │
└─────┘`

const badgePrepared = `┌─────┐
│  ▲  │
│ ─┼─ │
└─────┘`

const badgeResponder = `┌─────┐
│ ▲ ▲ │
│ ─┼─ │
└──╥──┘`

const badgeGuardian = `┌─────┐
│ ★ ★ │
│ ─┼─ │
└─╥═╥─┘
  ╚═╝`

// RenderBadge returns the shield art for a rank.
func RenderBadge(r rewards.Rank) string {
	art := badgeNovice
	fg := theme.TextDim

	switch r {
	case rewards.RankPrepared:
		art = badgePrepared
		fg = theme.Secondary
	case rewards.RankResponder:
		art = badgeResponder
		fg = theme.Primary
	case rewards.RankGuardian:
		art = badgeGuardian
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
