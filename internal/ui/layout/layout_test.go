package layout

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestFooterHints(t *testing.T) {
	tests := []struct {
		name   string
		hints  []KeyHint
		nested bool
		want   []string
	}{
		{"root defaults", nil, false, []string{"↑↓", "Enter", "Ctrl+C"}},
		{"nested defaults", nil, true, []string{"Esc", "Ctrl+C"}},
		{"screen hints", []KeyHint{{Key: "A-D", Description: "Choose"}}, true, []string{"A-D", "Ctrl+C"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FooterHints(tt.hints, tt.nested)
			keys := make([]string, len(got))
			for i, h := range got {
				keys[i] = h.Key
			}
			assert.Equal(t, tt.want, keys)
		})
	}
}

func TestFooterHintsKeepsScreenSlice(t *testing.T) {
	hints := make([]KeyHint, 1, 4)
	hints[0] = KeyHint{Key: "Enter", Description: "Continue"}
	FooterHints(hints, false)
	assert.Equal(t, KeyHint{}, hints[:2][1])
}

func TestHeaderRender(t *testing.T) {
	out := Header{Title: "Modules", Learner: "Asha", Points: 200}.Render(100)
	assert.Contains(t, out, "PrepSmart")
	assert.Contains(t, out, "Modules")
	assert.Contains(t, out, "Asha")
	assert.Contains(t, out, "★ 200 pts")

	out = Header{Title: "Sign In"}.Render(100)
	assert.Contains(t, out, "signed out")
	assert.NotContains(t, out, "pts")
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := Header{Title: "Home"}.Render(90)
	footer := RenderFooter(FooterHints(nil, false), 90)
	frame := RenderFrame(header, "body", footer, 90, 30)
	assert.Equal(t, 30, lipgloss.Height(frame))
	assert.Equal(t, 30-lipgloss.Height(header)-lipgloss.Height(footer), ContentHeight(header, footer, 30))
	assert.Equal(t, 0, ContentHeight(header, footer, 2))
}

func TestMinSizeMessage(t *testing.T) {
	assert.True(t, IsTooSmall(MinWidth-1, MinHeight))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))

	out := RenderMinSizeMessage(60, 20)
	assert.Contains(t, out, "PrepSmart")
	assert.Contains(t, out, "Window is 60 x 20")
}
