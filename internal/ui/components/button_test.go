package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestButtonView(t *testing.T) {
	active := NewButton("Start Module", true).View()
	assert.Contains(t, active, "▸ Start Module")

	inactive := NewButton("Continue", false).View()
	assert.Contains(t, inactive, "Continue")
	assert.NotContains(t, inactive, "▸")
}
