package palette_test

import (
	"testing"

	"github.com/sebaxchen/lookSocial/internal/palette"

	"github.com/stretchr/testify/assert"
)

func TestColorFor_IsStable(t *testing.T) {
	// Arrange
	p := palette.New()

	// Act
	first := p.ColorFor("Marketing")
	second := p.ColorFor("Marketing")

	// Assert
	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestColorFor_DeterministicAcrossPalettes(t *testing.T) {
	// Arrange
	a := palette.New()
	b := palette.New()

	// Act & Assert
	assert.Equal(t, a.ColorFor("Design"), b.ColorFor("Design"))
}

func TestExistingColor_DoesNotAssign(t *testing.T) {
	// Arrange
	p := palette.New()

	// Act
	_, ok := p.ExistingColor("nobody")

	// Assert
	assert.False(t, ok)
}

func TestSetColor_Pins(t *testing.T) {
	// Arrange
	p := palette.New()

	// Act
	p.SetColor("Ops", "#123456")

	// Assert
	assert.Equal(t, "#123456", p.ColorFor("Ops"))
	color, ok := p.ExistingColor("Ops")
	assert.True(t, ok)
	assert.Equal(t, "#123456", color)
}
