package prompt

import (
	"testing"

	"AutopaintClient/internal/editor"

	"github.com/stretchr/testify/assert"
)

func TestBuildIsDeterministic(t *testing.T) {
	in := Input{
		UserPrompt:   "draw a red square",
		Width:        32,
		Height:       32,
		Selection:    &editor.Selection{X: 2, Y: 3, W: 8, H: 8},
		PaletteTable: "{[0]=Color{r=0,g=0,b=0,a=255},}",
	}
	assert.Equal(t, Build(in), Build(in))
}

func TestBuildCanvasSizeClause(t *testing.T) {
	in := Input{UserPrompt: "x", Width: 64, Height: 48}
	assert.Contains(t, Build(in), "CANVAS SIZE: 64x48 pixels.")

	// Одна из сторон неизвестна — клауза не попадает в текст
	in.Height = 0
	assert.NotContains(t, Build(in), "CANVAS SIZE")
}

func TestBuildSelectionClause(t *testing.T) {
	in := Input{UserPrompt: "x", Width: 32, Height: 32}
	assert.NotContains(t, Build(in), "ACTIVE SELECTION")

	in.Selection = &editor.Selection{X: 1, Y: 2, W: 3, H: 4}
	out := Build(in)
	assert.Contains(t, out, "ACTIVE SELECTION: x=1, y=2, width=3, height=4.")
	assert.Contains(t, out, "ONLY draw within this area!")
}

func TestBuildEmbedsPaletteAndRequest(t *testing.T) {
	in := Input{UserPrompt: "draw a cat", PaletteTable: "{[0]=Color{r=9,g=9,b=9,a=255},}"}
	out := Build(in)
	assert.Contains(t, out, in.PaletteTable)
	assert.Contains(t, out, "User Request: draw a cat")
}
