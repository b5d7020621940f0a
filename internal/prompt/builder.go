// Package prompt собирает провайдеро-независимую инструкцию для генерации
// Lua-скрипта. Сборка детерминирована: одинаковый вход всегда даёт
// байт-в-байт одинаковый текст.
package prompt

import (
	"fmt"
	"strings"

	"AutopaintClient/internal/editor"
)

// Input — снимок данных для одной сборки промпта.
type Input struct {
	UserPrompt   string
	Width        int
	Height       int
	Selection    *editor.Selection // nil — выделения нет
	PaletteTable string
}

const preamble = "Context: You are Aseprite Assistant. Use Lua to script Aseprite.\n\n"

const layerSafety = "CRITICAL LAYER SAFETY: Always start by creating a new layer AND cel:\n" +
	"```lua\n" +
	"local sprite = app.activeSprite\n" +
	"local layer = sprite:newLayer()\n" +
	"layer.name = 'AI Generation'\n" +
	"app.activeLayer = layer\n" +
	"-- CRITICAL: Create a cel (image) in this layer\n" +
	"local cel = sprite:newCel(layer, app.activeFrame)\n" +
	"```\n\n"

const drawingMethod = "OPTIMIZED DRAWING METHOD - You have a helper function for efficient drawing:\n" +
	"```lua\n" +
	"-- drawHexGrid(startX, startY, width, hexString, palette)\n" +
	"-- hexString: each character (0-F) is a palette index\n" +
	"-- Example: \"0001112000011120\" draws a 4x4 grid\n" +
	"```\n\n"

const usageAndStyle = "AVAILABLE METHODS:\n" +
	"1. PREFERRED: Use drawHexGrid() for efficient pixel-perfect drawing\n" +
	"   - Generate a hex string where each char is a palette index\n" +
	"   - Example: drawHexGrid(0, 0, 8, \"00112233...\", palette)\n" +
	"2. FALLBACK: Use app.activeImage:drawPixel(x, y, palette[index]) ONLY if needed\n" +
	"   - Always use palette[index], NEVER Color{r=...,g=...,b=...}\n" +
	"3. ANIMATION: Create frames with sprite:newFrame() or sprite:newEmptyFrame()\n\n" +
	"STYLE REQUIREMENTS:\n" +
	"- Create PROFESSIONAL, HIGH-QUALITY pixel art\n" +
	"- Use shading and lighting for depth (not flat colors)\n" +
	"- Maintain coherent color palette usage\n" +
	"- Ensure proper proportions for pixel art\n" +
	"- NO stray pixels or noise\n\n" +
	"ALWAYS end with `app.refresh()`\n\n"

// Build собирает итоговый текст промпта. Чистая функция без побочных
// эффектов и случайности.
func Build(in Input) string {
	var b strings.Builder
	b.WriteString(preamble)

	// Размер холста указываем только когда известны обе стороны
	if in.Width > 0 && in.Height > 0 {
		fmt.Fprintf(&b, "CANVAS SIZE: %dx%d pixels. ", in.Width, in.Height)
	}
	if sel := in.Selection; sel != nil {
		fmt.Fprintf(&b, "ACTIVE SELECTION: x=%d, y=%d, width=%d, height=%d. ONLY draw within this area! ",
			sel.X, sel.Y, sel.W, sel.H)
	}
	b.WriteString("\n\n")

	b.WriteString(layerSafety)
	b.WriteString(drawingMethod)
	b.WriteString("CURRENT PALETTE (use ONLY these indices 0-F):\n")
	b.WriteString(in.PaletteTable)
	b.WriteString("\n\n")
	b.WriteString(usageAndStyle)
	b.WriteString("User Request: ")
	b.WriteString(in.UserPrompt)
	b.WriteString("\n\nOutput MUST be a complete Lua code block in markdown format.")
	return b.String()
}
