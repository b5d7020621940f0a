package interpreter

import (
	"fmt"
	"strings"

	"AutopaintClient/internal/editor"
	"AutopaintClient/internal/palette"
)

// Сентинели «выделения нет»: отрицательный старт и практически
// бесконечные размеры, чтобы проверка границ в Lua всегда проходила.
const (
	noSelectionCoord = -1
	noSelectionSize  = 999999
)

// drawHexGridLua — декодер пиксельной сетки по индексам палитры.
// Каждый символ hex-строки — индекс 0-F; пиксели вне границ выделения
// (если оно есть) пропускаются.
const drawHexGridLua = `function drawHexGrid(startX, startY, width, hexString, palette, selX, selY, selW, selH)
    local x = 0
    local y = 0
    selX = selX or -1
    selY = selY or -1
    selW = selW or 999999
    selH = selH or 999999
    for i = 1, #hexString do
        local char = hexString:sub(i, i)
        local colorIndex = tonumber(char, 16)
        if colorIndex and palette[colorIndex] then
            local px = startX + x
            local py = startY + y
            -- Check if pixel is within selection bounds
            if selX == -1 or (px >= selX and px < selX + selW and py >= selY and py < selY + selH) then
                app.activeImage:drawPixel(px, py, palette[colorIndex])
            end
        end
        x = x + 1
        if x >= width then
            x = 0
            y = y + 1
        end
    end
end
`

// Assemble дополняет извлечённый код преамбулой (helper, таблица палитры,
// локальные границы выделения) и оборачивает всё в app.transaction —
// одна отмена в истории хоста на весь сгенерированный скрипт.
func Assemble(code string, pal *editor.Palette, sel *editor.Selection) string {
	selX, selY := noSelectionCoord, noSelectionCoord
	selW, selH := noSelectionSize, noSelectionSize
	if sel != nil {
		selX, selY, selW, selH = sel.X, sel.Y, sel.W, sel.H
	}

	var b strings.Builder
	b.WriteString("app.transaction(function()\n")
	b.WriteString(drawHexGridLua)
	b.WriteString("\n-- Current palette\nlocal palette = ")
	b.WriteString(palette.Table(pal))
	b.WriteString("\n\n-- Selection bounds (if any)\n")
	fmt.Fprintf(&b, "local selX, selY, selW, selH = %d, %d, %d, %d\n\n", selX, selY, selW, selH)
	b.WriteString(code)
	b.WriteString("\nend)")
	return b.String()
}
