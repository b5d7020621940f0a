// Package palette сериализует палитру документа в текстовую таблицу,
// которую понимают сгенерированные Lua-скрипты.
package palette

import (
	"fmt"
	"strings"

	"AutopaintClient/internal/editor"
)

// MaxEntries — скриптам отдаются только первые 16 записей палитры:
// индексы 0-F, по одному hex-символу в drawHexGrid.
const MaxEntries = 16

// Table возвращает таблицу вида {[0]=Color{r=..,g=..,b=..,a=..},...}.
// Полностью прозрачные записи принудительно делаются непрозрачными:
// индекс 0 у рантайма скриптов особый, прозрачный цвет в превью нежелателен.
// Без палитры возвращается пустая таблица "{}".
func Table(p *editor.Palette) string {
	if p == nil || p.Size() == 0 {
		return "{}"
	}

	var b strings.Builder
	b.WriteString("{")
	for i := 0; i < p.Size() && i < MaxEntries; i++ {
		c := p.Entry(i)
		a := c.A
		if a == 0 {
			a = 255
		}
		fmt.Fprintf(&b, "[%d]=Color{r=%d,g=%d,b=%d,a=%d},", i, c.R, c.G, c.B, a)
	}
	b.WriteString("}")
	return b.String()
}

// ForDocument достаёт палитру нулевого кадра активного документа.
// Нет документа или спрайта — пустая таблица.
func ForDocument(doc *editor.Document) string {
	if doc == nil || doc.Sprite == nil {
		return "{}"
	}
	return Table(doc.Sprite.PaletteAt(0))
}
