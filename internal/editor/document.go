package editor

// Color — цвет палитры в формате RGBA.
type Color struct {
	R, G, B, A uint8
}

// Palette — индексированная таблица цветов спрайта.
type Palette struct {
	entries []Color
}

func NewPalette(entries []Color) *Palette {
	cp := make([]Color, len(entries))
	copy(cp, entries)
	return &Palette{entries: cp}
}

func (p *Palette) Size() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// Entry возвращает цвет по индексу; выход за границы — нулевой цвет.
func (p *Palette) Entry(i int) Color {
	if p == nil || i < 0 || i >= len(p.entries) {
		return Color{}
	}
	return p.entries[i]
}

// Selection — прямоугольная область выделения на холсте.
type Selection struct {
	X, Y, W, H int
}

// Sprite — индексированное изображение: сетка индексов палитры
// и палитры по кадрам анимации.
type Sprite struct {
	Width  int
	Height int
	// Pixels хранит индекс палитры на пиксель, построчно (row-major).
	Pixels []uint8

	palettes []*Palette
}

// NewSprite создаёт спрайт указанного размера с палитрой нулевого кадра.
func NewSprite(width, height int, pal *Palette) *Sprite {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Sprite{
		Width:    width,
		Height:   height,
		Pixels:   make([]uint8, width*height),
		palettes: []*Palette{pal},
	}
}

// PaletteAt возвращает палитру кадра. Кадры сверх известных используют
// палитру последнего кадра — так ведёт себя и хост-редактор.
func (s *Sprite) PaletteAt(frame int) *Palette {
	if s == nil || len(s.palettes) == 0 {
		return nil
	}
	if frame < 0 {
		frame = 0
	}
	if frame >= len(s.palettes) {
		frame = len(s.palettes) - 1
	}
	return s.palettes[frame]
}

// Document — активный документ редактора. Selection == nil означает
// отсутствие выделения.
type Document struct {
	Filename  string
	Sprite    *Sprite
	Selection *Selection
}
