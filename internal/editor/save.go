package editor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Saver сохраняет документ в файл. В хост-приложении за этим интерфейсом
// стоит родной механизм сохранения; PNGSaver — автономная реализация.
type Saver interface {
	Save(doc *Document, path string) error
}

// PNGSaver рендерит индексированную сетку спрайта через палитру
// нулевого кадра и кодирует результат в PNG.
type PNGSaver struct{}

func (PNGSaver) Save(doc *Document, path string) error {
	if doc == nil || doc.Sprite == nil {
		return errors.New("editor: no sprite to save")
	}
	sp := doc.Sprite
	pal := sp.PaletteAt(0)

	img := image.NewRGBA(image.Rect(0, 0, sp.Width, sp.Height))
	for y := range sp.Height {
		for x := range sp.Width {
			idx := int(sp.Pixels[y*sp.Width+x])
			c := pal.Entry(idx)
			img.Set(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("editor: create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		// Частичный файл не оставляем
		_ = file.Close()
		_ = os.Remove(path)
		return fmt.Errorf("editor: encode png: %w", err)
	}
	return nil
}
