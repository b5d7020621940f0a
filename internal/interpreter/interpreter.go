// Package interpreter разбирает сырой ответ провайдера, достаёт из него
// Lua-блок и передаёт собранный скрипт движку хоста.
package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"AutopaintClient/internal/editor"
	"AutopaintClient/internal/script"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var (
	// ErrParse — тело ответа не является валидным JSON.
	ErrParse = errors.New("response is not valid JSON")
	// ErrNoContent — JSON валиден, но текстового содержимого в нём нет.
	ErrNoContent = errors.New("no response content found")
)

// Action — итог интерпретации. Либо скрипт ушёл движку (Executed),
// либо кода в ответе не было и показывается усечённое превью текста.
type Action struct {
	Executed bool
	Script   string // итоговый скрипт с преамбулой, каким он ушёл движку
	Preview  string // усечённый текст ответа, когда блока кода нет
}

type Interpreter struct {
	engine       script.Engine
	previewLimit int
	logger       *zap.SugaredLogger
}

func New(engine script.Engine, previewLimit int, logger *zap.SugaredLogger) *Interpreter {
	if previewLimit <= 0 {
		previewLimit = 100
	}
	return &Interpreter{engine: engine, previewLimit: previewLimit, logger: logger}
}

// Interpret разбирает тело ответа. Порядок: ошибка API → мультимодальная
// форма (candidates) → OpenAI-совместимая (choices) → «нет содержимого».
// Найденный Lua-блок дополняется преамбулой (helper + палитра + границы
// выделения) и уходит движку ровно один раз; синтаксис скрипта здесь не
// проверяется — ошибки исполнения принадлежат движку хоста.
func (i *Interpreter) Interpret(body string, pal *editor.Palette, sel *editor.Selection) (*Action, error) {
	if !gjson.Valid(body) {
		return nil, ErrParse
	}
	// Любой верхнеуровневый error — ошибка API, даже без поля message
	// ({"error":"..."} или {"error":{"code":500}}).
	if e := gjson.Get(body, "error"); e.Exists() {
		detail := e.Get("message").String()
		if detail == "" {
			detail = e.String()
		}
		return nil, fmt.Errorf("api error: %s", detail)
	}

	text := gjson.Get(body, "candidates.0.content.parts.0.text").String()
	if text == "" {
		text = gjson.Get(body, "choices.0.message.content").String()
	}
	if text == "" {
		return nil, ErrNoContent
	}

	code, ok := ExtractFencedBlock(text, "lua")
	if !ok {
		// Нет блока кода — это не ошибка: показываем превью вместо запуска
		i.logger.Infow("Блок кода в ответе не найден, показываем превью")
		return &Action{Preview: Truncate(text, i.previewLimit)}, nil
	}

	full := Assemble(code, pal, sel)
	if err := i.engine.Eval(full); err != nil {
		return nil, fmt.Errorf("script engine: %w", err)
	}
	i.logger.Infow("Скрипт передан движку", "bytes", len(full))
	return &Action{Executed: true, Script: full}, nil
}

// ExtractFencedBlock ищет огороженный блок: сперва с тегом языка
// (```<tag>), затем первый блок без тега. Маркеры ограждения и тег в
// результат не входят. Содержимое не проверяется на валидность.
func ExtractFencedBlock(text, tag string) (string, bool) {
	if tagged := "```" + tag; strings.Contains(text, tagged) {
		if code, ok := between(text, tagged); ok {
			return code, true
		}
	}
	return between(text, "```")
}

func between(text, open string) (string, bool) {
	start := strings.Index(text, open)
	if start == -1 {
		return "", false
	}
	start += len(open)
	end := strings.Index(text[start:], "```")
	if end == -1 {
		return "", false
	}
	return text[start : start+end], true
}

// Truncate обрезает текст до limit рун и помечает усечение многоточием.
func Truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
