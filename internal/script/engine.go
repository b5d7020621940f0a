// Package script — шов между ассистентом и скриптовым движком хоста.
// Движок выполняет Lua «выстрелил и забыл»: ошибки исполнения он
// показывает через собственный UI и сюда не возвращает.
package script

import (
	"fmt"
	"io"
	"sync"
)

// Engine исполняет сгенерированный скрипт. Валидация синтаксиса —
// обязанность движка, не вызывающей стороны.
type Engine interface {
	Eval(script string) error
}

// WriterEngine пишет скрипт в io.Writer. Используется консольной
// обвязкой: хост-редактор подхватывает вывод сам.
type WriterEngine struct {
	w io.Writer
}

func NewWriterEngine(w io.Writer) *WriterEngine {
	return &WriterEngine{w: w}
}

func (e *WriterEngine) Eval(script string) error {
	_, err := fmt.Fprintln(e.w, script)
	return err
}

// Recorder запоминает переданные скрипты; заглушка для тестов.
type Recorder struct {
	mu      sync.Mutex
	Scripts []string
}

func (r *Recorder) Eval(script string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Scripts = append(r.Scripts, script)
	return nil
}
