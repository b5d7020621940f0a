// Package sender — фоновый контроллер отправки. Один Sender обслуживает
// один диалог: пока отправка в полёте, новая отклоняется, а UI держит
// ввод выключенным по Busy().
package sender

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"AutopaintClient/internal/config"
	"AutopaintClient/internal/provider"

	"go.uber.org/zap"
)

// ErrBusy — предыдущая отправка ещё не завершена.
var ErrBusy = errors.New("send already in progress")

// Dispatcher — то, что умеет выполнить одну отправку (обычно requester).
type Dispatcher interface {
	Send(ctx context.Context, promptText, imageB64 string) (*provider.Result, error)
}

// Outcome — единственное терминальное сообщение одной отправки.
type Outcome struct {
	Result *provider.Result
	Err    error
}

type Sender struct {
	cfg    *config.Config
	disp   Dispatcher
	logger *zap.SugaredLogger

	running atomic.Bool

	mu       sync.Mutex
	outcomes chan Outcome // канал текущей отправки, ёмкость 1
	cancel   context.CancelFunc
	done     chan struct{}
	gen      int64 // Счётчик поколений; устаревший воркер не публикует исход
}

func New(cfg *config.Config, disp Dispatcher, logger *zap.SugaredLogger) *Sender {
	return &Sender{cfg: cfg, disp: disp, logger: logger}
}

// Busy сообщает, есть ли отправка в полёте. UI по этому флагу держит
// поле ввода и кнопку отправки выключенными.
func (s *Sender) Busy() bool { return s.running.Load() }

// Start запускает фоновую отправку. Изображение должно быть снято
// синхронно до вызова: захват зависит от состояния документа, которым
// владеет главный поток. Возвращает ErrBusy, пока предыдущая отправка
// не завершена.
func (s *Sender) Start(parent context.Context, promptText, imageB64 string) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrBusy
	}

	timeout := time.Duration(s.cfg.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeoutCause(parent, timeout, errors.New("request timeout"))

	out := make(chan Outcome, 1) // свой канал на каждую отправку
	done := make(chan struct{})
	s.mu.Lock()
	s.gen++
	localGen := s.gen
	s.outcomes = out
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		defer cancel()

		res, err := s.disp.Send(ctx, promptText, imageB64)

		s.mu.Lock()
		stale := s.gen != localGen
		s.mu.Unlock()
		if stale {
			// Отправка отменена: исход никому не нужен, состояние не трогаем
			s.logger.Debugw("Исход отменённой отправки отброшен")
			return
		}
		out <- Outcome{Result: res, Err: err} // пишет только этот воркер, место есть всегда
	}()
	return nil
}

// Poll — неблокирующий приём терминального исхода; опрашивается
// UI-таймером. Второе значение false — отправка ещё в полёте либо её нет.
// Получение исхода снова разрешает ввод.
func (s *Sender) Poll() (Outcome, bool) {
	s.mu.Lock()
	out := s.outcomes
	s.mu.Unlock()
	if out == nil {
		return Outcome{}, false
	}

	select {
	case o := <-out:
		s.mu.Lock()
		if s.outcomes == out {
			s.outcomes = nil
		}
		s.mu.Unlock()
		s.running.Store(false)
		return o, true
	default:
		return Outcome{}, false
	}
}

// Abort отменяет текущую отправку при закрытии диалога. Контекст
// запроса отменяется на уровне HTTP-клиента, затем воркеру даётся
// ограниченное время на завершение; не успел — его бросаем: исход он
// всё равно не опубликует из-за смены поколения.
func (s *Sender) Abort() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.gen++ // текущий воркер становится устаревшим
	s.outcomes = nil
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		grace := s.cfg.AbortGrace
		if grace <= 0 {
			grace = 500 * time.Millisecond
		}
		select {
		case <-done:
		case <-time.After(grace):
			s.logger.Warnw("Воркер не завершился за отведённое время, бросаем", "grace", grace.String())
		}
	}
	s.running.Store(false)
}
