// Package requester реализует последовательный обход провайдеров:
// первый ответивший выигрывает, остальные не вызываются.
package requester

import (
	"context"
	"errors"
	"fmt"

	"AutopaintClient/internal/credentials"
	"AutopaintClient/internal/provider"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Приписка для текстовых провайдеров: картинка до них не доходит.
const imageUnavailableNote = "\n\nNote: Image context not available, generate based on text description only."

// ErrNoCredentials — ни у одного провайдера не нашлось ключа; ни одного
// сетевого вызова не было. Отличается от «все провайдеры отказали».
var ErrNoCredentials = errors.New("no provider credentials configured")

type Requester struct {
	creds     *credentials.Store
	providers []provider.Provider
	logger    *zap.SugaredLogger
}

// New создаёт оркестратор. Порядок providers — порядок фолбэка:
// первым идёт мультимодальный провайдер, текстовые — следом.
func New(creds *credentials.Store, providers []provider.Provider, logger *zap.SugaredLogger) *Requester {
	return &Requester{creds: creds, providers: providers, logger: logger}
}

// Send обходит провайдеров строго по очереди и останавливается на первом
// успехе. Провайдер без ключа пропускается без сетевого вызова. Контекст
// проверяется перед каждым провайдером; отмена прекращает обход.
func (r *Requester) Send(ctx context.Context, promptText, imageB64 string) (*provider.Result, error) {
	reqID := uuid.NewString()

	attempted := false
	var lastErr error
	for _, p := range r.providers {
		if err := ctx.Err(); err != nil {
			return nil, context.Cause(ctx)
		}

		key := r.creds.Resolve(p.CredentialName())
		if key == "" {
			r.logger.Debugw("Провайдер пропущен: ключ не задан", "request", reqID, "provider", p.ID())
			continue
		}
		attempted = true

		text := promptText
		img := imageB64
		if !p.SupportsImage() {
			text += imageUnavailableNote
			img = ""
		}

		r.logger.Infow("Отправка провайдеру", "request", reqID, "provider", p.ID())
		body, err := p.Send(ctx, key, text, img)
		if err != nil {
			if ctx.Err() != nil {
				return nil, context.Cause(ctx)
			}
			lastErr = fmt.Errorf("%s: %w", p.Name(), err)
			r.logger.Warnw("Провайдер отказал, пробуем следующего",
				"request", reqID, "provider", p.ID(), "error", err)
			continue
		}

		r.logger.Infow("Ответ получен", "request", reqID, "provider", p.ID())
		return &provider.Result{Provider: p.ID(), Name: p.Name(), Body: body}, nil
	}

	if !attempted {
		return nil, ErrNoCredentials
	}
	return nil, fmt.Errorf("all providers failed, last error: %w", lastErr)
}
