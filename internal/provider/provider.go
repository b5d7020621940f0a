// Package provider содержит клиентов конкретных LLM-бэкендов.
// Каждый клиент делает один синхронный запрос и возвращает сырое тело
// ответа; разбор содержимого — забота интерпретатора.
package provider

import "context"

// ID — идентификатор провайдера.
type ID string

const (
	Gemini     ID = "gemini"
	Groq       ID = "groq"
	OpenRouter ID = "openrouter"
)

// Provider — один LLM-бэкенд.
type Provider interface {
	ID() ID
	// Name — человекочитаемое имя для статусных сообщений.
	Name() string
	// CredentialName — имя ключа для резолвера.
	CredentialName() string
	// SupportsImage сообщает, принимает ли провайдер изображение.
	SupportsImage() bool
	// Send выполняет один HTTP-запрос и возвращает сырое JSON-тело ответа.
	// imageB64 игнорируется провайдерами без поддержки изображений.
	Send(ctx context.Context, apiKey, promptText, imageB64 string) (string, error)
}

// Result — успешный исход отправки: сырое тело и провайдер, который ответил.
type Result struct {
	Provider ID
	Name     string
	Body     string
}
