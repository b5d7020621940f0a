package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"AutopaintClient/internal/config"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

// Системная роль текстовых провайдеров: модель сразу ориентируется
// на выдачу Lua-кода в markdown-блоке.
const chatSystemPrompt = "You are an Aseprite Lua script generator. " +
	"Generate ONLY valid Lua code in markdown code blocks. Follow all instructions precisely."

// ChatClient — OpenAI-совместимый провайдер (/v1/chat/completions) поверх
// официального SDK с подменой базового URL. Изображения не принимает.
type ChatClient struct {
	id         ID
	name       string
	credential string
	cfg        config.ChatProviderConfig
	logger     *zap.SugaredLogger
}

func NewGroq(cfg config.ChatProviderConfig, logger *zap.SugaredLogger) *ChatClient {
	return &ChatClient{id: Groq, name: "Groq (Llama 3.3)", credential: "GROQ_API_KEY", cfg: cfg, logger: logger}
}

func NewOpenRouter(cfg config.ChatProviderConfig, logger *zap.SugaredLogger) *ChatClient {
	return &ChatClient{id: OpenRouter, name: "OpenRouter (Llama 3.2)", credential: "OPENROUTER_API_KEY", cfg: cfg, logger: logger}
}

func (c *ChatClient) ID() ID                 { return c.id }
func (c *ChatClient) Name() string           { return c.name }
func (c *ChatClient) CredentialName() string { return c.credential }
func (c *ChatClient) SupportsImage() bool    { return false }

func (c *ChatClient) Send(ctx context.Context, apiKey, promptText, _ string) (string, error) {
	// Внутренние ретраи SDK выключены: один вызов Send — ровно один POST,
	// перегрузка сразу передаёт ход следующему провайдеру в цепочке.
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(c.cfg.BaseURL),
		option.WithMaxRetries(0),
	)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(chatSystemPrompt),
			openai.UserMessage(promptText),
		},
	}
	if c.cfg.Temperature >= 0 {
		params.Temperature = openai.Float(c.cfg.Temperature)
	}
	if c.cfg.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(c.cfg.MaxTokens))
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			detail := apierr.Message
			if detail == "" {
				detail = apierr.Error()
			}
			return "", Classify(apierr.StatusCode, detail)
		}
		return "", fmt.Errorf("%s: %w", c.name, err)
	}

	// Часть совместимых API кладёт перегрузку/квоту в тело с HTTP 200 —
	// прогоняем сырой ответ через ту же классификацию.
	body := resp.RawJSON()
	if cerr := Classify(http.StatusOK, body); cerr != nil {
		return "", cerr
	}
	if c.logger != nil {
		c.logger.Debugw("Chat completion received", "provider", c.id, "model", c.cfg.Model)
	}
	return body, nil
}
