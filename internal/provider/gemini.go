package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"AutopaintClient/internal/config"

	"go.uber.org/zap"
)

// GeminiClient — нативный мультимодальный клиент generateContent.
// Единственный провайдер, которому уходит изображение холста.
type GeminiClient struct {
	http     *http.Client
	endpoint string
	model    string
	logger   *zap.SugaredLogger
}

func NewGemini(cfg config.GeminiConfig, logger *zap.SugaredLogger) *GeminiClient {
	return &GeminiClient{
		http:     http.DefaultClient,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		model:    cfg.Model,
		logger:   logger,
	}
}

func (c *GeminiClient) ID() ID                 { return Gemini }
func (c *GeminiClient) Name() string           { return "Gemini" }
func (c *GeminiClient) CredentialName() string { return "GEMINI_API_KEY" }
func (c *GeminiClient) SupportsImage() bool    { return true }

// Структуры тела generateContent: contents/parts, текст + inline-картинка.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

func (c *GeminiClient) Send(ctx context.Context, apiKey, promptText, imageB64 string) (string, error) {
	parts := []geminiPart{{Text: promptText}}
	if imageB64 != "" {
		parts = append(parts, geminiPart{
			InlineData: &geminiInlineData{MimeType: "image/png", Data: imageB64},
		})
	}
	body, err := json.Marshal(geminiRequest{Contents: []geminiContent{{Parts: parts}}})
	if err != nil {
		return "", err
	}

	// Аутентификация — API-ключ в query-параметре, не в заголовке
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.endpoint, c.model, url.QueryEscape(apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20)) // до 5 МБ JSON
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}
	if c.logger != nil {
		c.logger.Debugw("Gemini request completed",
			"status", resp.StatusCode, "took", time.Since(started).String())
	}

	if cerr := Classify(resp.StatusCode, string(raw)); cerr != nil {
		return "", cerr
	}
	return string(raw), nil
}
