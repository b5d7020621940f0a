package config

import (
	"flag"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	DebugMode bool `env:"DEBUG_MODE"` // Режим дебага

	// Общие настройки ассистента
	CredentialsFile string `env:"CREDENTIALS_FILE"`  // Путь к .env-файлу с API-ключами провайдеров
	CaptureTempFile string `env:"CAPTURE_TEMP_FILE"` // Временный файл для снимка холста
	PreviewLimit    int    `env:"PREVIEW_LIMIT"`     // Максимальная длина текстового превью ответа без кода

	// Фоновая отправка
	PollInterval          time.Duration `env:"POLL_INTERVAL"`           // Период опроса результата UI-таймером
	RequestTimeoutSeconds int           `env:"REQUEST_TIMEOUT_SECONDS"` // Дедлайн одной отправки целиком
	AbortGrace            time.Duration `env:"ABORT_GRACE"`             // Сколько ждать воркера при отмене перед тем, как его бросить

	// История диалога
	MaxHistoryRecords int `env:"MAX_HISTORY_RECORDS"` // Максимум хранимых сообщений диалога

	Gemini     GeminiConfig
	Groq       ChatProviderConfig
	OpenRouter ChatProviderConfig
}

// GeminiConfig — настройки нативного мультимодального провайдера.
type GeminiConfig struct {
	Endpoint string `env:"GEMINI_ENDPOINT"` // База API без пути модели
	Model    string `env:"GEMINI_MODEL"`
}

// ChatProviderConfig — настройки OpenAI-совместимого провайдера.
type ChatProviderConfig struct {
	BaseURL     string
	Model       string
	Temperature float64 // < 0 — не отправлять параметр
	MaxTokens   int     // 0 — не отправлять параметр
}

// Defaults возвращает конфигурацию с предустановленными значениями.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode:             false,
		CredentialsFile:       ".env",
		CaptureTempFile:       "autopaint_temp.png",
		PreviewLimit:          100,
		PollInterval:          100 * time.Millisecond,
		RequestTimeoutSeconds: 60,
		AbortGrace:            500 * time.Millisecond,
		MaxHistoryRecords:     50,
		Gemini: GeminiConfig{
			Endpoint: "https://generativelanguage.googleapis.com",
			Model:    "gemini-2.0-flash-exp",
		},
		Groq: ChatProviderConfig{
			BaseURL:     "https://api.groq.com/openai/v1",
			Model:       "llama-3.3-70b-versatile",
			Temperature: 0.7,
			MaxTokens:   2048,
		},
		OpenRouter: ChatProviderConfig{
			BaseURL: "https://openrouter.ai/api/v1",
			Model:   "meta-llama/llama-3.2-3b-instruct:free",
			// OpenRouter идёт с параметрами по умолчанию — тело запроса без
			// temperature/max_tokens, как и у настольной версии ассистента.
			Temperature: -1,
			MaxTokens:   0,
		},
	}
}

// NewConfig загружает конфигурацию приложения.
func NewConfig() *Config {
	_ = godotenv.Load()

	// Стартуем с дефолтов, затем перекрываем .env/окружением и флагами
	cfg := Defaults()
	_ = env.Parse(cfg)

	flag.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "включить режим дебага")
	flag.StringVar(&cfg.CredentialsFile, "credentials-file", cfg.CredentialsFile, "путь к .env-файлу с API-ключами провайдеров")
	flag.StringVar(&cfg.CaptureTempFile, "capture-temp-file", cfg.CaptureTempFile, "временный файл снимка холста")
	flag.IntVar(&cfg.PreviewLimit, "preview-limit", cfg.PreviewLimit, "максимальная длина превью ответа без кода")
	flag.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "период опроса результата, напр. 100ms")
	flag.IntVar(&cfg.RequestTimeoutSeconds, "request-timeout-seconds", cfg.RequestTimeoutSeconds, "дедлайн одной отправки в секундах")
	flag.DurationVar(&cfg.AbortGrace, "abort-grace", cfg.AbortGrace, "время ожидания воркера при отмене, напр. 500ms")
	flag.IntVar(&cfg.MaxHistoryRecords, "max-history-records", cfg.MaxHistoryRecords, "максимум хранимых сообщений диалога")
	// Провайдеры
	flag.StringVar(&cfg.Gemini.Endpoint, "gemini-endpoint", cfg.Gemini.Endpoint, "база Gemini API")
	flag.StringVar(&cfg.Gemini.Model, "gemini-model", cfg.Gemini.Model, "модель Gemini")
	flag.StringVar(&cfg.Groq.BaseURL, "groq-base-url", cfg.Groq.BaseURL, "база Groq API (OpenAI-совместимая)")
	flag.StringVar(&cfg.Groq.Model, "groq-model", cfg.Groq.Model, "модель Groq")
	flag.StringVar(&cfg.OpenRouter.BaseURL, "openrouter-base-url", cfg.OpenRouter.BaseURL, "база OpenRouter API (OpenAI-совместимая)")
	flag.StringVar(&cfg.OpenRouter.Model, "openrouter-model", cfg.OpenRouter.Model, "модель OpenRouter")
	flag.Parse()

	return cfg
}
