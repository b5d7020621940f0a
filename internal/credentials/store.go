package credentials

import (
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Имена ключей провайдеров. Одни и те же имена используются для
// переменных окружения и для строк локального .env-файла.
const (
	GeminiKey     = "GEMINI_API_KEY"
	GroqKey       = "GROQ_API_KEY"
	OpenRouterKey = "OPENROUTER_API_KEY"
)

// Store разрешает API-ключи провайдеров по трёхступенчатому приоритету:
// значение, заданное в этой сессии → переменная окружения → локальный
// .env-файл. Хранилище передаётся явно тем, кому оно нужно; глобального
// состояния нет. Ключи никуда не сохраняются.
type Store struct {
	mu        sync.RWMutex
	overrides map[string]string
	envFile   string
}

// NewStore создаёт хранилище. envFile — путь к .env-файлу с ключами;
// отсутствие файла не является ошибкой.
func NewStore(envFile string) *Store {
	return &Store{
		overrides: make(map[string]string),
		envFile:   envFile,
	}
}

// Set задаёт ключ на время сессии. Пустое значение снимает переопределение,
// и Resolve снова падает на окружение и файл.
func (s *Store) Set(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(value) == "" {
		delete(s.overrides, name)
		return
	}
	s.overrides[name] = value
}

// Resolve возвращает ключ или пустую строку, если он нигде не задан.
// Пустая строка означает «провайдер недоступен», это не ошибка.
func (s *Store) Resolve(name string) string {
	s.mu.RLock()
	v, ok := s.overrides[name]
	s.mu.RUnlock()
	if ok && v != "" {
		return v
	}

	if env := os.Getenv(name); env != "" {
		return env
	}

	if s.envFile != "" {
		if vals, err := godotenv.Read(s.envFile); err == nil {
			if fv := vals[name]; fv != "" {
				return fv
			}
		}
	}
	return ""
}
