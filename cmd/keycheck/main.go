package main

import (
	"fmt"

	"AutopaintClient/internal/config"
	"AutopaintClient/internal/credentials"
)

// Диагностика ключей: показывает, какие провайдеры доступны.
// Сами ключи не печатаются, только замаскированный хвост.
func main() {
	cfg := config.NewConfig()
	creds := credentials.NewStore(cfg.CredentialsFile)

	names := []string{credentials.GeminiKey, credentials.GroqKey, credentials.OpenRouterKey}
	for _, name := range names {
		key := creds.Resolve(name)
		if key == "" {
			fmt.Printf(" %-22s missing\n", name)
			continue
		}
		fmt.Printf(" %-22s ok (****%s)\n", name, tail(key))
	}
}

func tail(key string) string {
	if len(key) <= 4 {
		return key
	}
	return key[len(key)-4:]
}
