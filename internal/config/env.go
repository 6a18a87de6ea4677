package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Env - параметры запуска из окружения. Перекрываются флагами командной строки.
type Env struct {
	StorePath     string `env:"KEYCLIP_STORE_PATH"` // Путь к store.json, пусто - каталог настроек пользователя
	LogLevel      string `env:"KEYCLIP_LOG_LEVEL"`  // debug|info|warn|error
	Debug         bool   `env:"KEYCLIP_DEBUG"`      // Режим разработки для логгера
	SoundPath     string `env:"KEYCLIP_SOUND_PATH"` // Свой звук (mp3 или wav) вместо встроенного
	Language      string `env:"KEYCLIP_LANG"`       // Язык интерфейса: en|ru
	Notifications bool   `env:"KEYCLIP_NOTIFY"`     // Системные уведомления
}

// DefaultEnv возвращает параметры по умолчанию.
func DefaultEnv() Env {
	return Env{
		LogLevel:      "info",
		Language:      "en",
		Notifications: true,
	}
}

// LoadEnv читает .env (если есть) и переменные окружения поверх значений
// по умолчанию.
func LoadEnv() (Env, error) {
	_ = godotenv.Load()

	e := DefaultEnv()
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("разбор переменных окружения: %w", err)
	}
	return e, nil
}
