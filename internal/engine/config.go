package engine

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config хранит параметры запуска сервера.
// Все значения приходят из окружения; дефолты годятся для разработки.
type Config struct {
	// Port — HTTP/WebSocket порт.
	Port string `env:"RIDDLE_PORT" envDefault:"8080"`

	// DBPath — путь к файлу SQLite. Пустое значение или "memory"
	// включает in-memory хранилище (состояние живет до рестарта).
	DBPath string `env:"RIDDLE_DB" envDefault:"riddle.db"`
}

// LoadConfig читает конфигурацию из переменных окружения.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
