package commentary

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config configures the commentary provider. It is read from the
// environment; an empty APIKey disables the remote provider.
type Config struct {
	APIKey       string        `env:"CREASE_COMMENTARY_API_KEY"`
	Model        string        `env:"CREASE_COMMENTARY_MODEL" envDefault:"gpt-4.1-mini"`
	ResponsesURL string        `env:"CREASE_COMMENTARY_URL" envDefault:"https://api.openai.com/v1/responses"`
	Timeout      time.Duration `env:"CREASE_COMMENTARY_TIMEOUT" envDefault:"8s"`
}

// LoadConfig parses Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Enabled reports whether a remote provider is configured.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}
