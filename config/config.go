package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// AppConfig is the full runtime configuration, parsed from the environment
// after LoadEnv has populated it from the matching .env file.
type AppConfig struct {
	Addr      string `env:"PERSONAFORGE_ADDR" envDefault:":5000"`
	OutputDir string `env:"PERSONAFORGE_OUTPUT_DIR" envDefault:"output"`
	ModelDir  string `env:"PERSONAFORGE_MODEL_DIR" envDefault:"models"`

	RedditClientID     string `env:"REDDIT_CLIENT_ID"`
	RedditClientSecret string `env:"REDDIT_CLIENT_SECRET"`

	MaxPosts    int `env:"PERSONAFORGE_MAX_POSTS" envDefault:"100"`
	MaxComments int `env:"PERSONAFORGE_MAX_COMMENTS" envDefault:"200"`

	MaxNewTokens int     `env:"PERSONAFORGE_MAX_NEW_TOKENS" envDefault:"256"`
	Temperature  float64 `env:"PERSONAFORGE_TEMPERATURE" envDefault:"0.7"`
	TopP         float64 `env:"PERSONAFORGE_TOP_P" envDefault:"0.9"`

	OpenAIKey string `env:"OPENAI_API_KEY"`

	StorageBackend string `env:"PERSONAFORGE_STORAGE" envDefault:"file"`
	DynamoTable    string `env:"PERSONAFORGE_DYNAMO_TABLE" envDefault:"Personas"`

	ValkeyAddr  string `env:"VALKEY_INIT_ADDRESS"`
	KafkaBroker string `env:"KAFKA_BROKER"`
	KafkaTopic  string `env:"KAFKA_PERSONA_TOPIC" envDefault:"persona-results"`
}

func Parse() (AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("[Config] failed to parse environment: %w", err)
	}
	return cfg, nil
}
