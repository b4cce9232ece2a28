package clients

import (
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var (
	aiClientInstance *AIClient
	aiClientOnce     sync.Once
)

// ErrNoAPIKey signals that the remote generation candidate is not
// configured; the model manager then falls through to the local candidates.
var ErrNoAPIKey = errors.New("missing OPENAI_API_KEY in environment")

type AIClient struct {
	Client *openai.Client
}

func GetAIClient() (*AIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	aiClientOnce.Do(func() {
		aiClientInstance = &AIClient{
			Client: openai.NewClient(option.WithAPIKey(apiKey)),
		}
		slog.Info("[AIClient] OpenAI client initialized")
	})
	return aiClientInstance, nil
}
