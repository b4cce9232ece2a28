package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"

	"github.com/spacesedan/personaforge/internal/clients"
)

const openAISystemPrompt = "You are an analyst that writes concise, well-structured user personas from observed Reddit activity. Respond with the persona text only."

type openAIGenerator struct {
	client *clients.AIClient
	model  string
}

func (g *openAIGenerator) generate(ctx context.Context, prompt string, opts Options) (string, error) {
	chatCompletion, err := g.client.Client.Chat.Completions.New(ctx,
		openai.ChatCompletionNewParams{
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(openAISystemPrompt),
				openai.UserMessage(prompt),
			}),
			Model:       openai.F(g.model),
			Temperature: openai.Float(opts.Temperature),
			TopP:        openai.Float(opts.TopP),
			MaxTokens:   openai.Int(int64(opts.MaxNewTokens)),
		})
	if err != nil {
		return "", err
	}
	if len(chatCompletion.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return chatCompletion.Choices[0].Message.Content, nil
}

func (g *openAIGenerator) close() {}

// RemoteCandidate is the fast conversational slot at the head of the
// fallback chain, available only when an API key is configured. The smoke
// test mirrors the local one: a trivial deterministic completion.
func RemoteCandidate(model string) Candidate {
	return Candidate{
		Name: model,
		Load: func(ctx context.Context) (*Handle, error) {
			client, err := clients.GetAIClient()
			if err != nil {
				return nil, err
			}

			gen := &openAIGenerator{client: client, model: model}
			if err := remoteSmokeTest(ctx, gen); err != nil {
				return nil, fmt.Errorf("smoke test failed for %s: %w", model, err)
			}
			return &Handle{Name: model, Device: DeviceRemote, gen: gen}, nil
		},
	}
}

func remoteSmokeTest(ctx context.Context, gen *openAIGenerator) error {
	text, err := gen.generate(ctx, "Hello", Options{MaxNewTokens: 5, Temperature: 0, TopP: 1, NumSequences: 1})
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("empty smoke test output")
	}
	return nil
}
