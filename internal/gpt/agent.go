// Package gpt implements the generator collaborators on top of the OpenAI
// chat-completions API.
package gpt

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mtakahash/recipedog/internal/domain"
	"github.com/mtakahash/recipedog/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.RecipeGenerator = (*Agent)(nil)
	_ domain.ChatGenerator   = (*Agent)(nil)
)

// Option configures the agent.
type Option func(*Agent)

// WithModel overrides the default model name.
func WithModel(model string) Option {
	return func(a *Agent) {
		if model != "" {
			a.model = model
		}
	}
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float32) Option {
	return func(a *Agent) {
		a.temperature = t
	}
}

// WithMaxTokens sets the response token limit.
func WithMaxTokens(n int) Option {
	return func(a *Agent) {
		a.maxTokens = n
	}
}

// Agent wraps the OpenAI client with the bot's prompt building. It is the
// single entry point the dispatcher calls for generated text.
type Agent struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	log         *logger.Logger
}

// NewAgent creates a generator agent backed by the OpenAI API.
func NewAgent(apiKey string, log *logger.Logger, opts ...Option) *Agent {
	a := &Agent{
		client:      openai.NewClient(apiKey),
		model:       openai.GPT3Dot5Turbo,
		temperature: 0.7,
		maxTokens:   800,
		log:         log,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GenerateRecipe asks the model for a beginner-friendly recipe built from
// the user's ingredients or dish query.
func (a *Agent) GenerateRecipe(ctx context.Context, query string) (string, error) {
	return a.chat(ctx, PromptRecipe, fmt.Sprintf("Ingredients or dish: %s", query))
}

// GenerateChat answers free conversation, with the greeting tone picked by
// the time-of-day bucket.
func (a *Agent) GenerateChat(ctx context.Context, text string, bucket domain.TimeBucket) (string, error) {
	system := PromptFreeChat + "\n\n" + greetingHint(bucket)
	return a.chat(ctx, system, text)
}

// chat sends one system+user exchange and returns the assistant's reply.
// All failures wrap domain.ErrGeneration so the dispatcher can branch on a
// single sentinel.
func (a *Agent) chat(ctx context.Context, system, user string) (string, error) {
	a.log.Debug("chat completion (model=%s, %d prompt chars)", a.model, len(system)+len(user))

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response (no choices)", domain.ErrGeneration)
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	a.log.Debug("chat completion reply (%d chars)", len(reply))
	return reply, nil
}
