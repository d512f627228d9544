// Package assist talks to the text-generation collaborator that drafts
// client progress updates and work-plan suggestions for the shopkeeper.
package assist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pinky890114/Xianluo/internal/models"
)

// Unavailable is returned whenever the collaborator cannot be reached or no
// credentials are configured. Callers show it verbatim instead of erroring.
const Unavailable = "The studio assistant is unavailable right now. Please write the update yourself."

type Generator struct {
	client  openai.Client
	model   openai.ChatModel
	enabled bool
}

// NewGenerator builds a generator. An empty API key yields a disabled
// generator whose methods return the fixed unavailable message.
func NewGenerator(apiKey, model string) *Generator {
	if apiKey == "" {
		return &Generator{}
	}
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	return &Generator{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		model:   openai.ChatModel(model),
		enabled: true,
	}
}

// Enabled reports whether credentials are configured.
func (g *Generator) Enabled() bool {
	return g.enabled
}

// ClientUpdate drafts a friendly progress message for the client.
func (g *Generator) ClientUpdate(ctx context.Context, c models.Commission) string {
	prompt := clientUpdatePrompt(c)
	return g.generate(ctx, prompt)
}

// WorkPlan suggests concrete next production steps for a commission.
func (g *Generator) WorkPlan(ctx context.Context, c models.Commission) string {
	prompt := workPlanPrompt(c)
	return g.generate(ctx, prompt)
}

func (g *Generator) generate(ctx context.Context, prompt string) string {
	if !g.enabled {
		return Unavailable
	}

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		slog.Error("Assist generation failed", "error", err)
		return Unavailable
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Unavailable
	}
	return resp.Choices[0].Message.Content
}

func clientUpdatePrompt(c models.Commission) string {
	return fmt.Sprintf(
		"You are the shopkeeper of a small handmade commission studio. "+
			"Write a short, warm progress update for %s about their commission %q. "+
			"Current status: %s. Keep the tone cute and friendly; a kaomoji or two is fine.",
		c.ClientName, c.Title, c.Status)
}

func workPlanPrompt(c models.Commission) string {
	return fmt.Sprintf(
		"For the commission %q (category: %s), list 3 concrete next production "+
			"steps or details to watch out for. Answer as a bullet list.",
		c.Title, c.Type)
}
