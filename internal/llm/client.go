package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/resume-builder/internal/chat"
	"github.com/jonathan/resume-builder/internal/prompts"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// defaultTemperature keeps interview questions varied without drifting
// off the system prompt's rules.
const defaultTemperature = 0.7

// Gemini role names for chat history.
const (
	roleUser  = "user"
	roleModel = "model"
)

// GeminiGateway implements chat.Gateway for Google Gemini. It is
// stateless across calls (the transcript carries all context) and safe
// for concurrent use.
type GeminiGateway struct {
	client  *genai.Client
	model   string
	kickoff string
}

// NewGeminiGateway creates a gateway authenticated with the given API key.
func NewGeminiGateway(ctx context.Context, apiKey, model string) (*GeminiGateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGateway{
		client:  client,
		model:   model,
		kickoff: prompts.MustGet("kickoff"),
	}, nil
}

// Complete sends the full transcript and returns the next assistant reply.
func (g *GeminiGateway) Complete(ctx context.Context, transcript []chat.Message) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(defaultTemperature)

	system, history := buildChat(transcript, g.kickoff)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	cs := model.StartChat()
	cs.History = history[:len(history)-1]
	last := history[len(history)-1]

	resp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		return "", classify(err)
	}

	return extractText(resp)
}

// Close releases resources held by the gateway.
func (g *GeminiGateway) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// buildChat splits a transcript into the system instruction and the chat
// history. Gemini requires the latest content to be a user turn, so a
// transcript that holds only the system message (or ends in an assistant
// message) gets the fixed kickoff turn appended. Consecutive same-role
// messages pass through as-is.
func buildChat(transcript []chat.Message, kickoff string) (string, []*genai.Content) {
	var system string
	var history []*genai.Content

	for _, msg := range transcript {
		switch msg.Role {
		case chat.RoleSystem:
			system = msg.Content
		case chat.RoleAssistant:
			history = append(history, textContent(roleModel, msg.Content))
		default:
			history = append(history, textContent(roleUser, msg.Content))
		}
	}

	if len(history) == 0 || history[len(history)-1].Role != roleUser {
		history = append(history, textContent(roleUser, kickoff))
	}

	return system, history
}

func textContent(role, text string) *genai.Content {
	return &genai.Content{Role: role, Parts: []genai.Part{genai.Text(text)}}
}

// extractText pulls the reply text out of a Gemini response. An empty or
// non-text response is reported as a transport failure so the turn stays
// retryable.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &GatewayError{Kind: KindTransport, Message: "no candidates in completion response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &GatewayError{Kind: KindTransport, Message: "no content in completion response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", &GatewayError{Kind: KindTransport, Message: "no text parts in completion response"}
	}

	return strings.Join(parts, ""), nil
}
