package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// Client wraps the chat-completion and transcription endpoints. One Client
// serves all accounts; the per-account credential is passed per call.
type Client struct {
	baseURL      string
	chatModel    string
	whisperModel string
}

// New creates a client. baseURL is the OpenAI-compatible API root
// (e.g. https://api.openai.com/v1); tests point it at a stub.
func New(baseURL, chatModel, whisperModel string) *Client {
	return &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		chatModel:    chatModel,
		whisperModel: whisperModel,
	}
}

// Complete sends a single-turn prompt at temperature 0 and returns the raw
// response text.
func (c *Client) Complete(ctx context.Context, apiKey, prompt string) (string, error) {
	// No SDK-level retries: the pipeline has an explicit fallback for every
	// failed call, and a retry would only delay the user's reply.
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(c.baseURL+"/"),
		option.WithMaxRetries(0),
	)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.chatModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// StripCodeFence removes surrounding markdown code-fence markers from a
// model response so the remaining JSON can be parsed.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop a language tag like "json" on the opening fence.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		first := strings.TrimSpace(s[:i])
		if len(first) <= 8 && !strings.ContainsAny(first, "{[") {
			s = s[i+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
