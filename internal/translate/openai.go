package translate

import (
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"

	"tutor/internal/metrics"
)

var languageNames = map[string]string{
	"en": "English",
	"te": "Telugu",
	"hi": "Hindi",
	"ta": "Tamil",
	"kn": "Kannada",
}

const systemPrompt = `
You are a translation engine.
Translate the user's message from %s to %s.

RULES:
1. Output ONLY the translation. No quotes, no markdown, no notes.
2. Keep names, numbers and punctuation as they are.
3. If the message is already in %s, return it unchanged.
`

// OpenAI translates with a chat completion model.
type OpenAI struct {
	client openai.Client
	model  openai.ChatModel
}

func NewOpenAI(client openai.Client, model string) *OpenAI {
	m := openai.ChatModel(model)
	if model == "" {
		m = openai.ChatModelGPT5Nano
	}
	return &OpenAI{client: client, model: m}
}

func (o *OpenAI) Translate(ctx context.Context, text, from, to string) (string, error) {
	start := time.Now()
	out, err := o.translate(ctx, text, from, to)
	metrics.Observe("translate", start, err)
	return out, err
}

func (o *OpenAI) translate(ctx context.Context, text, from, to string) (string, error) {
	src, dst := languageName(from), languageName(to)

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(fmt.Sprintf(systemPrompt, src, dst, dst)),
			openai.UserMessage(text),
		},
		Model: o.model,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	log.Debug("Translated", "from", from, "to", to, "data", content)
	if content == "" {
		return "", ErrEmpty
	}
	return content, nil
}

func languageName(code string) string {
	if n, ok := languageNames[code]; ok {
		return n
	}
	return code
}
