package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/Conversly/article-stream/internal/config"
)

// GeminiProvider streams article text from a Gemini chat model.
type GeminiProvider struct {
	chatModel model.BaseChatModel
}

func NewGeminiProvider(ctx context.Context, apiKeys []string, modelName string) (*GeminiProvider, error) {
	chatModel, err := NewMultiKeyChatModel(ctx, apiKeys, modelName)
	if err != nil {
		return nil, err
	}
	return &GeminiProvider{chatModel: chatModel}, nil
}

func (g *GeminiProvider) Name() string { return config.ProviderGemini }

// StreamText sends the prompt as a single user message and yields the text
// content of every message chunk. Chunks without text are skipped.
func (g *GeminiProvider) StreamText(ctx context.Context, prompt string) (*schema.StreamReader[string], error) {
	msgs, err := g.chatModel.Stream(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return nil, fmt.Errorf("failed to open Gemini stream: %w", err)
	}
	return schema.StreamReaderWithConvert(msgs, messageText), nil
}

func messageText(msg *schema.Message) (string, error) {
	if msg == nil || msg.Content == "" {
		return "", schema.ErrNoValue
	}
	return msg.Content, nil
}
