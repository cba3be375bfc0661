package llm

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/schema"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Conversly/article-stream/internal/config"
)

// OpenAIProvider streams chat completions through the official openai-go SDK.
type OpenAIProvider struct {
	Model string
	Opts  []option.RequestOption
}

func NewOpenAIProvider(apiKey, modelName string, opts ...option.RequestOption) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key missing")
	}
	if modelName == "" {
		return nil, errors.New("openai model is required")
	}
	return &OpenAIProvider{
		Model: modelName,
		Opts:  append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...),
	}, nil
}

func (o *OpenAIProvider) Name() string { return config.ProviderOpenAI }

func (o *OpenAIProvider) StreamText(ctx context.Context, prompt string) (*schema.StreamReader[string], error) {
	client := openai.NewClient(o.Opts...)

	stream := client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
	})

	sr, sw := schema.Pipe[string](1)
	go func() {
		defer sw.Close()
		defer stream.Close()

		for stream.Next() {
			for _, choice := range stream.Current().Choices {
				if choice.Delta.Content == "" {
					continue
				}
				if closed := sw.Send(choice.Delta.Content, nil); closed {
					return
				}
			}
		}
		if err := stream.Err(); err != nil {
			sw.Send("", err)
		}
	}()

	return sr, nil
}
