package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/require"

	"github.com/Conversly/article-stream/internal/config"
)

type fakeChatModel struct {
	name   string
	chunks []*schema.Message
	err    error
	inputs [][]*schema.Message
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.inputs = append(f.inputs, input)
	return schema.AssistantMessage(f.name, nil), nil
}

func (f *fakeChatModel) Stream(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	return schema.StreamReaderFromArray(f.chunks), nil
}

func drain(t *testing.T, sr *schema.StreamReader[string]) ([]string, error) {
	t.Helper()
	defer sr.Close()
	var out []string
	for {
		fragment, err := sr.Recv()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, fragment)
	}
}

func TestMultiKeyChatModelRoundRobin(t *testing.T) {
	a := &fakeChatModel{name: "a"}
	b := &fakeChatModel{name: "b"}
	m := newMultiKeyChatModel([]model.BaseChatModel{a, b})

	var got []string
	for i := 0; i < 4; i++ {
		msg, err := m.Generate(context.Background(), []*schema.Message{schema.UserMessage("hi")})
		require.NoError(t, err)
		got = append(got, msg.Content)
	}
	require.Equal(t, []string{"b", "a", "b", "a"}, got)
}

func TestMultiKeyChatModelRequiresKey(t *testing.T) {
	_, err := NewMultiKeyChatModel(context.Background(), nil, "gemini-1.5-flash")
	require.Error(t, err)
}

func TestGeminiProviderStreamsTextInOrder(t *testing.T) {
	fake := &fakeChatModel{chunks: []*schema.Message{
		{Role: schema.Assistant, Content: "Ol"},
		{Role: schema.Assistant, Content: ""},
		{Role: schema.Assistant, Content: "á mundo"},
	}}
	p := &GeminiProvider{chatModel: fake}

	sr, err := p.StreamText(context.Background(), "escreva")
	require.NoError(t, err)

	fragments, err := drain(t, sr)
	require.NoError(t, err)
	require.Equal(t, []string{"Ol", "á mundo"}, fragments)

	require.Len(t, fake.inputs, 1)
	require.Len(t, fake.inputs[0], 1)
	require.Equal(t, schema.User, fake.inputs[0][0].Role)
	require.Equal(t, "escreva", fake.inputs[0][0].Content)
}

func TestGeminiProviderOpenError(t *testing.T) {
	p := &GeminiProvider{chatModel: &fakeChatModel{err: errors.New("quota")}}

	_, err := p.StreamText(context.Background(), "x")
	require.ErrorContains(t, err, "quota")
}

func TestStaticProvider(t *testing.T) {
	sr, err := NewStaticProvider("a", "b").StreamText(context.Background(), "ignored")
	require.NoError(t, err)
	fragments, err := drain(t, sr)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, fragments)

	sr, err = NewStaticProvider().StreamText(context.Background(), "ignored")
	require.NoError(t, err)
	fragments, err = drain(t, sr)
	require.NoError(t, err)
	require.Equal(t, defaultStaticArticle, fragments)
}

func TestNewProviderStatic(t *testing.T) {
	p, err := NewProvider(context.Background(), &config.Config{Provider: config.ProviderStatic})
	require.NoError(t, err)
	require.Equal(t, config.ProviderStatic, p.Name())

	_, err = NewProvider(context.Background(), &config.Config{Provider: "nope"})
	require.Error(t, err)
}

func TestOpenAIProviderStreamsDeltas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, delta := range []string{"Ol", "á mundo"} {
			fmt.Fprintf(w, "data: {\"id\":\"c1\",\"object\":\"chat.completion.chunk\",\"created\":1,\"model\":\"m\",\"choices\":[{\"index\":0,\"delta\":{\"content\":%q}}]}\n\n", delta)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("sk-test", "gpt-4o-mini", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	sr, err := p.StreamText(context.Background(), "escreva")
	require.NoError(t, err)
	fragments, err := drain(t, sr)
	require.NoError(t, err)
	require.Equal(t, []string{"Ol", "á mundo"}, fragments)
}

func TestOpenAIProviderSurfacesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("sk-test", "gpt-4o-mini", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	sr, err := p.StreamText(context.Background(), "escreva")
	require.NoError(t, err)
	_, err = drain(t, sr)
	require.Error(t, err)
}
