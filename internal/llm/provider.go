package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"

	"github.com/Conversly/article-stream/internal/config"
)

// Provider opens a text-generation stream for a prompt. Each value received
// from the returned reader is one fragment, in provider order; io.EOF marks
// the end of the stream.
type Provider interface {
	StreamText(ctx context.Context, prompt string) (*schema.StreamReader[string], error)
	Name() string
}

// NewProvider builds the provider selected by cfg.Provider.
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiProvider(ctx, cfg.GeminiAPIKeys, cfg.GeminiModel)
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	case config.ProviderStatic:
		return NewStaticProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
}

var defaultStaticArticle = []string{
	"# Artigo de demonstração\n\n",
	"Este texto foi gerado localmente, sem chamar nenhum provedor externo.\n\n",
	"## Desenvolvimento\n\n",
	"Cada linha chega como um fragmento separado do fluxo.\n\n",
	"## Conclusão\n\n",
	"Fim do artigo.\n",
}

// StaticProvider streams a fixed list of fragments for local runs.
type StaticProvider struct {
	fragments []string
}

func NewStaticProvider(fragments ...string) *StaticProvider {
	if len(fragments) == 0 {
		fragments = defaultStaticArticle
	}
	return &StaticProvider{fragments: fragments}
}

func (s *StaticProvider) Name() string { return config.ProviderStatic }

func (s *StaticProvider) StreamText(ctx context.Context, _ string) (*schema.StreamReader[string], error) {
	return schema.StreamReaderFromArray(append([]string(nil), s.fragments...)), nil
}
