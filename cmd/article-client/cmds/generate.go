package cmds

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Conversly/article-stream/internal/api/article"
	"github.com/Conversly/article-stream/internal/client"
	"github.com/Conversly/article-stream/internal/config"
	"github.com/Conversly/article-stream/internal/studio"
)

func newGenerateCommand(a *app) *cobra.Command {
	var (
		topic   string
		tone    string
		baseURL string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an article and print it as it streams",
		Long: `Generate sends the topic and tone to the relay and prints the article as
it arrives. Without --topic on an interactive terminal a form asks for both.`,
		Example: `  article-client generate --topic "café" --tone Informal
  article-client generate --topic "IA na educação" --tone Técnico --base-url http://localhost:3001`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(topic) == "" {
				if !a.interactive() {
					return errors.New("--topic is required")
				}
				if err := askTopic(&topic, &tone); err != nil {
					return err
				}
			}
			if !slices.Contains(article.Tones, tone) {
				return fmt.Errorf("unknown tone %q (choose one of: %s)", tone, strings.Join(article.Tones, ", "))
			}
			if baseURL == "" {
				baseURL = a.cfg.APIURL
			}

			store, err := a.historyStore()
			if err != nil {
				return err
			}
			renderer, err := a.renderer()
			if err != nil {
				return err
			}

			session := studio.NewSession(client.New(baseURL, nil), store, renderer)
			if err := session.Submit(cmd.Context(), topic, tone); err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Article topic")
	cmd.Flags().StringVar(&tone, "tone", article.DefaultTone, "Tone: "+strings.Join(article.Tones, ", "))
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Relay base URL (default $ARTICLE_API_URL or "+config.DefaultAPIURL+")")
	return cmd
}

// askTopic fills topic and tone from an interactive form.
func askTopic(topic, tone *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tema do artigo").
				Placeholder("Ex: Benefícios da inteligência artificial").
				Value(topic).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("informe um tema")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Tom").
				Options(huh.NewOptions(article.Tones...)...).
				Value(tone),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return fmt.Errorf("form cancelled: %w", err)
	}
	return nil
}
