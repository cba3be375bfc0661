package cmds

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Conversly/article-stream/internal/config"
	"github.com/Conversly/article-stream/internal/history"
	"github.com/Conversly/article-stream/internal/studio"
	"github.com/Conversly/article-stream/internal/utils"
)

type app struct {
	out    io.Writer
	errOut io.Writer

	// interactive reports whether prompts may be shown.
	interactive func() bool

	cfg     *config.ClientConfig
	dataDir string
	style   string
	width   int
	cleanup func()
}

// NewRootCommand builds the article-client command tree writing article
// text to out and status messages to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	return newRootCommand(&app{out: out, errOut: errOut, interactive: stdinIsTerminal})
}

func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd())
}

func newRootCommand(a *app) *cobra.Command {

	root := &cobra.Command{
		Use:   "article-client",
		Short: "Generate blog articles from the streaming relay",
		Long: `article-client sends a topic and tone to the article relay, prints the
article as it streams in, and keeps the last finished articles locally.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadClientConfig()
			if err != nil {
				return err
			}
			a.cfg = cfg
			if a.dataDir == "" {
				a.dataDir = cfg.DataDir
			}
			a.cleanup = utils.InitClientLogger(cfg.LogLevel)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.cleanup != nil {
				a.cleanup()
			}
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "Directory holding the article history (default $ARTICLE_DATA_DIR or the user config dir)")
	root.PersistentFlags().StringVar(&a.style, "style", "auto", "Markdown style: auto, dark, light, notty")
	root.PersistentFlags().IntVar(&a.width, "width", 80, "Word wrap width for rendered markdown")

	root.AddCommand(newGenerateCommand(a))
	root.AddCommand(newHistoryCommand(a))
	return root
}

func (a *app) historyStore() (*history.FileStore, error) {
	return history.NewFileStore(a.dataDir, history.DefaultLimit)
}

func (a *app) renderer() (*studio.TerminalRenderer, error) {
	return studio.NewTerminalRenderer(a.out, a.errOut, a.style, a.width)
}
