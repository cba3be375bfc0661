package cmds

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Conversly/article-stream/internal/history"
	"github.com/Conversly/article-stream/internal/markdown"
	"github.com/Conversly/article-stream/internal/studio"
)

const previewRunes = 70

var indexStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))

func newHistoryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse the last generated articles",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored articles, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.historyStore()
			if err != nil {
				return err
			}
			entries := store.Entries()
			if len(entries) == 0 {
				fmt.Fprintln(a.out, "Nenhum artigo no histórico.")
				return nil
			}
			for i, e := range entries {
				fmt.Fprintf(a.out, "%s %s\n", indexStyle.Render(fmt.Sprintf("%d.", i+1)), preview(e))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show N",
		Short: "Render stored article N (1 is the newest)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := articleNumber(args[0])
			if err != nil {
				return err
			}
			store, err := a.historyStore()
			if err != nil {
				return err
			}
			renderer, err := a.renderer()
			if err != nil {
				return err
			}
			// No generator: showing history never contacts the relay.
			session := studio.NewSession(nil, store, renderer)
			return session.LoadFromHistory(n - 1)
		},
	})

	var outPath string
	exportCmd := &cobra.Command{
		Use:   "export N",
		Short: "Write stored article N as a standalone HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := articleNumber(args[0])
			if err != nil {
				return err
			}
			store, err := a.historyStore()
			if err != nil {
				return err
			}
			text, err := store.Get(n - 1)
			if err != nil {
				return err
			}
			page, err := markdown.Document(text)
			if err != nil {
				return err
			}
			if outPath == "" || outPath == "-" {
				_, err = fmt.Fprint(a.out, page)
				return err
			}
			if err := os.WriteFile(outPath, []byte(page), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}
			fmt.Fprintf(a.errOut, "Artigo salvo em %s\n", outPath)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	cmd.AddCommand(exportCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all stored articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.historyStore()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Histórico apagado.")
			return nil
		},
	})

	return cmd
}

func articleNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > history.DefaultLimit {
		return 0, fmt.Errorf("invalid article number %q (use 1-%d)", arg, history.DefaultLimit)
	}
	return n, nil
}

// preview returns the article's first heading, or its first line, cut to previewRunes.
func preview(text string) string {
	line := markdown.Title(text)
	if line == "" {
		line, _, _ = strings.Cut(strings.TrimSpace(text), "\n")
	}
	r := []rune(line)
	if len(r) <= previewRunes {
		return line
	}
	return string(r[:previewRunes]) + "..."
}
