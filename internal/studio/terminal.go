package studio

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/Conversly/article-stream/internal/utils"
)

const clearScreen = "\033[H\033[2J"

// TerminalRenderer prints streamed chunks as they arrive and renders whole
// articles as markdown when the display is replaced.
type TerminalRenderer struct {
	out      io.Writer
	errOut   io.Writer
	markdown *glamour.TermRenderer
	isTTY    bool
}

// NewTerminalRenderer builds a renderer. style is a glamour style name or
// "auto"; width <= 0 disables word wrapping.
func NewTerminalRenderer(out, errOut io.Writer, style string, width int) (*TerminalRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	md, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = isatty.IsTerminal(f.Fd())
	}

	return &TerminalRenderer{out: out, errOut: errOut, markdown: md, isTTY: isTTY}, nil
}

func (t *TerminalRenderer) Render(u Update) {
	switch {
	case u.ScrollToTop:
		if t.isTTY {
			fmt.Fprint(t.out, clearScreen)
		}
		fmt.Fprint(t.out, t.Markdown(u.Display))
	case u.Chunk != "":
		fmt.Fprint(t.out, u.Chunk)
	case u.State == StateSubmitting:
		fmt.Fprintln(t.errOut, "Gerando, aguarde...")
	case u.State == StateErrored:
		if u.Display != "" {
			fmt.Fprintln(t.out)
		}
		fmt.Fprintln(t.errOut, u.Err)
	case u.State == StateDone:
		fmt.Fprintln(t.out)
	}
}

// Markdown renders md for the terminal, falling back to the raw text.
func (t *TerminalRenderer) Markdown(md string) string {
	rendered, err := t.markdown.Render(md)
	if err != nil {
		utils.Zlog.Warn("Markdown rendering failed", zap.Error(err))
		return md
	}
	return rendered
}
