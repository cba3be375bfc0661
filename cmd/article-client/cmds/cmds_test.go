package cmds

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conversly/article-stream/internal/api/article"
	"github.com/Conversly/article-stream/internal/config"
	"github.com/Conversly/article-stream/internal/llm"
)

type failingProvider struct{}

func (failingProvider) Name() string { return "failing" }

func (failingProvider) StreamText(context.Context, string) (*schema.StreamReader[string], error) {
	sr, sw := schema.Pipe[string](2)
	sw.Send("Intro", nil)
	sw.Send("", errors.New("quota exceeded"))
	sw.Close()
	return sr, nil
}

func relayURL(t *testing.T, provider llm.Provider) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	article.RegisterRoutes(router, provider, &config.Config{})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, dataDir string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("ARTICLE_API_URL", "")
	t.Setenv("ARTICLE_DATA_DIR", dataDir)
	t.Setenv("LOG_LEVEL", "error")

	var out, errOut bytes.Buffer
	root := newRootCommand(&app{out: &out, errOut: &errOut, interactive: func() bool { return false }})
	root.SetArgs(append(args, "--style", "notty"))
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestGenerateThenShowHistory(t *testing.T) {
	dir := t.TempDir()
	url := relayURL(t, llm.NewStaticProvider("# Café\n\n", "Olá mundo"))

	out, _, err := run(t, dir, "generate", "--topic", "café", "--tone", "Informal", "--base-url", url)
	require.NoError(t, err)
	assert.Equal(t, "# Café\n\nOlá mundo\n", out)

	out, _, err = run(t, dir, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1.")
	assert.Contains(t, out, "Café")

	out, _, err = run(t, dir, "history", "export", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "<title>Café</title>")
	assert.Contains(t, out, "<p>Olá mundo</p>")

	page := filepath.Join(t.TempDir(), "artigo.html")
	_, errOut, err := run(t, dir, "history", "export", "1", "--out", page)
	require.NoError(t, err)
	assert.Contains(t, errOut, page)
	saved, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Contains(t, string(saved), "<h1>Café</h1>")

	out, _, err = run(t, dir, "history", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Olá mundo")

	out, _, err = run(t, dir, "history", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Histórico apagado.")

	out, _, err = run(t, dir, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Nenhum artigo")
}

func TestGenerateFailureLeavesHistoryEmpty(t *testing.T) {
	dir := t.TempDir()
	url := relayURL(t, failingProvider{})

	out, errOut, err := run(t, dir, "generate", "--topic", "t", "--base-url", url)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(out, "Intro"))
	assert.Contains(t, errOut, "Houve um problema ao gerar o artigo")

	out, _, err = run(t, dir, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Nenhum artigo")
}

func TestGenerateRequiresTopicWithoutTerminal(t *testing.T) {
	_, _, err := run(t, t.TempDir(), "generate")
	require.ErrorContains(t, err, "--topic is required")
}

func TestGenerateRejectsUnknownTone(t *testing.T) {
	_, _, err := run(t, t.TempDir(), "generate", "--topic", "t", "--tone", "Sarcástico")
	require.ErrorContains(t, err, "unknown tone")
}

func TestHistoryShowOutOfRange(t *testing.T) {
	_, _, err := run(t, t.TempDir(), "history", "show", "3")
	require.Error(t, err)

	for _, arg := range []string{"abc", "0", "6"} {
		_, _, err = run(t, t.TempDir(), "history", "show", arg)
		require.ErrorContains(t, err, "invalid article number")
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "Título", preview("## Título\n\ncorpo"))
	assert.Equal(t, "primeira linha", preview("primeira linha\nsegunda"))
	long := strings.Repeat("á", 80)
	assert.Equal(t, strings.Repeat("á", 70)+"...", preview(long))
}

func TestRootCommandWritesToAppWriters(t *testing.T) {
	var out, errOut bytes.Buffer
	root := newRootCommand(&app{out: &out, errOut: &errOut, interactive: func() bool { return false }})

	root.SetArgs([]string{"--help"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "article-client")
	assert.Contains(t, out.String(), "history")

	out.Reset()
	root.SetArgs([]string{"nope"})
	require.Error(t, root.Execute())
	assert.Contains(t, errOut.String(), "unknown command")
	assert.Empty(t, out.String())
}
