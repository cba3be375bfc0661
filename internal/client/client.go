package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Conversly/article-stream/internal/api/article"
	"github.com/Conversly/article-stream/internal/utils"
)

const readBufferSize = 4096

var (
	// ErrNoBody is returned when a successful response carries no stream.
	ErrNoBody = errors.New("streaming response body is not available")

	// ErrStreamAborted is returned when the relay reports a failed generation.
	ErrStreamAborted = errors.New("article stream aborted by server")
)

// StatusError reports a non-2xx answer from the relay.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed: %s", e.Status)
}

// Client talks to the article relay.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for baseURL. A nil httpClient uses one without a
// timeout; streams last as long as generation does.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// GenerateStream posts req and calls onChunk with each decoded chunk, in
// arrival order, until the stream ends.
func (c *Client) GenerateStream(ctx context.Context, req article.Request, onChunk func(chunk string)) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+article.Path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/plain")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, readBufferSize))
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return ErrNoBody
	}

	var dec utf8Decoder
	buf := make([]byte, readBufferSize)
	chunks := 0
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if text := dec.Decode(buf[:n]); text != "" {
				chunks++
				onChunk(text)
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return fmt.Errorf("failed to read article stream: %w", readErr)
		}
	}
	if rest := dec.Flush(); rest != "" {
		onChunk(rest)
	}

	if resp.Trailer.Get(article.TrailerStatus) == article.StatusError {
		return ErrStreamAborted
	}

	utils.Zlog.Debug("Article stream finished",
		zap.Int("chunks", chunks),
		zap.String("request_id", resp.Header.Get("X-Request-ID")))
	return nil
}

// Generate collects the whole stream into a string.
func (c *Client) Generate(ctx context.Context, req article.Request) (string, error) {
	var sb strings.Builder
	err := c.GenerateStream(ctx, req, func(chunk string) { sb.WriteString(chunk) })
	return sb.String(), err
}
