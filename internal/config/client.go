package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const DefaultAPIURL = "http://localhost:3001"

// ClientConfig configures the terminal client.
type ClientConfig struct {
	APIURL   string
	DataDir  string
	LogLevel string
}

// LoadClientConfig reads ARTICLE_API_URL, ARTICLE_DATA_DIR and LOG_LEVEL.
// History lives under the user config directory unless ARTICLE_DATA_DIR is set.
func LoadClientConfig() (*ClientConfig, error) {
	dataDir := strings.TrimSpace(os.Getenv("ARTICLE_DATA_DIR"))
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data directory (set ARTICLE_DATA_DIR): %w", err)
		}
		dataDir = filepath.Join(base, "article-stream")
	}

	return &ClientConfig{
		APIURL:   strings.TrimRight(getEnv("ARTICLE_API_URL", DefaultAPIURL), "/"),
		DataDir:  dataDir,
		LogLevel: getEnv("LOG_LEVEL", "warn"),
	}, nil
}
