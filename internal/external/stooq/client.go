// Package stooq downloads daily price CSVs from stooq.com.
package stooq

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/time/rate"

	"github.com/wonny/rotation/pkg/config"
	"github.com/wonny/rotation/pkg/httputil"
	"github.com/wonny/rotation/pkg/logger"
)

// Stooq throttles anonymous clients aggressively, so requests carry a
// browser User-Agent and go through a shared rate limiter.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// Client handles communication with Stooq
// ⭐ SSOT: Stooq 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a Stooq client honoring the configured rate limit.
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	httpClient := httputil.NewWithTimeout(cfg, log, cfg.Stooq.RequestTimeout).
		WithRateLimiter(rate.NewLimiter(rate.Limit(cfg.Stooq.RatePerSecond), 1))
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.Stooq.BaseURL,
	}
}

// DownloadDailyCSV fetches the full daily history CSV for one symbol
// and writes it to targetFile, creating parent directories as needed.
func (c *Client) DownloadDailyCSV(ctx context.Context, symbol, targetFile string) error {
	fullURL := fmt.Sprintf("%s/q/d/l/?s=%s&i=d", c.baseURL, strings.ToLower(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("stooq: create request for %s: %w", symbol, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("stooq: download %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stooq: download %s: unexpected status code %d", symbol, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("stooq: read response for %s: %w", symbol, err)
	}

	// Rate-limited and unknown symbols still answer 200 with an HTML or
	// error page, so require a real CSV header.
	if !strings.HasPrefix(strings.TrimSpace(string(body)), "Date,") {
		return fmt.Errorf("stooq: download %s: response is not a daily CSV", symbol)
	}

	if err := os.MkdirAll(filepath.Dir(targetFile), 0o755); err != nil {
		return fmt.Errorf("stooq: create data dir for %s: %w", symbol, err)
	}
	if err := os.WriteFile(targetFile, body, 0o644); err != nil {
		return fmt.Errorf("stooq: write %s: %w", targetFile, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"file":   targetFile,
		"bytes":  len(body),
	}).Debug("Downloaded daily CSV")
	return nil
}
