package stooq

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/rotation/pkg/config"
	"github.com/wonny/rotation/pkg/logger"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	cfg := &config.Config{
		Stooq: config.StooqConfig{
			BaseURL:        baseURL,
			RequestTimeout: 5 * time.Second,
			RatePerSecond:  100,
		},
	}
	return NewClient(cfg, logger.NewNop())
}

func TestDownloadDailyCSV(t *testing.T) {
	const csvBody = "Date,Open,High,Low,Close,Volume\n2024-01-02,100,101,99,100.5,120000\n"

	var gotPath, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(csvBody))
	}))
	defer server.Close()

	target := filepath.Join(t.TempDir(), "prices", "spy.csv")
	err := testClient(t, server.URL).DownloadDailyCSV(context.Background(), "SPY", target)
	require.NoError(t, err)

	assert.Equal(t, "/q/d/l/?s=spy&i=d", gotPath)
	assert.Contains(t, gotAgent, "Mozilla/5.0")

	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, csvBody, string(written))
}

func TestDownloadDailyCSV_RejectsNonCSV(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>Exceeded the daily hits limit</html>"))
	}))
	defer server.Close()

	target := filepath.Join(t.TempDir(), "spy.csv")
	err := testClient(t, server.URL).DownloadDailyCSV(context.Background(), "SPY", target)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not a daily CSV"))
	assert.NoFileExists(t, target)
}

func TestDownloadDailyCSV_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	target := filepath.Join(t.TempDir(), "spy.csv")
	err := testClient(t, server.URL).DownloadDailyCSV(context.Background(), "SPY", target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status code 404")
}
