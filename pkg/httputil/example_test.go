package httputil_test

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/rotation/pkg/config"
	"github.com/wonny/rotation/pkg/httputil"
	"github.com/wonny/rotation/pkg/logger"
)

// ExampleNew demonstrates basic HTTP client usage
func ExampleNew() {
	cfg := &config.Config{
		Env:      "production",
		LogLevel: "info",
		Database: config.DatabaseConfig{
			URL: "dummy",
		},
	}
	log := logger.New(cfg)

	// Create HTTP client (SSOT)
	client := httputil.New(cfg, log)

	ctx := context.Background()
	resp, err := client.Get(ctx, "https://stooq.com/q/d/l/?s=spy.us&i=d")
	if err != nil {
		fmt.Printf("Request failed: %v\n", err)
		return
	}
	defer resp.Body.Close()

	fmt.Printf("Status: %d\n", resp.StatusCode)
}

// ExampleClient_WithRetry demonstrates retry configuration
func ExampleClient_WithRetry() {
	cfg := &config.Config{
		Env:      "production",
		LogLevel: "info",
		Database: config.DatabaseConfig{
			URL: "dummy",
		},
	}
	log := logger.New(cfg)

	// 5 retries, 2s initial delay, rate capped at 2 requests/second
	client := httputil.NewWithTimeout(cfg, log, 30*time.Second).
		WithRetry(5, 2*time.Second).
		WithRateLimiter(rate.NewLimiter(2, 1))

	ctx := context.Background()
	resp, err := client.Get(ctx, "https://stooq.com/q/d/l/?s=ief.us&i=d")
	if err != nil {
		fmt.Printf("Request failed after retries: %v\n", err)
		return
	}
	defer resp.Body.Close()

	fmt.Println("Request succeeded")
}
