// Package relayer queries the cross-chain relayer for command execution status.
package relayer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 1 << 20

// ErrMalformedResponse is returned when the relayer answers with an unexpected body
var ErrMalformedResponse = errors.New("malformed relayer response")

// StatusError is returned for non-2xx relayer responses
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("relayer returned status %d: %s", e.Code, e.Body)
}

// Status is the relayer's view of a command
type Status struct {
	Executed bool
	Pending  bool
	// TxHash is the destination transaction hash, set once executed
	TxHash string
}

// Client queries command status
//
//go:generate mockery --name Client --output mocks --outpkg mocks --filename mock_client.go --with-expecter
type Client interface {
	CommandStatus(ctx context.Context, commandID, chainName string) (Status, error)
}

// Config holds HTTP client settings
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	// RateLimit is requests per second; zero disables throttling
	RateLimit float64
	RateBurst int
}

// HTTPClient talks to GET {base}/command/{commandId}/{chainName}
type HTTPClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a relayer client
func NewHTTPClient(cfg Config, logger *zap.Logger) (*HTTPClient, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid relayer base url %q", cfg.BaseURL)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: limiter,
		logger:  logger.With(zap.String("component", "relayer_client")),
	}, nil
}

// CommandStatus returns the execution status of commandID on chainName. The
// body may carry the fields at the top level or under a "data" object.
func (c *HTTPClient) CommandStatus(ctx context.Context, commandID, chainName string) (Status, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Status{}, fmt.Errorf("rate limiter: %w", err)
	}

	endpoint := fmt.Sprintf("%s/command/%s/%s", c.baseURL, url.PathEscape(commandID), url.PathEscape(chainName))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return Status{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Status{}, fmt.Errorf("relayer request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Status{}, fmt.Errorf("failed to read relayer response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Status{}, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return parseStatus(body)
}

func parseStatus(body []byte) (Status, error) {
	if !gjson.ValidBytes(body) {
		return Status{}, ErrMalformedResponse
	}

	root := gjson.ParseBytes(body)
	if data := root.Get("data"); data.IsObject() {
		root = data
	}

	executed := root.Get("executed")
	pending := root.Get("pending")
	if !executed.Exists() && !pending.Exists() {
		return Status{}, fmt.Errorf("%w: missing executed/pending fields", ErrMalformedResponse)
	}

	return Status{
		Executed: executed.Bool(),
		Pending:  pending.Bool(),
		TxHash:   root.Get("txHash").String(),
	}, nil
}
