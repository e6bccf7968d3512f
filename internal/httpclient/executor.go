package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/bipa-app/escher/internal/metrics"
	"github.com/bipa-app/escher/internal/rate"
)

// Response is a fully buffered HTTP response. The body has already been
// read and closed so callers may decode it as many times as they need.
type Response struct {
	StatusCode int
	Body       []byte
	Elapsed    time.Duration
}

// TransportError wraps any failure that happens before a complete
// response body is in hand.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Executor performs single-attempt, optionally rate-limited HTTP calls.
// It never retries and never interprets the status code; classifying the
// body is the caller's job.
type Executor struct {
	logger   *zap.Logger
	rateMgr  *rate.Manager
	http     *http.Client
	venueTag string
}

// New creates an Executor. rateMgr may be nil.
func New(logger *zap.Logger, rateMgr *rate.Manager, httpClient *http.Client, venueTag string) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Executor{
		logger:   logger,
		rateMgr:  rateMgr,
		http:     httpClient,
		venueTag: venueTag,
	}
}

// Do executes req once. rateLimitKey scopes the limiter (usually the endpoint path).
func (e *Executor) Do(ctx context.Context, req *http.Request, rateLimitKey string) (*Response, error) {
	if e.rateMgr != nil {
		if err := e.rateMgr.Wait(ctx, rateLimitKey); err != nil {
			return nil, &TransportError{URL: req.URL.String(), Err: fmt.Errorf("rate limit wait: %w", err)}
		}
	}

	endpoint := req.URL.Path
	start := time.Now()
	resp, err := e.http.Do(req)
	if err != nil {
		metrics.IncRequest(endpoint, req.Method, "error")
		e.logger.Warn(e.venueTag+".http_failed",
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return nil, &TransportError{URL: req.URL.String(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	metrics.ObserveDuration(metrics.EscherRequestDuration, start, endpoint, req.Method)
	metrics.IncRequest(endpoint, req.Method, strconv.Itoa(resp.StatusCode))
	if err != nil {
		e.logger.Warn(e.venueTag+".body_read_failed",
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode),
			zap.Error(err))
		return nil, &TransportError{URL: req.URL.String(), Err: fmt.Errorf("read body: %w", err)}
	}

	e.logger.Debug(e.venueTag+".http_done",
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed))

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		Elapsed:    elapsed,
	}, nil
}

// HTTPClient returns the underlying client.
func (e *Executor) HTTPClient() *http.Client {
	return e.http
}
