package escher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bipa-app/escher/internal/httpclient"
	"github.com/bipa-app/escher/internal/metrics"
	"github.com/bipa-app/escher/internal/rate"
	"github.com/bipa-app/escher/pkg/config"
	"github.com/bipa-app/escher/pkg/logger"
	"github.com/bipa-app/escher/pkg/utils"
)

// AccessKeyHeader carries the access token on authenticated calls.
const AccessKeyHeader = "i2-ACCESS-KEY"

const defaultTimeout = 30 * time.Second

// operation describes one Escher endpoint.
type operation struct {
	name          string
	path          string
	authenticated bool
	// sensitive bodies (credentials, tokens) are never logged.
	sensitive bool
}

var (
	opSignIn       = operation{name: "sign_in", path: "/sign-in", sensitive: true}
	opRefreshToken = operation{name: "refresh_token", path: "/sign-in", sensitive: true}
	opQuote        = operation{name: "quote", path: "/quotes", authenticated: true}
	opAcceptQuote  = operation{name: "accept_quote", path: "/quotes/accept", authenticated: true}
)

// Client is a stateless binding to the Escher REST API. It holds no tokens,
// quotes or retry state and is safe for concurrent use.
type Client struct {
	baseURL string
	logger  *zap.Logger
	exec    *httpclient.Executor
}

type options struct {
	httpClient *http.Client
	logger     *zap.Logger
	timeout    time.Duration
	rateLimit  rate.Config
}

// Option configures a Client.
type Option func(*options)

// WithHTTPClient replaces the underlying *http.Client (transport, TLS, proxies).
// WithTimeout is ignored when this is set.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTimeout sets the whole-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithRateLimit throttles outbound calls per endpoint. rps <= 0 disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *options) { o.rateLimit = rate.Config{RequestsPerSecond: rps, Burst: burst} }
}

// NewClient constructs a client for the given base URL, e.g. "https://api.escher.example".
func NewClient(baseURL string, opts ...Option) *Client {
	o := options{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: o.timeout}
	}

	var rateMgr *rate.Manager
	if o.rateLimit.Enabled() {
		rateMgr = rate.NewManager(o.rateLimit)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  o.logger,
		exec:    httpclient.New(o.logger, rateMgr, o.httpClient, "escher"),
	}
}

// NewFromConfig builds a client from loaded configuration, logging through
// the global logger. Explicit opts win over config values.
func NewFromConfig(cfg *config.Config, opts ...Option) *Client {
	base := []Option{
		WithLogger(logger.L().Named("escher")),
		WithTimeout(cfg.HTTPTimeout),
		WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}
	return NewClient(cfg.BaseURL, append(base, opts...)...)
}

// BaseURL returns the configured endpoint root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SignIn exchanges email and password for session tokens.
// POST /sign-in
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthResponse, error) {
	c.logger.Info("escher.sign_in.start", zap.String("email", utils.MaskEmail(email)))
	return call(ctx, c, opSignIn, "", signInRequest{Email: email, Password: password}, decodeAuthResponse)
}

// RefreshToken exchanges a refresh token for new session tokens.
// POST /sign-in (same endpoint; the payload shape selects the flow)
func (c *Client) RefreshToken(ctx context.Context, refreshToken, email string) (*AuthResponse, error) {
	c.logger.Info("escher.refresh_token.start", zap.String("email", utils.MaskEmail(email)))
	return call(ctx, c, opRefreshToken, "", refreshRequest{RefreshToken: refreshToken, Email: email}, decodeAuthResponse)
}

// Quote requests a firm quote. baseCurrencySize is sent exactly as given so
// the caller controls its precision.
// POST /quotes
func (c *Client) Quote(ctx context.Context, accessToken, productID, baseCurrencySize string, side Side) (*Quote, error) {
	c.logger.Info("escher.quote.start",
		zap.String("product_id", productID),
		zap.String("base_currency_size", baseCurrencySize),
		zap.Stringer("side", side))

	q, err := call(ctx, c, opQuote, accessToken, quoteRequest{
		ProductID:        productID,
		BaseCurrencySize: baseCurrencySize,
		Side:             side,
	}, decodeQuote)
	if err != nil {
		return nil, err
	}

	c.logger.Info("escher.quote.created",
		zap.String("quote_id", q.QuoteID),
		zap.Float64("price", q.Price),
		zap.Time("expiry", q.Expiry))
	return q, nil
}

// AcceptQuote commits to a previously issued quote. A nil quantity accepts
// the full quoted size; otherwise it is a partial fill.
// POST /quotes/accept
func (c *Client) AcceptQuote(ctx context.Context, accessToken, quoteID string, quantity *float64) (*AcceptQuote, error) {
	fields := []zap.Field{zap.String("quote_id", quoteID)}
	if quantity != nil {
		fields = append(fields, zap.Float64("quantity", *quantity))
	}
	c.logger.Info("escher.accept_quote.start", fields...)

	res, err := call(ctx, c, opAcceptQuote, accessToken, acceptQuoteRequest{
		QuoteID:  quoteID,
		Quantity: quantity,
	}, decodeAcceptQuote)
	if err != nil {
		return nil, err
	}

	c.logger.Info("escher.accept_quote.done",
		zap.String("quote_id", res.QuoteID),
		zap.String("order_id", res.Order.ID),
		zap.String("order_status", res.Order.OrderStatus),
		zap.Float64("fill_qty", res.Order.FillQty))
	return res, nil
}

// call issues one POST for op and classifies the response. It is a free
// function because methods cannot take type parameters.
func call[T any](ctx context.Context, c *Client, op operation, accessToken string, payload any, decode func(json.RawMessage) (*T, error)) (*T, error) {
	log := c.logger.With(
		zap.String("op", op.name),
		zap.String("request_id", uuid.NewString()))

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("escher %s: encode request: %w", op.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+op.path, bytes.NewReader(data))
	if err != nil {
		metrics.IncOutcome(op.name, metrics.OutcomeNetworkError)
		return nil, &NetworkError{Op: op.name, Err: err}
	}
	setHeaders(req)
	if op.authenticated {
		req.Header.Set(AccessKeyHeader, accessToken)
		log = log.With(zap.String("access_key", utils.MaskSecret(accessToken)))
	}

	resp, err := c.exec.Do(ctx, req, op.path)
	if err != nil {
		metrics.IncOutcome(op.name, metrics.OutcomeNetworkError)
		log.Warn("escher.network_error", zap.Error(err))
		return nil, &NetworkError{Op: op.name, Err: err}
	}

	out, err := classify(op.name, resp.StatusCode, resp.Body, decode)
	if err == nil {
		metrics.IncOutcome(op.name, metrics.OutcomeSuccess)
		log.Debug("escher.success",
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", resp.Elapsed))
		return out, nil
	}

	if apiErr, ok := AsAPIError(err); ok {
		metrics.IncOutcome(op.name, metrics.OutcomeAPIError)
		log.Warn("escher.api_error",
			zap.Int("status", apiErr.StatusCode),
			zap.String("message", apiErr.Message))
		return nil, err
	}

	metrics.IncOutcome(op.name, metrics.OutcomeDecodeError)
	fields := []zap.Field{zap.Int("status", resp.StatusCode), zap.Error(err)}
	if !op.sensitive {
		fields = append(fields, zap.ByteString("body", truncate(resp.Body, 512)))
	}
	log.Error("escher.decode_failed", fields...)
	return nil, err
}

// setHeaders sets required headers for Escher API requests.
func setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
