package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/kbukum/whispir/errors"
	"github.com/kbukum/whispir/logger"
	"github.com/kbukum/whispir/observability"
	"github.com/kbukum/whispir/resilience"
)

var errReaderBody = errors.New("httpclient: io.Reader bodies cannot be replayed on retry")

// Metrics receives per-exchange measurements. *observability.ClientMetrics
// implements it.
type Metrics interface {
	RecordAttempt(ctx context.Context, method string, status int, d time.Duration)
	RecordRetry(ctx context.Context, reason string)
	RecordFailure(ctx context.Context, kind string)
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for request and failure lines.
func WithLogger(l *logger.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.log = l
		}
	}
}

// WithMetrics records attempts, retries and failures into m.
func WithMetrics(m Metrics) Option {
	return func(a *Adapter) { a.metrics = m }
}

// WithTransport replaces the pooled transport. Proxy and TLS settings are not
// applied to rt.
func WithTransport(rt http.RoundTripper) Option {
	return func(a *Adapter) { a.httpClient.Transport = rt }
}

// Adapter executes requests over one pooled transport. It is safe for
// concurrent use.
type Adapter struct {
	httpClient *http.Client
	transport  *http.Transport
	config     Config
	rl         *resilience.RateLimiter
	proxy      atomic.Pointer[proxyRoute]
	log        *logger.Logger
	metrics    Metrics
	closed     atomic.Bool
}

// New creates a new HTTP adapter with the given configuration.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		transport.TLSClientConfig = tlsCfg
	}

	a := &Adapter{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		transport: transport,
		config:    cfg,
		log:       logger.Get(cfg.Name),
	}
	transport.Proxy = a.proxyForRequest
	a.proxy.Store(newProxyRoute(cfg.Proxy, cfg.ProxyFromEnvironment))

	if cfg.RateLimiter != nil {
		a.rl = resilience.NewRateLimiter(a.rateLimiterConfig(*cfg.RateLimiter))
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// rateLimiterConfig logs every throttled request before calling the
// configured hook.
func (a *Adapter) rateLimiterConfig(cfg resilience.RateLimiterConfig) resilience.RateLimiterConfig {
	if cfg.Name == "" {
		cfg.Name = a.config.Name
	}
	next := cfg.OnLimit
	cfg.OnLimit = func(name string) {
		a.log.Debug("request throttled", logger.Fields("limiter", name))
		if next != nil {
			next(name)
		}
	}
	return cfg
}

// SetProxy routes subsequent connections through p. Nil connects directly,
// ignoring ProxyFromEnvironment.
// Idle connections are dropped so the change applies to the next request.
func (a *Adapter) SetProxy(p *ProxyConfig) error {
	if p != nil {
		if err := p.Validate(); err != nil {
			return apperrors.Validation(err.Error()).WithCause(err)
		}
	}
	a.proxy.Store(newProxyRoute(p, false))
	a.transport.CloseIdleConnections()
	return nil
}

// Proxy returns the explicit proxy, or nil when connecting directly or
// through the environment's proxy.
func (a *Adapter) Proxy() *ProxyConfig {
	route := a.proxy.Load()
	if route == nil || route.config == nil {
		return nil
	}
	p := *route.config
	return &p
}

// Do executes req, retrying per Config.Retry.
//
// Non-2xx statuses are not errors: the response is returned as received.
// A transport failure is logged and yields a Response with StatusCode 0 and a
// nil error. Errors are returned only for unencodable requests, cancellation
// (TIMEOUT, together with the last response if one was obtained) and a
// failure to release the response (RESOURCE_RELEASE_ERROR, together with it).
func (a *Adapter) Do(ctx context.Context, req Request) (*Response, error) {
	if a.closed.Load() {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "httpclient: adapter is closed")
	}
	if req.Method == "" {
		req.Method = http.MethodGet
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, apperrors.Encoding(err)
	}

	requestID := logger.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = logger.ContextWithRequestID(ctx, requestID)
	}
	logURL := redactURL(req.URL, a.config.RedactParams)

	ctx, span := observability.StartSpan(ctx, observability.SpanRequest,
		attribute.String(observability.AttrMethod, req.Method),
		attribute.String(observability.AttrURL, logURL),
		attribute.String(observability.AttrRequestID, requestID),
	)
	defer span.End()
	log := a.log.WithContext(ctx)

	if a.rl != nil {
		if err := a.rl.Wait(ctx); err != nil {
			appErr := apperrors.Timeout("rate limit wait", err)
			observability.SetSpanError(ctx, appErr)
			return nil, appErr
		}
	}

	attempts := 0
	send := func() (*Response, error) {
		attempts++
		return a.executeRequest(ctx, log, req, body, contentType, logURL, attempts)
	}

	var resp *Response
	if a.config.Retry != nil {
		resp, err = resilience.Retry(ctx, a.retryConfig(ctx, log), send)
	} else {
		resp, err = send()
	}

	if resp != nil {
		resp.Attempts = attempts
		span.SetAttributes(attribute.Int(observability.AttrStatus, resp.StatusCode))
	}
	span.SetAttributes(attribute.Int(observability.AttrAttempt, attempts))

	err = finishError(err)
	observability.SetSpanError(ctx, err)
	return resp, err
}

// retryConfig wraps the configured OnRetry with logging and metrics.
func (a *Adapter) retryConfig(ctx context.Context, log *logger.Logger) resilience.RetryConfig {
	cfg := *a.config.Retry
	next := cfg.OnRetry
	cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
		reason := "error"
		if IsOverQPS(err) {
			reason = "over_qps"
		}
		log.Warn("request rejected, retrying", logger.Fields(
			logger.FieldAttempt, attempt,
			"reason", reason,
			"backoff", backoff.String(),
		))
		if a.metrics != nil {
			a.metrics.RecordRetry(ctx, reason)
		}
		if next != nil {
			next(attempt, err, backoff)
		}
	}
	return cfg
}

// finishError maps the last attempt's error onto what Do returns.
func finishError(err error) error {
	if err == nil {
		return nil
	}
	var statusErr *Error
	if errors.As(err, &statusErr) {
		return nil
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Timeout("retry delay", err)
	}
	return err
}

// executeRequest performs one exchange. An over-QPS *Error return drives the
// retry policy and is never surfaced from Do.
func (a *Adapter) executeRequest(ctx context.Context, log *logger.Logger, req Request, body []byte, contentType, logURL string, attempt int) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader(body))
	if err != nil {
		return nil, apperrors.Validation(fmt.Sprintf("create request: %v", err)).WithCause(err)
	}

	for k, v := range a.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if body != nil && contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if a.config.UserAgent != "" && httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", a.config.UserAgent)
	}
	authed := req.Auth.apply(httpReq)

	log.Debug("sending request", logger.Fields(
		logger.FieldMethod, req.Method,
		logger.FieldURL, logURL,
		logger.FieldAttempt, attempt,
		"auth", authed,
	))

	start := time.Now()
	httpResp, err := a.httpClient.Do(httpReq)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = logURL
		}
		if ctx.Err() != nil {
			a.recordFailure(ctx, "canceled")
			return nil, apperrors.Timeout("request", err)
		}
		log.Error("message failed: connection error", logger.Fields(
			logger.FieldMethod, req.Method,
			logger.FieldURL, logURL,
			logger.FieldAttempt, attempt,
			logger.FieldError, err.Error(),
		))
		a.recordAttempt(ctx, req.Method, 0, time.Since(start))
		a.recordFailure(ctx, "connection")
		return &Response{TransportErr: err}, nil
	}

	data, readErr := io.ReadAll(httpResp.Body)
	closeErr := httpResp.Body.Close()
	elapsed := time.Since(start)

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       data,
	}
	a.recordAttempt(ctx, req.Method, resp.StatusCode, elapsed)

	log.Debug("response received", logger.Fields(
		logger.FieldStatus, resp.StatusCode,
		logger.FieldAttempt, attempt,
		logger.FieldDuration, elapsed.Milliseconds(),
		logger.FieldBody, truncateBody(data),
	))

	if readErr != nil {
		if ctx.Err() != nil {
			return resp, apperrors.Timeout("read response", readErr)
		}
		log.Error("message failed: reading response body", logger.Fields(
			logger.FieldStatus, resp.StatusCode,
			logger.FieldError, readErr.Error(),
		))
		a.recordFailure(ctx, "read")
		resp.TransportErr = readErr
	}
	if closeErr != nil {
		log.Error("releasing response failed", logger.Fields(
			logger.FieldStatus, resp.StatusCode,
			logger.FieldError, closeErr.Error(),
		))
		a.recordFailure(ctx, "release")
		return resp, apperrors.ResourceRelease(closeErr)
	}

	if isOverQPSResponse(resp.StatusCode, resp.Header) {
		return resp, NewOverQPSError(data)
	}
	return resp, nil
}

// maxLoggedBody caps the response body copied into debug logs.
const maxLoggedBody = 512

func truncateBody(data []byte) string {
	if len(data) <= maxLoggedBody {
		return string(data)
	}
	return string(data[:maxLoggedBody]) + "...(truncated)"
}

func (a *Adapter) recordAttempt(ctx context.Context, method string, status int, d time.Duration) {
	if a.metrics != nil {
		a.metrics.RecordAttempt(ctx, method, status, d)
	}
}

func (a *Adapter) recordFailure(ctx context.Context, kind string) {
	if a.metrics != nil {
		a.metrics.RecordFailure(ctx, kind)
	}
}

// Name returns the adapter name.
func (a *Adapter) Name() string {
	return a.config.Name
}

// Config returns the adapter's configuration.
func (a *Adapter) Config() Config {
	return a.config
}

// Close releases pooled connections. It is idempotent; Do fails afterwards.
func (a *Adapter) Close(_ context.Context) error {
	if a.closed.Swap(true) {
		return nil
	}
	a.httpClient.CloseIdleConnections()
	return nil
}
