package whispir

import (
	"context"
	"net/http"
	"sync"

	"github.com/kbukum/whispir/httpclient"
	"github.com/kbukum/whispir/logger"
	"github.com/kbukum/whispir/version"
)

// Option configures a Client.
type Option func(*options)

type options struct {
	log       *logger.Logger
	metrics   httpclient.Metrics
	userAgent string
	http      []httpclient.Option
}

// WithLogger sets the logger for the client and its transport.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records request metrics into m.
func WithMetrics(m httpclient.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithUserAgent overrides the default whispir-go/<version> User-Agent.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// WithHTTPOptions passes options through to the underlying adapter.
func WithHTTPOptions(opts ...httpclient.Option) Option {
	return func(o *options) { o.http = append(o.http, opts...) }
}

// Client talks to the Whispir API. It is safe for concurrent use; setters
// affect requests started after they return.
type Client struct {
	mu    sync.RWMutex
	state snapshot

	http *httpclient.Adapter
	log  *logger.Logger
}

// New validates cfg and creates a client with its own pooled transport.
// Close releases it.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{userAgent: version.UserAgent()}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logger.Get("whispir")
	}

	httpOpts := []httpclient.Option{httpclient.WithLogger(o.log)}
	if o.metrics != nil {
		httpOpts = append(httpOpts, httpclient.WithMetrics(o.metrics))
	}
	httpOpts = append(httpOpts, o.http...)

	adapter, err := httpclient.New(cfg.httpConfig(o.userAgent), httpOpts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		state: snapshot{
			apiKey:    cfg.APIKey,
			username:  cfg.Username,
			password:  cfg.Password,
			debugHost: cfg.DebugHost,
		},
		http: adapter,
		log:  o.log,
	}, nil
}

func (c *Client) snapshot() snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// SetAPIKey replaces the API key.
func (c *Client) SetAPIKey(apiKey string) {
	c.mu.Lock()
	c.state.apiKey = apiKey
	c.mu.Unlock()
}

// SetUsername replaces the basic auth username.
func (c *Client) SetUsername(username string) {
	c.mu.Lock()
	c.state.username = username
	c.mu.Unlock()
}

// SetPassword replaces the basic auth password.
func (c *Client) SetPassword(password string) {
	c.mu.Lock()
	c.state.password = password
	c.mu.Unlock()
}

// SetDebugHost enables debug mode against host. An empty host disables it.
func (c *Client) SetDebugHost(host string) {
	c.mu.Lock()
	c.state.debugHost = host
	c.mu.Unlock()
	c.log.Debug("debug host changed", logger.Fields("debug", host != "", "host", host))
}

// DebugHost returns the debug host, empty outside debug mode.
func (c *Client) DebugHost() string {
	return c.snapshot().debugHost
}

// SetProxy routes subsequent requests through host:port, over TLS when https
// is set. The proxy is not contacted until the next request.
func (c *Client) SetProxy(host string, port int, https bool) error {
	return c.http.SetProxy(&httpclient.ProxyConfig{Host: host, Port: port, HTTPS: https})
}

// DisableProxy makes subsequent requests connect directly.
func (c *Client) DisableProxy() {
	_ = c.http.SetProxy(nil)
}

// Proxy returns the active proxy, or nil.
func (c *Client) Proxy() *httpclient.ProxyConfig {
	return c.http.Proxy()
}

// URL returns the address a request for resource would use now.
func (c *Client) URL(workspaceID string, resource Resource) string {
	return c.snapshot().target(workspaceID, resource).URL()
}

// Get fetches resource, optionally within a workspace. A response with
// StatusCode 0 and a nil error means no response was obtained.
func (c *Client) Get(ctx context.Context, resource Resource, workspaceID string) (*httpclient.Response, error) {
	return c.do(ctx, http.MethodGet, resource, workspaceID, nil)
}

// Post sends body to resource and returns the final status code. A status of
// 0 with a nil error means no response was obtained.
func (c *Client) Post(ctx context.Context, resource Resource, workspaceID, body string) (int, error) {
	resp, err := c.do(ctx, http.MethodPost, resource, workspaceID, body)
	if resp == nil {
		return 0, err
	}
	return resp.StatusCode, err
}

func (c *Client) do(ctx context.Context, method string, resource Resource, workspaceID string, body any) (*httpclient.Response, error) {
	headers, err := HeadersFor(resource)
	if err != nil {
		return nil, err
	}

	s := c.snapshot()
	req := httpclient.Request{
		Method:  method,
		URL:     s.target(workspaceID, resource).URL(),
		Headers: headers.Map(),
		Body:    body,
		Auth:    credentialsFor(s),
	}

	return c.http.Do(ctx, req)
}

// Close releases the pooled transport.
func (c *Client) Close(ctx context.Context) error {
	return c.http.Close(ctx)
}
