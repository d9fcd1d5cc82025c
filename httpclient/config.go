package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/whispir/resilience"
)

const (
	// OverQPSDelay is the fixed wait before the single over-QPS retry.
	OverQPSDelay = time.Second

	defaultName = "whispir-http"
)

// Config configures the HTTP adapter.
type Config struct {
	// Name identifies the adapter in logs.
	Name string `yaml:"name" mapstructure:"name"`

	// Timeout bounds a whole attempt. Zero leaves the transport defaults in place.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is sent on every request when set.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Proxy routes every request through an HTTP or HTTPS proxy.
	Proxy *ProxyConfig `yaml:"proxy" mapstructure:"proxy"`

	// ProxyFromEnvironment uses HTTP_PROXY, HTTPS_PROXY and NO_PROXY when
	// Proxy is nil. Otherwise requests connect directly.
	ProxyFromEnvironment bool `yaml:"proxy_from_env" mapstructure:"proxy_from_env"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// RedactParams are query parameters masked in logged URLs. Defaults to apikey.
	RedactParams []string `yaml:"redact_params" mapstructure:"redact_params"`

	// Retry configures retry behavior. Nil disables retry.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`

	// RateLimiter paces outgoing requests. Nil disables it.
	RateLimiter *resilience.RateLimiterConfig `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.RedactParams == nil {
		c.RedactParams = []string{"apikey"}
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("httpclient: timeout must not be negative")
	}
	if c.Proxy != nil {
		if err := c.Proxy.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// OverQPSRetryConfig returns the retry policy for the API's QPS rejection:
// one retry after exactly OverQPSDelay, only for over-QPS responses.
func OverQPSRetryConfig() *resilience.RetryConfig {
	cfg := resilience.FixedDelayRetryConfig(2, OverQPSDelay)
	cfg.RetryIf = IsOverQPS
	return &cfg
}
