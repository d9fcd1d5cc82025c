package whispir

import (
	"time"

	"github.com/kbukum/whispir/errors"
	"github.com/kbukum/whispir/httpclient"
	"github.com/kbukum/whispir/resilience"
	"github.com/kbukum/whispir/validation"
)

// NoAuthMessage is the configuration error text for missing credentials.
const NoAuthMessage = "Whispir API Authentication failed. API Key, Username or Password was not provided."

// Config configures a Client.
type Config struct {
	APIKey   string `yaml:"api_key" mapstructure:"api_key" validate:"required"`
	Username string `yaml:"username" mapstructure:"username" validate:"required"`
	Password string `yaml:"password" mapstructure:"password" validate:"required"`

	// DebugHost replaces the production host and sends credentials to any host.
	DebugHost string `yaml:"debug_host" mapstructure:"debug_host"`

	Proxy *httpclient.ProxyConfig `yaml:"proxy" mapstructure:"proxy"`
	TLS   *httpclient.TLSConfig   `yaml:"tls" mapstructure:"tls"`

	// ProxyFromEnvironment honors HTTP_PROXY, HTTPS_PROXY and NO_PROXY when
	// no proxy is set.
	ProxyFromEnvironment bool `yaml:"proxy_from_env" mapstructure:"proxy_from_env"`

	// Timeout bounds each attempt. Zero keeps the transport defaults.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// RateLimit paces requests on the client side.
	RateLimit *resilience.RateLimiterConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// Validate checks that the API key, username and password are all set.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return errors.Configuration(NoAuthMessage).
			WithDetail("fields", validation.Fields(err)).
			WithCause(err)
	}
	return nil
}

// httpConfig derives the adapter configuration.
func (c *Config) httpConfig(userAgent string) httpclient.Config {
	cfg := httpclient.Config{
		Name:      "whispir",
		Timeout:   c.Timeout,
		UserAgent: userAgent,
		TLS:       c.TLS,
		Proxy:     c.Proxy,
		Retry:     httpclient.OverQPSRetryConfig(),

		ProxyFromEnvironment: c.ProxyFromEnvironment,
	}
	if c.RateLimit != nil {
		rl := *c.RateLimit
		if rl.Name == "" {
			rl.Name = "whispir"
		}
		cfg.RateLimiter = &rl
	}
	return cfg
}
