package whispir

import (
	"fmt"
	"testing"

	"github.com/kbukum/whispir/errors"
	"github.com/kbukum/whispir/httpclient"
	"github.com/kbukum/whispir/resilience"
)

func TestConfig_ValidateAllCombinations(t *testing.T) {
	values := []string{"", "set"}
	for _, key := range values {
		for _, user := range values {
			for _, pass := range values {
				cfg := Config{APIKey: key, Username: user, Password: pass}
				name := fmt.Sprintf("key=%q user=%q pass=%q", key, user, pass)
				t.Run(name, func(t *testing.T) {
					err := cfg.Validate()
					complete := key != "" && user != "" && pass != ""
					if complete {
						if err != nil {
							t.Fatalf("unexpected error: %v", err)
						}
						return
					}
					appErr, ok := errors.AsAppError(err)
					if !ok || appErr.Code != errors.ErrCodeConfiguration {
						t.Fatalf("expected configuration error, got %v", err)
					}
					if appErr.Message != NoAuthMessage {
						t.Errorf("unexpected message %q", appErr.Message)
					}
				})
			}
		}
	}
}

func TestNew_RejectsMissingCredentials(t *testing.T) {
	c, err := New(Config{APIKey: "K1", Username: "user"})
	if c != nil || !errors.IsCode(err, errors.ErrCodeConfiguration) {
		t.Errorf("expected configuration error, got %v, %v", c, err)
	}
}

func TestConfig_HTTPConfig(t *testing.T) {
	cfg := Config{
		APIKey: "K1", Username: "u", Password: "p",
		Proxy:     &httpclient.ProxyConfig{Host: "proxy.local", Port: 3128},
		RateLimit: &resilience.RateLimiterConfig{Rate: 5},

		ProxyFromEnvironment: true,
	}
	hc := cfg.httpConfig("whispir-go/test")

	if hc.UserAgent != "whispir-go/test" {
		t.Errorf("unexpected user agent %q", hc.UserAgent)
	}
	if hc.Retry == nil || hc.Retry.MaxAttempts != 2 {
		t.Errorf("expected single over-QPS retry, got %+v", hc.Retry)
	}
	if hc.Proxy == nil || hc.Proxy.Host != "proxy.local" || !hc.ProxyFromEnvironment {
		t.Errorf("expected proxy settings to carry over")
	}
	if hc.RateLimiter == nil || hc.RateLimiter.Name != "whispir" || hc.RateLimiter.Rate != 5 {
		t.Errorf("unexpected rate limiter %+v", hc.RateLimiter)
	}
	if cfg.RateLimit.Name != "" {
		t.Error("httpConfig mutated the caller's rate limit config")
	}
}
