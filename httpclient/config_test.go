package httpclient

import (
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Name != "whispir-http" {
		t.Errorf("expected default name, got %q", cfg.Name)
	}
	if len(cfg.RedactParams) != 1 || cfg.RedactParams[0] != "apikey" {
		t.Errorf("expected apikey redaction, got %v", cfg.RedactParams)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero", Config{}, false},
		{"timeout", Config{Timeout: 5 * time.Second}, false},
		{"negative timeout", Config{Timeout: -1}, true},
		{"valid proxy", Config{Proxy: &ProxyConfig{Host: "proxy.local", Port: 3128}}, false},
		{"proxy without host", Config{Proxy: &ProxyConfig{Port: 3128}}, true},
		{"proxy port zero", Config{Proxy: &ProxyConfig{Host: "proxy.local"}}, true},
		{"proxy port too large", Config{Proxy: &ProxyConfig{Host: "proxy.local", Port: 70000}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOverQPSRetryConfig(t *testing.T) {
	cfg := OverQPSRetryConfig()
	if cfg.MaxAttempts != 2 {
		t.Errorf("expected 2 attempts, got %d", cfg.MaxAttempts)
	}
	if cfg.InitialBackoff != time.Second || cfg.MaxBackoff != time.Second {
		t.Errorf("expected fixed 1s delay, got %v..%v", cfg.InitialBackoff, cfg.MaxBackoff)
	}
	if cfg.Jitter != 0 {
		t.Errorf("expected no jitter, got %v", cfg.Jitter)
	}
	if !cfg.RetryIf(NewOverQPSError(nil)) {
		t.Error("expected over-QPS error to be retried")
	}
	if cfg.RetryIf(ClassifyStatusCode(403, nil)) {
		t.Error("expected plain 403 not to be retried")
	}
}

func TestTLSConfig_Build(t *testing.T) {
	var nilCfg *TLSConfig
	if c, err := nilCfg.Build(); c != nil || err != nil {
		t.Errorf("nil config: got %v, %v", c, err)
	}

	c, err := (&TLSConfig{SkipVerify: true, ServerName: "api.whispir.com"}).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.InsecureSkipVerify || c.ServerName != "api.whispir.com" {
		t.Errorf("unexpected tls config: %+v", c)
	}

	if _, err := (&TLSConfig{CAFile: "/nonexistent/ca.pem"}).Build(); err == nil {
		t.Error("expected error for missing CA file")
	}
}
