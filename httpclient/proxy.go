package httpclient

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/net/http/httpproxy"
)

// ProxyConfig describes the proxy every request is routed through.
// Reachability is not checked here; a bad proxy surfaces on the first request.
type ProxyConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
	// HTTPS connects to the proxy itself over TLS.
	HTTPS bool `yaml:"https" mapstructure:"https"`
}

// Validate checks that the proxy has a host and a usable port.
func (p *ProxyConfig) Validate() error {
	if p.Host == "" {
		return fmt.Errorf("httpclient: proxy host is required")
	}
	if p.Port < 1 || p.Port > 65535 {
		return fmt.Errorf("httpclient: proxy port %d out of range", p.Port)
	}
	return nil
}

// URL returns the proxy URL, e.g. http://proxy.local:3128.
func (p *ProxyConfig) URL() *url.URL {
	scheme := "http"
	if p.HTTPS {
		scheme = "https"
	}
	return &url.URL{Scheme: scheme, Host: net.JoinHostPort(p.Host, strconv.Itoa(p.Port))}
}

// proxyRoute is an immutable resolved proxy, swapped atomically on the adapter.
type proxyRoute struct {
	// config is nil when the route comes from the environment.
	config *ProxyConfig
	fn     func(*http.Request) (*url.URL, error)
}

// newProxyRoute resolves the proxy for subsequent requests. An explicit
// proxy applies to every destination. Without one, fromEnv selects the
// HTTP_PROXY, HTTPS_PROXY and NO_PROXY variables; otherwise requests connect
// directly.
func newProxyRoute(p *ProxyConfig, fromEnv bool) *proxyRoute {
	if p != nil {
		cp := *p
		return &proxyRoute{config: &cp, fn: http.ProxyURL(cp.URL())}
	}
	if !fromEnv {
		return nil
	}
	env := httpproxy.FromEnvironment().ProxyFunc()
	return &proxyRoute{fn: func(req *http.Request) (*url.URL, error) {
		return env(req.URL)
	}}
}

// proxyForRequest is installed as the transport's Proxy func.
func (a *Adapter) proxyForRequest(req *http.Request) (*url.URL, error) {
	route := a.proxy.Load()
	if route == nil {
		return nil, nil
	}
	return route.fn(req)
}
