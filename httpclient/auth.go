package httpclient

import (
	"net"
	"net/http"
	"strings"
)

// AuthScope restricts which request hosts receive credentials.
type AuthScope struct {
	// Any matches every host and port.
	Any bool
	// Host is matched case-insensitively against the request host name.
	// Ports are not compared.
	Host string
}

// AnyScope matches every host.
var AnyScope = AuthScope{Any: true}

// HostScope matches only host, on any port. A port in host is ignored.
func HostScope(host string) AuthScope {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return AuthScope{Host: host}
}

// Matches reports whether credentials in this scope apply to host.
func (s AuthScope) Matches(host string) bool {
	if s.Any {
		return true
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return s.Host != "" && strings.EqualFold(s.Host, host)
}

// AuthConfig holds basic credentials and the scope they are valid for.
type AuthConfig struct {
	Username string
	Password string
	Scope    AuthScope
}

// BasicAuth creates basic credentials valid for any host.
func BasicAuth(username, password string) *AuthConfig {
	return &AuthConfig{Username: username, Password: password, Scope: AnyScope}
}

// Scoped returns a copy of the credentials restricted to scope.
func (a *AuthConfig) Scoped(scope AuthScope) *AuthConfig {
	c := *a
	c.Scope = scope
	return &c
}

// apply sets the Authorization header when the request host is in scope.
func (a *AuthConfig) apply(req *http.Request) bool {
	if a == nil || !a.Scope.Matches(req.URL.Host) {
		return false
	}
	req.SetBasicAuth(a.Username, a.Password)
	return true
}
