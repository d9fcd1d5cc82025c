package whispir

import (
	"github.com/kbukum/whispir/httpclient"
)

// snapshot is the client state read once at the start of a request.
type snapshot struct {
	apiKey    string
	username  string
	password  string
	debugHost string
}

func (s snapshot) debug() bool {
	return s.debugHost != ""
}

func (s snapshot) host() string {
	if s.debug() {
		return s.debugHost
	}
	return ProductionHost
}

func (s snapshot) target(workspaceID string, resource Resource) Target {
	return NewTarget(s.host(), s.apiKey, workspaceID, resource)
}

// credentialsFor scopes the basic credentials: any host in debug mode,
// otherwise only the resolved host on any port.
func credentialsFor(s snapshot) *httpclient.AuthConfig {
	auth := httpclient.BasicAuth(s.username, s.password)
	if s.debug() {
		return auth.Scoped(httpclient.AnyScope)
	}
	return auth.Scoped(httpclient.HostScope(s.host()))
}
