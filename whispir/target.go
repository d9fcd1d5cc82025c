package whispir

import (
	"strings"
)

// ProductionHost is the API host used outside debug mode.
const ProductionHost = "api.whispir.com"

// Target is the address of one request.
type Target struct {
	Scheme      string
	Host        string
	WorkspaceID string
	Resource    Resource
	APIKey      string
}

// SchemeFor returns "http" when host contains "app", otherwise "https".
func SchemeFor(host string) string {
	if strings.Contains(host, "app") {
		return "http"
	}
	return "https"
}

// NewTarget addresses resource on host, deriving the scheme from the host.
func NewTarget(host, apiKey, workspaceID string, resource Resource) Target {
	return Target{
		Scheme:      SchemeFor(host),
		Host:        host,
		WorkspaceID: workspaceID,
		Resource:    resource,
		APIKey:      apiKey,
	}
}

// URL renders the target. Segments and the key are inserted verbatim.
func (t Target) URL() string {
	var b strings.Builder
	b.WriteString(t.Scheme)
	b.WriteString("://")
	b.WriteString(t.Host)
	if t.WorkspaceID != "" {
		b.WriteString("/workspaces/")
		b.WriteString(t.WorkspaceID)
	}
	b.WriteByte('/')
	b.WriteString(string(t.Resource))
	b.WriteString("?apikey=")
	b.WriteString(t.APIKey)
	return b.String()
}

// BuildURL is shorthand for NewTarget(...).URL().
func BuildURL(host, apiKey, workspaceID string, resource Resource) string {
	return NewTarget(host, apiKey, workspaceID, resource).URL()
}
