package whispir

import (
	"github.com/kbukum/whispir/errors"
)

// Resource is an API resource kind.
type Resource string

const (
	ResourceMessages   Resource = "messages"
	ResourceWorkspaces Resource = "workspaces"
)

// Versioned media types, sent as both Content-Type and Accept.
const (
	MessageMediaType   = "application/vnd.whispir.message-v1+json"
	WorkspaceMediaType = "application/vnd.whispir.workspace-v1+json"
)

// UnsupportedResourceMessage is the configuration error text for an unknown resource kind.
const UnsupportedResourceMessage = "Resource specified was not found. Expecting Workspaces or Messages"

// Headers is the content negotiation pair for a resource.
type Headers struct {
	ContentType string
	Accept      string
}

// Map returns the headers keyed by canonical header name.
func (h Headers) Map() map[string]string {
	return map[string]string{
		"Content-Type": h.ContentType,
		"Accept":       h.Accept,
	}
}

// HeadersFor returns the header pair for resource. Any resource other than
// messages or workspaces is a configuration error.
func HeadersFor(resource Resource) (Headers, error) {
	var mediaType string
	switch resource {
	case ResourceMessages:
		mediaType = MessageMediaType
	case ResourceWorkspaces:
		mediaType = WorkspaceMediaType
	default:
		return Headers{}, errors.Configuration(UnsupportedResourceMessage).
			WithDetail("resource", string(resource))
	}
	return Headers{ContentType: mediaType, Accept: mediaType}, nil
}
