package whispir

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/kbukum/whispir/errors"
	"github.com/kbukum/whispir/httpclient"
)

type workspaceList struct {
	Workspaces []workspaceEntry `json:"workspaces"`
}

type workspaceEntry struct {
	ID          string `json:"id"`
	ProjectName string `json:"projectName"`
	Links       []struct {
		URI string `json:"uri"`
	} `json:"link"`
}

// id falls back to the workspace segment of the self link when the API
// omits the id field.
func (w workspaceEntry) id() string {
	if w.ID != "" {
		return w.ID
	}
	for _, l := range w.Links {
		_, rest, ok := strings.Cut(l.URI, "/workspaces/")
		if !ok {
			continue
		}
		rest, _, _ = strings.Cut(rest, "?")
		rest, _, _ = strings.Cut(rest, "/")
		if rest != "" {
			return rest
		}
	}
	return ""
}

// GetWorkspaces lists the workspaces visible to the credentials as
// id to project name.
func (c *Client) GetWorkspaces(ctx context.Context) (map[string]string, error) {
	host := c.snapshot().host()

	resp, err := c.Get(ctx, ResourceWorkspaces, "")
	if err != nil {
		return nil, err
	}
	if !resp.Obtained() {
		return nil, errors.ConnectionFailed(host, resp.TransportErr)
	}
	if err := statusError(resp); err != nil {
		return nil, err
	}

	var list workspaceList
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		return nil, errors.New(errors.ErrCodeExternalService, "The Whispir API returned an unreadable workspace list.").
			WithCause(err)
	}

	workspaces := make(map[string]string, len(list.Workspaces))
	for _, w := range list.Workspaces {
		if id := w.id(); id != "" {
			workspaces[id] = w.ProjectName
		}
	}
	return workspaces, nil
}

// statusError maps a non-2xx response onto an AppError. Returns nil for 2xx.
func statusError(resp *httpclient.Response) *errors.AppError {
	statusErr := httpclient.ClassifyStatusCode(resp.StatusCode, resp.Body)
	if statusErr == nil {
		return nil
	}

	var e *errors.AppError
	switch {
	case httpclient.IsAuth(statusErr) && statusErr.StatusCode == http.StatusUnauthorized:
		e = errors.New(errors.ErrCodeUnauthorized, "Whispir API Authentication failed. API Key, Username or Password were provided but were not correct.")
	case httpclient.IsAuth(statusErr):
		e = errors.New(errors.ErrCodeForbidden, "The API key is not permitted to perform this request.")
	case httpclient.IsNotFound(statusErr):
		e = errors.New(errors.ErrCodeNotFound, "The requested resource was not found.")
	case statusErr.Code == httpclient.ErrCodeRateLimit:
		e = errors.New(errors.ErrCodeRateLimited, "Too many requests.")
	case httpclient.IsServerError(statusErr):
		e = errors.New(errors.ErrCodeExternalService, fmt.Sprintf("The Whispir API returned HTTP %d.", statusErr.StatusCode))
	default:
		e = errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("The Whispir API rejected the request with HTTP %d.", statusErr.StatusCode))
	}
	e.StatusCode = statusErr.StatusCode
	e.Retryable = httpclient.IsRetryable(statusErr)
	if len(resp.Body) > 0 {
		e.WithDetail("body", string(resp.Body))
	}
	return e.WithCause(statusErr)
}
