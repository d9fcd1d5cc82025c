package httpclient

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method. Empty means GET.
	Method string
	// URL is the absolute request URL.
	URL string
	// Headers are request-specific headers, applied over the adapter defaults.
	Headers map[string]string
	// Body accepts []byte, string, or any value that will be JSON-encoded.
	// The body is re-read on retry, so io.Reader is not accepted.
	Body any
	// Auth attaches basic credentials when the request host is in scope.
	Auth *AuthConfig
}

// Response is the result of an exchange.
type Response struct {
	// StatusCode is the HTTP status, or 0 when no response was obtained.
	StatusCode int
	// Header holds every response header, including repeated ones.
	Header http.Header
	// Body is the raw response body.
	Body []byte
	// Attempts is the number of exchanges performed, 1 or 2.
	Attempts int
	// TransportErr is the cause when no response (or no body) was obtained.
	TransportErr error
}

// Obtained reports whether the server produced a response.
func (r *Response) Obtained() bool {
	return r != nil && r.StatusCode != 0
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// encodeBody converts a body value into bytes and a fallback content type.
func encodeBody(body any) ([]byte, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return v, "", nil
	case string:
		return []byte(v), "text/plain", nil
	case io.Reader:
		return nil, "", errReaderBody
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return data, "application/json", nil
	}
}

func bodyReader(data []byte) io.Reader {
	if data == nil {
		return nil
	}
	return bytes.NewReader(data)
}

// redactURL masks the values of the given query parameters without touching
// the rest of the URL text.
func redactURL(raw string, params []string) string {
	q := strings.IndexByte(raw, '?')
	if q < 0 || len(params) == 0 {
		return raw
	}
	pairs := strings.Split(raw[q+1:], "&")
	for i, p := range pairs {
		name, _, _ := strings.Cut(p, "=")
		for _, r := range params {
			if strings.EqualFold(name, r) {
				pairs[i] = name + "=REDACTED"
				break
			}
		}
	}
	return raw[:q+1] + strings.Join(pairs, "&")
}
