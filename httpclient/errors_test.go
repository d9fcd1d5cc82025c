package httpclient

import (
	"fmt"
	"net/http"
	"testing"
)

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		status    int
		wantNil   bool
		wantCode  ErrorCode
		retryable bool
	}{
		{200, true, 0, false},
		{202, true, 0, false},
		{401, false, ErrCodeAuth, false},
		{403, false, ErrCodeAuth, false},
		{404, false, ErrCodeNotFound, false},
		{415, false, ErrCodeClient, false},
		{429, false, ErrCodeRateLimit, true},
		{500, false, ErrCodeServer, true},
		{503, false, ErrCodeServer, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			e := ClassifyStatusCode(tt.status, nil)
			if tt.wantNil {
				if e != nil {
					t.Fatalf("expected nil, got %v", e)
				}
				return
			}
			if e == nil {
				t.Fatal("expected error")
			}
			if e.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", e.Code, tt.wantCode)
			}
			if e.Retryable != tt.retryable {
				t.Errorf("retryable = %v, want %v", e.Retryable, tt.retryable)
			}
		})
	}
}

func TestIsOverQPSResponse(t *testing.T) {
	tests := []struct {
		name   string
		status int
		values []string
		want   bool
	}{
		{"over qps", 403, []string{OverQPSErrorCode}, true},
		{"second value", 403, []string{"ERR_403_OTHER", OverQPSErrorCode}, true},
		{"other code", 403, []string{"ERR_403_DEVELOPER_INACTIVE"}, false},
		{"no header", 403, nil, false},
		{"wrong status", 429, []string{OverQPSErrorCode}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for _, v := range tt.values {
				h.Add(HeaderErrorCode, v)
			}
			if got := isOverQPSResponse(tt.status, h); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	qps := fmt.Errorf("wrapped: %w", NewOverQPSError(nil))
	if !IsOverQPS(qps) || !IsRetryable(qps) {
		t.Error("expected wrapped over-QPS error to be detected")
	}
	if IsAuth(qps) {
		t.Error("over-QPS is not an auth error")
	}
	if !IsNotFound(ClassifyStatusCode(404, nil)) {
		t.Error("expected not found")
	}
	if !IsServerError(ClassifyStatusCode(502, nil)) {
		t.Error("expected server error")
	}
	if IsOverQPS(fmt.Errorf("plain")) {
		t.Error("plain error is not over-QPS")
	}
}

func TestError_Message(t *testing.T) {
	e := NewOverQPSError(nil)
	want := "httpclient: over_qps (HTTP 403): ERR_403_DEVELOPER_OVER_QPS"
	if e.Error() != want {
		t.Errorf("got %q, want %q", e.Error(), want)
	}
}
