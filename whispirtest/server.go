package whispirtest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/whispir/component"
	"github.com/kbukum/whispir/httpclient"
	"github.com/kbukum/whispir/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	messageMediaType   = "application/vnd.whispir.message-v1+json"
	workspaceMediaType = "application/vnd.whispir.workspace-v1+json"
)

// RecordedRequest is one request as the server saw it.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	APIKey   string
	Header   http.Header
	Username string
	Password string
	HasAuth  bool
	Body     string
}

// Workspace is a workspace served by GET /workspaces.
type Workspace struct {
	ID          string
	ProjectName string
}

// Option configures a Server.
type Option func(*Server)

// WithCredentials makes the server answer 401 unless basic credentials match.
func WithCredentials(username, password string) Option {
	return func(s *Server) {
		s.username = username
		s.password = password
	}
}

// WithWorkspaces sets the initial workspace list.
func WithWorkspaces(ws ...Workspace) Option {
	return func(s *Server) { s.initialWorkspaces = ws }
}

// Server is a fake Whispir API. It implements component.Component.
type Server struct {
	engine *gin.Engine
	ts     *httptest.Server

	username string
	password string

	initialWorkspaces []Workspace

	mu            sync.Mutex
	requests      []RecordedRequest
	overQPS       int
	messageStatus int
	workspaces    []Workspace
	onRequest     func(RecordedRequest)
}

var (
	_ component.Component    = (*Server)(nil)
	_ testutil.TestComponent = (*Server)(nil)
)

// NewServer creates a stopped fake API.
func NewServer(opts ...Option) *Server {
	s := &Server{}
	for _, opt := range opts {
		opt(s)
	}
	s.resetLocked()

	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), s.record, s.rejectOverQPS, s.authenticate)
	s.routes(s.engine.Group("/"))
	s.routes(s.engine.Group("/workspaces/:workspace"))
	return s
}

func (s *Server) routes(g *gin.RouterGroup) {
	g.POST("/messages", s.postMessage)
	g.GET("/workspaces", s.getWorkspaces)
}

// Host returns the host:port to use as a debug host. Empty before Start.
func (s *Server) Host() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ts == nil {
		return ""
	}
	return strings.TrimPrefix(s.ts.URL, "https://")
}

// ClientTLS returns the TLS settings a client needs to trust the server.
func (s *Server) ClientTLS() *httpclient.TLSConfig {
	return &httpclient.TLSConfig{SkipVerify: true}
}

// OverQPS makes the next n requests fail with the over-QPS 403.
func (s *Server) OverQPS(n int) {
	s.mu.Lock()
	s.overQPS = n
	s.mu.Unlock()
}

// SetMessageStatus sets the status answered to message posts. Default 202.
func (s *Server) SetMessageStatus(code int) {
	s.mu.Lock()
	s.messageStatus = code
	s.mu.Unlock()
}

// SetWorkspaces replaces the workspace list.
func (s *Server) SetWorkspaces(ws ...Workspace) {
	s.mu.Lock()
	s.workspaces = ws
	s.mu.Unlock()
}

// OnRequest registers fn to run inside the handler for every request,
// before a response is written.
func (s *Server) OnRequest(fn func(RecordedRequest)) {
	s.mu.Lock()
	s.onRequest = fn
	s.mu.Unlock()
}

// Requests returns a copy of the recorded requests.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// LastRequest returns the most recent request, or false if none.
func (s *Server) LastRequest() (RecordedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// --- component.Component ---

func (s *Server) Name() string { return "whispir-fake-api" }

func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ts != nil {
		return fmt.Errorf("whispirtest: server already started")
	}
	s.ts = httptest.NewTLSServer(s.engine)
	return nil
}

func (s *Server) Stop(_ context.Context) error {
	s.mu.Lock()
	ts := s.ts
	s.ts = nil
	s.mu.Unlock()

	if ts != nil {
		ts.Close()
	}
	return nil
}

func (s *Server) Health(_ context.Context) component.Health {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ts == nil {
		return component.Health{Name: s.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: s.Name(), Status: component.StatusHealthy}
}

// Reset clears recorded requests and scripted behavior.
func (s *Server) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	return nil
}

func (s *Server) resetLocked() {
	s.requests = nil
	s.overQPS = 0
	s.messageStatus = http.StatusAccepted
	s.workspaces = append([]Workspace(nil), s.initialWorkspaces...)
	s.onRequest = nil
}
