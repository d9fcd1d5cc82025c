package whispirtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	headerErrorCode  = "X-Mashery-Error-Code"
	overQPSErrorCode = "ERR_403_DEVELOPER_OVER_QPS"
)

func (s *Server) record(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	user, pass, ok := c.Request.BasicAuth()

	req := RecordedRequest{
		Method:   c.Request.Method,
		Path:     c.Request.URL.Path,
		RawQuery: c.Request.URL.RawQuery,
		APIKey:   c.Query("apikey"),
		Header:   c.Request.Header.Clone(),
		Username: user,
		Password: pass,
		HasAuth:  ok,
		Body:     string(body),
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	hook := s.onRequest
	s.mu.Unlock()

	if hook != nil {
		hook(req)
	}
	c.Next()
}

func (s *Server) rejectOverQPS(c *gin.Context) {
	s.mu.Lock()
	reject := s.overQPS > 0
	if reject {
		s.overQPS--
	}
	s.mu.Unlock()

	if reject {
		c.Header(headerErrorCode, overQPSErrorCode)
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"errorSummary": "Developer Over Qps",
		})
		return
	}
	c.Next()
}

func (s *Server) authenticate(c *gin.Context) {
	if c.Query("apikey") == "" {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"errorSummary": "Developer Inactive"})
		return
	}
	if s.username == "" {
		c.Next()
		return
	}
	user, pass, ok := c.Request.BasicAuth()
	if !ok || user != s.username || pass != s.password {
		c.Header("WWW-Authenticate", `Basic realm="Whispir"`)
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.Next()
}

func (s *Server) postMessage(c *gin.Context) {
	if c.GetHeader("Content-Type") != messageMediaType {
		c.AbortWithStatus(http.StatusUnsupportedMediaType)
		return
	}

	s.mu.Lock()
	status := s.messageStatus
	s.mu.Unlock()

	if status == http.StatusAccepted {
		c.Header("Location", "https://"+c.Request.Host+c.Request.URL.Path+"/1")
	}
	c.Status(status)
}

type workspaceJSON struct {
	ID          string     `json:"id"`
	ProjectName string     `json:"projectName"`
	Status      string     `json:"status"`
	Link        []linkJSON `json:"link"`
}

type linkJSON struct {
	URI    string `json:"uri"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

func (s *Server) getWorkspaces(c *gin.Context) {
	if c.GetHeader("Accept") != workspaceMediaType {
		c.AbortWithStatus(http.StatusNotAcceptable)
		return
	}

	s.mu.Lock()
	ws := append([]Workspace(nil), s.workspaces...)
	s.mu.Unlock()

	out := make([]workspaceJSON, 0, len(ws))
	for _, w := range ws {
		out = append(out, workspaceJSON{
			ID:          w.ID,
			ProjectName: w.ProjectName,
			Status:      "A",
			Link: []linkJSON{{
				URI:    "https://" + c.Request.Host + "/workspaces/" + w.ID + "?apikey=" + c.Query("apikey"),
				Rel:    "self",
				Method: http.MethodGet,
			}},
		})
	}

	body, err := json.Marshal(gin.H{
		"workspaces": out,
		"status":     fmt.Sprintf("1 to %d of %d", len(out), len(out)),
	})
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, workspaceMediaType, body)
}
