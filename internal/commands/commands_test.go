package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kbukum/whispir/logger"
	"github.com/kbukum/whispir/testutil"
	"github.com/kbukum/whispir/whispir"
	"github.com/kbukum/whispir/whispirtest"
)

func writeConfig(t *testing.T, srv *whispirtest.Server) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "whispir.yml")
	data := fmt.Sprintf(`name: whispir
environment: staging
logging:
  level: error
  format: json
  output: stderr
whispir:
  api_key: K1
  username: user
  password: pass
  debug_host: %s
  tls:
    skip_verify: true
`, srv.Host())
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func startServer(t *testing.T, opts ...whispirtest.Option) *whispirtest.Server {
	t.Helper()
	srv := whispirtest.NewServer(opts...)
	testutil.T(t).Setup(srv)
	return srv
}

func TestSendCommand(t *testing.T) {
	srv := startServer(t, whispirtest.WithCredentials("user", "pass"))
	cfg := writeConfig(t, srv)

	out, err := run(t, "send", "--config", cfg, "--env-file", filepath.Join(t.TempDir(), ".env"),
		"--workspace", "WS1", "--to", "61400000000", "--subject", "Hi", "--body", "There")
	if err != nil {
		t.Fatalf("send: %v (output %q)", err, out)
	}
	if !strings.Contains(out, "status: 202") {
		t.Errorf("unexpected output %q", out)
	}

	r, ok := srv.LastRequest()
	if !ok {
		t.Fatal("no request recorded")
	}
	if r.Path != "/workspaces/WS1/messages" || r.APIKey != "K1" {
		t.Errorf("unexpected request %s?%s", r.Path, r.RawQuery)
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(r.Body), &body); err != nil {
		t.Fatalf("body: %v", err)
	}
	if body["to"] != "61400000000" || body["body"] != "There" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestSendCommand_Rejected(t *testing.T) {
	srv := startServer(t)
	srv.SetMessageStatus(422)
	cfg := writeConfig(t, srv)

	out, err := run(t, "send", "--config", cfg, "--to", "61400000000", "--body", "x")
	if err == nil || !strings.Contains(err.Error(), "422") {
		t.Errorf("expected rejection error, got %v", err)
	}
	if !strings.Contains(out, "status: 422") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestSendCommand_MissingCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "whispir.yml")
	if err := os.WriteFile(path, []byte("whispir:\n  api_key: K1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WHISPIR_USERNAME", "")
	t.Setenv("WHISPIR_PASSWORD", "")

	_, err := run(t, "send", "--config", path, "--to", "1", "--body", "x")
	if err == nil || !strings.Contains(err.Error(), "Authentication failed") {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestWorkspacesCommand(t *testing.T) {
	srv := startServer(t, whispirtest.WithWorkspaces(
		whispirtest.Workspace{ID: "B2", ProjectName: "Beta"},
		whispirtest.Workspace{ID: "A1", ProjectName: "Alpha"},
	))
	cfg := writeConfig(t, srv)

	out, err := run(t, "workspaces", "--config", cfg)
	if err != nil {
		t.Fatalf("workspaces: %v", err)
	}
	if out != "A1\tAlpha\nB2\tBeta\n" {
		t.Errorf("unexpected output %q", out)
	}

	out, err = run(t, "workspaces", "--config", cfg, "--json")
	if err != nil {
		t.Fatalf("workspaces --json: %v", err)
	}
	var ws map[string]string
	if err := json.Unmarshal([]byte(out), &ws); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if ws["A1"] != "Alpha" || ws["B2"] != "Beta" {
		t.Errorf("unexpected workspaces %v", ws)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version", "--json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var info map[string]any
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if info["version"] == "" {
		t.Error("expected a version")
	}
}

func TestLoadAppConfig_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "whispir.yml")
	if err := os.WriteFile(path, []byte("whispir:\n  api_key: K1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadAppConfig(path, filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if cfg.Name != "whispir" || cfg.Environment != "development" || cfg.Logging.Level != "debug" {
		t.Errorf("unexpected defaults %+v", cfg.ServiceConfig)
	}
	if cfg.Tracing.Endpoint != "" || cfg.Metrics.Endpoint != "" {
		t.Error("telemetry should stay off without an endpoint")
	}
}

func TestStart_RegistersClientLogger(t *testing.T) {
	srv := startServer(t)
	t.Cleanup(func() { logger.Register(serviceName, logger.GetGlobalLogger().WithComponent(serviceName)) })

	tests := []struct {
		name    string
		verbose bool
		want    zerolog.Level
	}{
		{"configured level", false, zerolog.ErrorLevel},
		{"verbose", true, zerolog.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &AppConfig{
				Whispir: whispir.Config{
					APIKey: "K1", Username: "user", Password: "pass",
					DebugHost: srv.Host(),
					TLS:       srv.ClientTLS(),
				},
				Verbose: tt.verbose,
			}
			cfg.Logging = logger.Config{Level: "error", Format: "json"}
			cfg.ApplyDefaults()

			app, err := Start(context.Background(), cfg)
			if err != nil {
				t.Fatalf("Start: %v", err)
			}
			defer func() { _ = app.Stop(context.Background()) }()

			if got := logger.Get(serviceName).GetLogger().GetLevel(); got != tt.want {
				t.Errorf("client logger level = %s, want %s", got, tt.want)
			}
			if app.Client() == nil {
				t.Error("expected a started client")
			}
		})
	}
}
