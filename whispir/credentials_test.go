package whispir

import (
	"testing"
)

func TestCredentialsFor(t *testing.T) {
	prod := credentialsFor(snapshot{username: "u", password: "p"})
	if prod.Username != "u" || prod.Password != "p" {
		t.Errorf("unexpected credentials %+v", prod)
	}
	if prod.Scope.Any {
		t.Error("production credentials must be host scoped")
	}
	if !prod.Scope.Matches("api.whispir.com:443") {
		t.Error("expected production host on any port to match")
	}
	if prod.Scope.Matches("foo.whispir.net") {
		t.Error("production credentials matched another host")
	}

	debug := credentialsFor(snapshot{username: "u", password: "p", debugHost: "foo.whispir.net:8080"})
	if !debug.Scope.Any {
		t.Error("debug credentials must be unscoped")
	}
	if !debug.Scope.Matches("anything.example.com:9999") {
		t.Error("expected debug credentials to match any host")
	}
}

func TestSnapshot_Host(t *testing.T) {
	if got := (snapshot{}).host(); got != ProductionHost {
		t.Errorf("got %q", got)
	}
	s := snapshot{apiKey: "K1", debugHost: "app.whispir.net"}
	if got := s.target("", ResourceMessages).URL(); got != "http://app.whispir.net/messages?apikey=K1" {
		t.Errorf("got %q", got)
	}
}
