// Package whispirtest runs a fake Whispir API for tests.
//
// Server is a gin engine behind an httptest TLS server. It records every
// request, serves the messages and workspaces resources (globally and under
// /workspaces/{id}), and can be scripted to reject requests with the
// over-QPS 403:
//
//	srv := whispirtest.NewServer(whispirtest.WithCredentials("user", "pass"))
//	testutil.T(t).Setup(srv)
//
//	cfg := whispir.Config{
//	    APIKey: "K1", Username: "user", Password: "pass",
//	    DebugHost: srv.Host(),
//	    TLS:       srv.ClientTLS(),
//	}
//
//	srv.OverQPS(1)
package whispirtest
