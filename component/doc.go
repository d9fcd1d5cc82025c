// Package component defines the lifecycle contract shared by the Whispir
// client and its test server.
//
// A Registry starts components in registration order and stops them in
// reverse, so the CLI can bring up the client (and tests the fake API)
// with one call and release pooled connections on exit.
package component
