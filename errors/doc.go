// Package errors provides the typed error values returned by the Whispir
// client. Every error carries a machine-readable code, a retryable flag and,
// when one was received, the upstream HTTP status.
package errors
