// Package version reports the build version of the whispir module, as set
// with -ldflags or read from the embedded VCS build settings:
//
//	go build -ldflags "-X github.com/kbukum/whispir/version.Version=1.2.0" ./cmd/whispir
//
// The version is sent to the API in the User-Agent header.
package version
