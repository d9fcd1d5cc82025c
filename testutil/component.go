package testutil

import (
	"context"

	"github.com/kbukum/whispir/component"
)

// TestComponent is a component that can be returned to its initial state
// between test cases.
type TestComponent interface {
	component.Component

	// Reset clears recorded state and scripted behavior.
	Reset(ctx context.Context) error
}
