package testutil

import (
	"context"
	"testing"

	"github.com/kbukum/whispir/component"
)

type countingComponent struct {
	starts, stops, resets int
}

func (c *countingComponent) Name() string { return "counting" }
func (c *countingComponent) Start(context.Context) error { c.starts++; return nil }
func (c *countingComponent) Stop(context.Context) error { c.stops++; return nil }
func (c *countingComponent) Reset(context.Context) error { c.resets++; return nil }
func (c *countingComponent) Health(context.Context) component.Health {
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

func TestTHelper_SetupStopsOnCleanup(t *testing.T) {
	c := &countingComponent{}

	t.Run("inner", func(t *testing.T) {
		T(t).Setup(c)
		T(t).Reset(c)
		if c.starts != 1 || c.resets != 1 {
			t.Errorf("starts=%d resets=%d", c.starts, c.resets)
		}
	})

	if c.stops != 1 {
		t.Errorf("expected stop after subtest cleanup, got %d", c.stops)
	}
}
