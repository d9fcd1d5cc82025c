package whispir

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/whispir/component"
)

// Component manages a Client's lifecycle: Start builds it, Stop closes its
// transport.
type Component struct {
	cfg    Config
	opts   []Option
	client *Client
	mu     sync.RWMutex
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates a lifecycle wrapper for a client built from cfg.
func NewComponent(cfg Config, opts ...Option) *Component {
	return &Component{cfg: cfg, opts: opts}
}

// Client returns the running client, or nil before Start.
func (c *Component) Client() *Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}

// Name returns the component name.
func (c *Component) Name() string { return "whispir" }

// Start validates the configuration and creates the client.
func (c *Component) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return fmt.Errorf("whispir: component already started")
	}
	client, err := New(c.cfg, c.opts...)
	if err != nil {
		return err
	}
	c.client = client
	return nil
}

// Stop closes the client. Stopping a stopped component is a no-op.
func (c *Component) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Close(ctx)
	c.client = nil
	return err
}

// Health reports healthy once the client is started.
func (c *Component) Health(_ context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.client == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe reports the target host and proxy.
func (c *Component) Describe() component.Description {
	host := ProductionHost
	if c.cfg.DebugHost != "" {
		host = c.cfg.DebugHost + " (debug)"
	}
	details := host
	if c.cfg.Proxy != nil {
		details += fmt.Sprintf(" via %s", c.cfg.Proxy.URL())
	}
	return component.Description{Name: "Whispir API", Type: "client", Details: details}
}
