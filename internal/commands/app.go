package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/kbukum/whispir/component"
	"github.com/kbukum/whispir/config"
	"github.com/kbukum/whispir/logger"
	"github.com/kbukum/whispir/observability"
	"github.com/kbukum/whispir/version"
	"github.com/kbukum/whispir/whispir"
)

const serviceName = "whispir"

// AppConfig is the configuration file layout of the CLI.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Whispir whispir.Config             `yaml:"whispir" mapstructure:"whispir"`
	Tracing observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics observability.MeterConfig  `yaml:"metrics" mapstructure:"metrics"`

	// Verbose logs client requests at debug level regardless of Logging.Level.
	Verbose bool `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills unset service fields. Tracing and metrics stay off
// unless an endpoint is configured.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
}

// Validate checks the service section. The client section is validated when
// the client starts.
func (c *AppConfig) Validate() error {
	return c.ServiceConfig.Validate()
}

// LoadAppConfig reads, defaults and validates the CLI configuration.
func LoadAppConfig(configFile, envFile string) (*AppConfig, error) {
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}

	cfg := &AppConfig{}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// App holds the running client and the telemetry providers started for it.
type App struct {
	cfg      *AppConfig
	registry *component.Registry
	client   *whispir.Component
	shutdown []func(context.Context) error
}

// Start initializes logging and telemetry, then starts the client.
func Start(ctx context.Context, cfg *AppConfig) (*App, error) {
	logger.Init(cfg.Logging)
	registerClientLogger(cfg)

	app := &App{cfg: cfg, registry: component.NewRegistry()}

	var opts []whispir.Option
	if cfg.Tracing.Endpoint != "" {
		tc := cfg.Tracing
		app.fillResource(&tc.ServiceName, &tc.ServiceVersion, &tc.Environment)
		tp, err := observability.InitTracer(ctx, tc)
		if err != nil {
			return nil, fmt.Errorf("init tracer: %w", err)
		}
		app.shutdown = append(app.shutdown, tp.Shutdown)
	}
	if cfg.Metrics.Endpoint != "" {
		mc := cfg.Metrics
		app.fillResource(&mc.ServiceName, &mc.ServiceVersion, &mc.Environment)
		mp, err := observability.InitMeter(ctx, mc)
		if err != nil {
			_ = app.Stop(ctx)
			return nil, fmt.Errorf("init meter: %w", err)
		}
		app.shutdown = append(app.shutdown, mp.Shutdown)

		metrics, err := observability.NewClientMetrics(mp.Meter(serviceName))
		if err != nil {
			_ = app.Stop(ctx)
			return nil, fmt.Errorf("create client metrics: %w", err)
		}
		opts = append(opts, whispir.WithMetrics(metrics))
	}

	app.client = whispir.NewComponent(cfg.Whispir, opts...)
	if err := app.registry.Register(app.client); err != nil {
		_ = app.Stop(ctx)
		return nil, err
	}
	if err := app.registry.StartAll(ctx); err != nil {
		_ = app.Stop(ctx)
		return nil, err
	}

	d := app.client.Describe()
	logger.Debug("client ready", logger.Fields("target", d.Details))
	return app, nil
}

// registerClientLogger installs the logger the client and its transport
// look up by name.
func registerClientLogger(cfg *AppConfig) {
	lc := cfg.Logging
	if cfg.Verbose {
		lc.Level = "debug"
	}
	logger.Register(serviceName, logger.New(&lc, cfg.Name).WithComponent(serviceName))
}

func (a *App) fillResource(name, ver, env *string) {
	if *name == "" {
		*name = a.cfg.Name
	}
	if *ver == "" {
		*ver = version.Get().Version
	}
	if *env == "" {
		*env = a.cfg.Environment
	}
}

// Client returns the started client.
func (a *App) Client() *whispir.Client {
	return a.client.Client()
}

// Stop stops the client, then flushes telemetry.
func (a *App) Stop(ctx context.Context) error {
	var errs []error
	if err := a.registry.StopAll(ctx); err != nil {
		errs = append(errs, err)
	}
	for i := len(a.shutdown) - 1; i >= 0; i-- {
		if err := a.shutdown[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.shutdown = nil
	return errors.Join(errs...)
}
