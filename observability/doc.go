// Package observability wires OpenTelemetry tracing and metrics for the
// Whispir client.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("whispir"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("whispir"))
//	defer mp.Shutdown(ctx)
//
//	m, err := observability.NewClientMetrics(observability.Meter("whispir"))
//	adapter, err := httpclient.New(cfg, httpclient.WithMetrics(m))
//
// Without InitTracer or InitMeter the global no-op providers are used, so
// spans and instruments cost nothing.
package observability
