// Package resilience provides the retry and throttling primitives used by the
// HTTP adapter.
//
//   - Retry: re-runs an operation after a context-aware delay, returning the
//     final attempt's result even when it failed.
//   - RateLimiter: token bucket that paces outgoing requests.
//
// Example: one retry after a fixed one second delay.
//
//	cfg := resilience.FixedDelayRetryConfig(2, time.Second)
//	cfg.RetryIf = isOverQPS
//	resp, err := resilience.Retry(ctx, cfg, send)
package resilience
