// Package metrics exposes the effective pipeline settings as Prometheus metrics.
package metrics
