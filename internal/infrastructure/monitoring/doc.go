/*
Package monitoring provides Prometheus metrics for the shell server.

# Overview

Every Metrics value owns a private registry holding Go runtime and process
collectors plus the server's own metrics:

- HTTP requests per route template (count, latency, response size)
- Shell intents by type and outcome (applied, noop, error)
- Documents folder exports
- WebSocket connections and messages
- Session gauges read from the shell at scrape time
- Uptime

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	_ = metrics.ObserveShell(func() monitoring.ShellGauges { ... })
*/
package monitoring
