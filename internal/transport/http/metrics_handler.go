package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler serves the Prometheus scrape endpoint backed by the
// default registry, where the OpenTelemetry exporter publishes.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
