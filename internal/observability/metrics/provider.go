package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Provider bundles the OTel meter provider with the prometheus registry
// that backs the /metrics endpoint.
type Provider struct {
	Meter    metric.MeterProvider
	Registry *prometheus.Registry
}

// NewProvider wires an OTel meter provider into a dedicated prometheus
// registry. When disabled, a noop meter provider is returned and the
// registry stays usable for the raw prometheus instruments.
func NewProvider(enabled bool) (*Provider, error) {
	registry := prometheus.NewRegistry()
	if !enabled {
		return &Provider{Meter: noopmetric.NewMeterProvider(), Registry: registry}, nil
	}

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, err
	}
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	return &Provider{Meter: meter, Registry: registry}, nil
}

// Handler serves the prometheus scrape endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{})
}
