package interceptors

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the beans passing through the chain, per bean name.
type Metrics struct {
	intercepted *prometheus.CounterVec
}

// NewMetrics registers the counter bring_beans_intercepted_total{bean} with reg.
// A nil reg means prometheus.DefaultRegisterer. Registering twice on the same
// registerer reuses the existing counter.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		intercepted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bring_beans_intercepted_total",
				Help: "Total number of beans passed through the interceptor chain",
			},
			[]string{"bean"},
		),
	}

	if err := reg.Register(m.intercepted); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				m.intercepted = existing
				return m, nil
			}
		}
		return nil, fmt.Errorf("interceptors: register metrics: %w", err)
	}
	return m, nil
}

// BeforeInit implements di.Interceptor.
func (m *Metrics) BeforeInit(bean any, name string) any {
	m.intercepted.WithLabelValues(name).Inc()
	return bean
}
