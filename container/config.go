package container

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sghaida/bring/config"
	"github.com/sghaida/bring/di"
	"github.com/sghaida/bring/interceptors"
	"github.com/sghaida/bring/logging"
)

// NewFromConfig builds a container from cfg: the logger, the built-in interceptors
// and the package to scan all come from the configuration. opts are applied after
// the configured ones, so WithLogger overrides the configured logger and
// WithInterceptors runs after the built-in interceptors.
func NewFromConfig(cfg *config.Config, source Source, opts ...Option) (*Container, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("container: invalid configuration: %w", err)
	}

	s := settings{}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}

	logger := s.logger
	if logger == nil {
		var err error
		logger, err = logging.NewLogger(&cfg.Logging)
		if err != nil {
			return nil, fmt.Errorf("container: logger: %w", err)
		}
	}

	builtin, err := configured(cfg.Interceptors, s, logger)
	if err != nil {
		return nil, err
	}

	return New(source, cfg.Scan.Package,
		WithLogger(logger),
		WithInterceptors(builtin...),
		WithInterceptors(s.interceptors...),
		WithFieldSource(s.fieldSource),
	)
}

// configured returns the enabled built-in interceptors in the order veto, lifecycle,
// logging, metrics.
func configured(ic config.InterceptorsConfig, s settings, logger *zap.Logger) ([]di.Interceptor, error) {
	var out []di.Interceptor
	if len(ic.Veto) > 0 {
		out = append(out, interceptors.Veto(ic.Veto...))
	}
	if ic.Lifecycle {
		out = append(out, interceptors.Lifecycle())
	}
	if ic.Logging {
		out = append(out, interceptors.Logging(logger))
	}
	if ic.Metrics {
		m, err := interceptors.NewMetrics(s.registerer)
		if err != nil {
			return nil, fmt.Errorf("container: %w", err)
		}
		out = append(out, m)
	}
	return out, nil
}
