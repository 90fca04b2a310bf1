package telemetry

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/config"
	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

// DefaultProfileTypes are collected when profiling is on. Report generation
// is allocation heavy, so both alloc and inuse profiles are kept.
var DefaultProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseObjects,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
}

// Profiler wraps the Pyroscope profiler. A disabled profiler is a no-op.
type Profiler struct {
	profiler *pyroscope.Profiler
	logger   *zap.Logger
	mu       sync.Mutex
	stopped  bool
}

// NewProfiler starts continuous profiling when cfg.ProfilingEnabled is set
func NewProfiler(cfg *config.TelemetryConfig, logger *zap.Logger) (*Profiler, error) {
	p := &Profiler{logger: logger}
	if !cfg.ProfilingEnabled {
		logger.Info("Continuous profiling disabled")
		return p, nil
	}
	if cfg.PyroscopeURL == "" {
		return nil, errors.New("pyroscope url is required when profiling is enabled")
	}
	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required when profiling is enabled")
	}

	tags := map[string]string{}
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		tags["hostname"] = hostname
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ServiceName,
		ServerAddress:   cfg.PyroscopeURL,
		Logger:          pyroscopeLogger{logger.Named("pyroscope").Sugar()},
		Tags:            tags,
		ProfileTypes:    DefaultProfileTypes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Pyroscope profiler: %w", err)
	}
	p.profiler = profiler

	logger.Info("Pyroscope profiler started",
		zap.String("server_address", cfg.PyroscopeURL),
		zap.String("application_name", cfg.ServiceName),
	)
	return p, nil
}

// IsEnabled returns whether profiles are being collected
func (p *Profiler) IsEnabled() bool {
	return p.profiler != nil
}

// Stop flushes and stops the profiler. Safe to call more than once.
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped || p.profiler == nil {
		p.stopped = true
		return nil
	}
	p.stopped = true
	if err := p.profiler.Stop(); err != nil {
		return fmt.Errorf("failed to stop profiler: %w", err)
	}
	p.logger.Info("Pyroscope profiler stopped")
	return nil
}

type pyroscopeLogger struct {
	*zap.SugaredLogger
}
