package workers

import (
	"context"
	"sort"
	"sync"
	"time"

	"wecelebrate/console/internal/logging"
	"wecelebrate/console/internal/metrics"
)

// Pinger is a dependency the monitor can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DependencyMonitor pings backing dependencies on an interval, exports the
// result as a gauge and logs every up/down transition.
type DependencyMonitor struct {
	checks  map[string]Pinger
	metrics *metrics.MetricsRegistry
	timeout time.Duration

	mu    sync.Mutex
	state map[string]bool
}

// NewDependencyMonitor creates a monitor for checks. Each ping is bounded by
// timeout.
func NewDependencyMonitor(checks map[string]Pinger, m *metrics.MetricsRegistry, timeout time.Duration) *DependencyMonitor {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &DependencyMonitor{
		checks:  checks,
		metrics: m,
		timeout: timeout,
		state:   make(map[string]bool, len(checks)),
	}
}

// Start checks immediately and then on every tick until ctx is cancelled.
func (m *DependencyMonitor) Start(ctx context.Context, interval time.Duration) {
	logging.Info("Dependency monitor starting", "interval", interval.String(), "dependencies", len(m.checks))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.CheckOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info("Dependency monitor shutting down")
			return
		case <-ticker.C:
			m.CheckOnce(ctx)
		}
	}
}

// CheckOnce pings every dependency once and returns the names that are down,
// sorted.
func (m *DependencyMonitor) CheckOnce(ctx context.Context) []string {
	var down []string

	for name, p := range m.checks {
		pingCtx, cancel := context.WithTimeout(ctx, m.timeout)
		err := p.Ping(pingCtx)
		cancel()

		up := err == nil
		m.metrics.SetDependencyUp(name, up)
		if !up {
			down = append(down, name)
		}

		m.mu.Lock()
		prev, seen := m.state[name]
		m.state[name] = up
		m.mu.Unlock()

		switch {
		case !up && (!seen || prev):
			logging.Warn("Dependency is down", "dependency", name, "error", err)
		case up && seen && !prev:
			logging.Info("Dependency recovered", "dependency", name)
		}
	}

	sort.Strings(down)
	return down
}

// Status reports the last known state of every dependency checked so far.
func (m *DependencyMonitor) Status() map[string]bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]bool, len(m.state))
	for k, v := range m.state {
		out[k] = v
	}
	return out
}
