package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.uber.org/goleak"

	"wecelebrate/console/internal/metrics"
)

type fakePinger struct {
	fail  atomic.Bool
	calls atomic.Int32
}

func (f *fakePinger) Ping(ctx context.Context) error {
	f.calls.Add(1)
	if f.fail.Load() {
		return errors.New("connection refused")
	}
	return nil
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("Failed to read gauge: %v", err)
	}
	return m.GetGauge().GetValue()
}

func TestDependencyMonitor_CheckOnce(t *testing.T) {
	reg := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	db := &fakePinger{}
	cache := &fakePinger{}
	cache.fail.Store(true)

	mon := NewDependencyMonitor(map[string]Pinger{"database": db, "redis": cache}, reg, time.Second)

	down := mon.CheckOnce(context.Background())
	if len(down) != 1 || down[0] != "redis" {
		t.Fatalf("Expected only redis down, got %v", down)
	}
	if v := gaugeValue(t, reg.DependencyUp.WithLabelValues("database")); v != 1 {
		t.Errorf("Expected database gauge 1, got %v", v)
	}
	if v := gaugeValue(t, reg.DependencyUp.WithLabelValues("redis")); v != 0 {
		t.Errorf("Expected redis gauge 0, got %v", v)
	}

	cache.fail.Store(false)
	if down := mon.CheckOnce(context.Background()); len(down) != 0 {
		t.Errorf("Expected everything up after recovery, got %v", down)
	}
	status := mon.Status()
	if !status["redis"] || !status["database"] {
		t.Errorf("Expected all dependencies up, got %v", status)
	}
}

func TestDependencyMonitor_StartStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	p := &fakePinger{}
	mon := NewDependencyMonitor(map[string]Pinger{"database": p}, nil, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		mon.Start(ctx, time.Hour)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for p.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if p.calls.Load() == 0 {
		t.Fatal("Expected an immediate check on start")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Monitor did not stop after cancel")
	}
}
