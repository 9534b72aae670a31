package goGuard

import (
	"log"
	"time"

	"github.com/MrEthical07/goGuard/gateway"
	"github.com/MrEthical07/goGuard/internal/notify"
	"github.com/MrEthical07/goGuard/internal/storage"
)

// Engine defines a public type used by goGuard APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config      Config
	store       storage.KV
	staging     *loginStagingStore
	gateway     *gateway.Client
	events      *notify.Dispatcher
	broadcaster *notify.Broadcaster
	metrics     *Metrics
	now         func() time.Time
	logf        func(format string, args ...any)
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.events != nil {
		e.events.Close()
	}
	if e.broadcaster != nil {
		e.broadcaster.Close()
	}
}

// Config describes the config operation and its observable behavior.
//
// Config may return an error when input validation, dependency calls, or security checks fail.
// Config does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Config() Config {
	return cloneConfig(e.config)
}

// Gateway describes the gateway operation and its observable behavior.
//
// Gateway may return an error when input validation, dependency calls, or security checks fail.
// Gateway does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Gateway() *gateway.Client {
	if e == nil {
		return nil
	}
	return e.gateway
}

// Metrics describes the metrics operation and its observable behavior.
//
// Metrics may return an error when input validation, dependency calls, or security checks fail.
// Metrics does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Metrics() *Metrics {
	if e == nil {
		return nil
	}
	return e.metrics
}

// EventsDropped describes the eventsdropped operation and its observable behavior.
//
// EventsDropped may return an error when input validation, dependency calls, or security checks fail.
// EventsDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) EventsDropped() uint64 {
	if e == nil || e.events == nil {
		return 0
	}
	return e.events.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) metricObserve(id MetricID, d time.Duration) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Observe(id, d)
}

func (e *Engine) warnf(format string, args ...any) {
	if e == nil {
		return
	}
	logf := e.logf
	if logf == nil {
		logf = log.Printf
	}
	logf("goGuard: "+format, args...)
}
