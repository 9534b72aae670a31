package goGuard

import (
	"errors"
	"net/http"
	"time"

	"github.com/MrEthical07/goGuard/gateway"
	"github.com/MrEthical07/goGuard/internal/notify"
	"github.com/MrEthical07/goGuard/internal/storage"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by goGuard APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client

	httpClient *http.Client
	gatewayCli *gateway.Client
	eventSink  EventSink
	logf       func(format string, args ...any)

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// When no Redis client is supplied the engine falls back to an in-process
// store: per-instance caches, gone on restart.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithHTTPClient describes the withhttpclient operation and its observable behavior.
//
// WithHTTPClient may return an error when input validation, dependency calls, or security checks fail.
// WithHTTPClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithGatewayClient describes the withgatewayclient operation and its observable behavior.
//
// A pre-built client overrides the Gateway section of the config.
//
// WithGatewayClient may return an error when input validation, dependency calls, or security checks fail.
// WithGatewayClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithGatewayClient(client *gateway.Client) *Builder {
	b.gatewayCli = client
	return b
}

// WithEventSink describes the witheventsink operation and its observable behavior.
//
// WithEventSink may return an error when input validation, dependency calls, or security checks fail.
// WithEventSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithEventSink(sink EventSink) *Builder {
	b.eventSink = sink
	if sink != nil {
		b.config.Events.Enabled = true
	}
	return b
}

// WithLogger describes the withlogger operation and its observable behavior.
//
// WithLogger routes the engine's warn-level diagnostics through logf
// (Printf-style). When unset, warnings go to the standard logger. Passing
// nil restores the default.
//
// WithLogger may return an error when input validation, dependency calls, or security checks fail.
// WithLogger does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLogger(logf func(format string, args ...any)) *Builder {
	b.logf = logf
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var store storage.KV
	if b.redis != nil {
		store = storage.NewRedis(b.redis, cfg.Storage.RedisPrefix)
	} else {
		store = storage.NewMemory()
	}

	gatewayCli := b.gatewayCli
	if gatewayCli == nil {
		gatewayCli = gateway.NewClient(gateway.Config{
			BaseURL:           cfg.Gateway.BaseURL,
			DevMode:           cfg.Gateway.DevMode,
			APIPrefix:         cfg.Gateway.APIPrefix,
			Timeout:           cfg.Gateway.Timeout,
			SessionCookieName: cfg.Session.CookieName,
		}, b.httpClient)
	}

	dispatcher := notify.NewDispatcher(notify.Config{
		Enabled:    cfg.Events.Enabled,
		BufferSize: cfg.Events.BufferSize,
		DropIfFull: cfg.Events.DropIfFull,
	}, b.eventSink)

	engine := &Engine{
		config:      cfg,
		store:       store,
		gateway:     gatewayCli,
		events:      dispatcher,
		broadcaster: notify.NewBroadcaster(),
		metrics:     NewMetrics(cfg.Metrics),
		now:         time.Now,
		logf:        b.logf,
	}
	engine.staging = newLoginStagingStore(store, cfg.Login.StagingKeyPrefix, cfg.Login.StagingTTL)

	b.built = true
	return engine, nil
}
