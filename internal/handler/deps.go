package handler

import (
	"relaychat/internal/app/chat"
	"relaychat/internal/configs"
	"relaychat/internal/pkg/metrics"
)

// AppDeps bundles what the HTTP handlers need.
type AppDeps struct {
	Pool       *chat.Pool
	Dispatcher *chat.Dispatcher
	Config     *configs.AppConfig

	// Metrics may be nil when metrics are disabled.
	Metrics *metrics.Registry
}

// NewAppDeps wires a Pool and its Dispatcher around cfg.
func NewAppDeps(cfg *configs.AppConfig, m *metrics.Registry) *AppDeps {
	pool := chat.NewPool(m)

	return &AppDeps{
		Pool:       pool,
		Dispatcher: chat.NewDispatcher(pool, m),
		Config:     cfg,
		Metrics:    m,
	}
}
