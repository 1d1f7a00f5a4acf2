package sync

import (
	"time"
)

// Hook is a post-processing step applied to the assembled device
// configuration before it is returned to the poller. Hooks are chained: each
// receives the previous hook's output. They must be idempotent and must not
// assume an invocation order relative to other hooks. Hooks run inside the
// request, a slow hook directly delays the response.
type Hook interface {
	Handle(deviceID uint64, cfg *DeviceConfig) *DeviceConfig
}

// Pipeline is the explicit, process-start registered list of hooks.
type Pipeline []Hook

// Apply chains every hook over cfg exactly once. A hook returning nil keeps
// the previous value.
func (p Pipeline) Apply(deviceID uint64, cfg *DeviceConfig) *DeviceConfig {
	for _, h := range p {
		if out := h.Handle(deviceID, cfg); out != nil {
			cfg = out
		}
	}

	return cfg
}

// ServerTimeHook stamps the server wall clock into the response so devices
// can correct their clock drift against the management server.
type ServerTimeHook struct{}

// Handle implements Hook.
func (ServerTimeHook) Handle(_ uint64, cfg *DeviceConfig) *DeviceConfig {
	now := time.Now().UnixMilli()
	cfg.ServerTime = &now

	return cfg
}
