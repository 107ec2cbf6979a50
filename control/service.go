// File: control/service.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Service is the single facade a process wires up for its control-plane
// ambient concerns — config, stats, hot reload — satisfying api.Control so
// cmd/iofwd (or a future admin surface) depends on one narrow interface
// instead of the concrete ConfigStore/MetricsRegistry pair directly.

package control

import "github.com/momentics/iofwd/api"

// Ensure compile-time interface compliance.
var _ api.Control = (*Service)(nil)

// Service composes a ConfigStore, a MetricsRegistry and a DebugProbes
// registry behind api.Control.
type Service struct {
	cfg     *ConfigStore
	metrics *MetricsRegistry
	debug   *DebugProbes
}

// NewService wraps an existing ConfigStore and MetricsRegistry.
func NewService(cfg *ConfigStore, metrics *MetricsRegistry) *Service {
	return &Service{cfg: cfg, metrics: metrics, debug: NewDebugProbes()}
}

// GetConfig returns a snapshot of all configuration settings.
func (s *Service) GetConfig() map[string]any {
	return s.cfg.GetSnapshot()
}

// SetConfig atomically updates or merges configuration settings. Always
// returns nil: ConfigStore.SetConfig has no validation step of its own.
func (s *Service) SetConfig(cfg map[string]any) error {
	s.cfg.SetConfig(cfg)
	return nil
}

// Stats returns current aggregated runtime and performance metrics.
func (s *Service) Stats() map[string]any {
	return s.metrics.GetSnapshot()
}

// OnReload registers a callback for hot-reload/config updates.
func (s *Service) OnReload(fn func()) {
	s.cfg.OnReload(fn)
}

// RegisterDebugProbe dynamically registers a named debug probe function.
func (s *Service) RegisterDebugProbe(name string, fn func() any) {
	s.debug.RegisterProbe(name, fn)
}

// DumpState returns the output of every registered debug probe.
func (s *Service) DumpState() map[string]any {
	return s.debug.DumpState()
}
