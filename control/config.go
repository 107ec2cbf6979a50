// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe configuration store with dynamic update and hot-reload propagation.

package control

import (
	"sync"
)

// ConfigStore is a dynamic key/value map with atomic snapshot and listener support.
type ConfigStore struct {
	mu        sync.RWMutex
	config    map[string]any
	listeners []func()
}

// NewConfigStore initializes a new config store with empty data.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		config:    make(map[string]any),
		listeners: make([]func(), 0),
	}
}

// GetSnapshot returns a copy of all config values.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	copy := make(map[string]any, len(cs.config))
	for k, v := range cs.config {
		copy[k] = v
	}
	return copy
}

// SetConfig merges new values and dispatches reload if needed.
func (cs *ConfigStore) SetConfig(newCfg map[string]any) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for k, v := range newCfg {
		cs.config[k] = v
	}
	cs.dispatchReload()
}

// OnReload registers a listener hook called on config changes.
func (cs *ConfigStore) OnReload(fn func()) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}

// StringSlice returns the value at key as a []string, or ok=false if absent
// or of a different type. Typed sibling of GetSnapshot for the common case
// of a caller wanting one key instead of a full copy (e.g. a NIC name list).
func (cs *ConfigStore) StringSlice(key string) (val []string, ok bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	val, ok = cs.config[key].([]string)
	return val, ok
}

// Uint8 returns the value at key as a uint8, or ok=false if absent or of a
// different type (e.g. a default next-hop interface index).
func (cs *ConfigStore) Uint8(key string) (val uint8, ok bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	val, ok = cs.config[key].(uint8)
	return val, ok
}

// Int returns the value at key as an int, or ok=false if absent or of a
// different type (e.g. a worker/ring-index count).
func (cs *ConfigStore) Int(key string) (val int, ok bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	val, ok = cs.config[key].(int)
	return val, ok
}

// dispatchReload invokes all listeners.
func (cs *ConfigStore) dispatchReload() {
	for _, fn := range cs.listeners {
		go fn()
	}
}
