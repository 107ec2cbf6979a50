// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations, DTOs, and constants.

package api

import "time"

// WorkerStatus enumerates the lifecycle state of a forwarding worker.
type WorkerStatus int

const (
	WorkerUnknown WorkerStatus = iota
	WorkerStarting
	WorkerRunning
	WorkerStopping
	WorkerStopped
)

func (s WorkerStatus) String() string {
	switch s {
	case WorkerStarting:
		return "starting"
	case WorkerRunning:
		return "running"
	case WorkerStopping:
		return "stopping"
	case WorkerStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// APIMetrics provides a standard layout for service health/statistics reporting.
type APIMetrics struct {
	NumWorkers      int
	FramesForwarded uint64
	FramesDropped   uint64
	LookupMisses    uint64
	InboundTraffic  uint64 // bytes received
	OutboundTraffic uint64 // bytes sent
	StartedAt       time.Time
}

// ServiceInfo exposes descriptive build- and runtime info for external tools.
type ServiceInfo struct {
	Name      string
	Version   string
	Build     string
	StartedAt time.Time
}
