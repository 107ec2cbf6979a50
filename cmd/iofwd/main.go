// File: cmd/iofwd/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Process bootstrap: build and freeze the route table, load the static
// configuration, open one ring pair per NIC for every worker, and run one
// forwarding worker per hardware ring index until the process is signaled
// to stop.

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/momentics/iofwd/control"
	"github.com/momentics/iofwd/forward"
	"github.com/momentics/iofwd/internal/concurrency"
	"github.com/momentics/iofwd/lpm"
	"github.com/momentics/iofwd/ring"
)

func main() {
	cfgStore := control.NewConfigStore()
	loadStaticConfig(cfgStore)

	cfg, err := forwardConfigFromStore(cfgStore)
	if err != nil {
		log.Fatalf("iofwd: invalid configuration: %v", err)
	}

	table := lpm.NewTable()
	if err := seedRoutes(table); err != nil {
		log.Fatalf("iofwd: route table seed failed: %v", err)
	}
	log.Printf("iofwd: route table frozen with %d nodes", table.NumNodes())

	numWorkers := numRingIndices(cfgStore)
	provider := ring.NewLoopbackProvider()

	workers := make([]*forward.Worker, 0, numWorkers)
	for id := 0; id < numWorkers; id++ {
		w := forward.NewWorker(id, provider, table, cfg)
		if err := w.Bind(ring.ModeZeroCopy); err != nil {
			log.Fatalf("iofwd: worker %d: bind failed: %v", id, err)
		}
		workers = append(workers, w)
	}

	metrics := control.NewMetricsRegistry()
	executor := concurrency.NewExecutor(1, -1)
	defer executor.Close()

	stats := make([]control.WorkerStats, len(workers))
	for i, w := range workers {
		stats[i] = w
	}
	reporter := control.NewStatsReporter(stats, metrics, executor)
	reporter.Start(5 * time.Second)
	defer reporter.Stop()

	events := control.NewRecentEvents(64)
	svc := control.NewService(cfgStore, metrics)
	svc.RegisterDebugProbe("recent_events", func() any { return events.Snapshot() })
	svc.RegisterDebugProbe("worker_status", func() any {
		type workerStatus struct {
			Status string
			CPUPin int
		}
		out := make(map[int]workerStatus, len(workers))
		for _, w := range workers {
			out[w.ID()] = workerStatus{Status: w.Status().String(), CPUPin: w.CPUPin().CPUID}
		}
		return out
	})
	events.Record("iofwd: startup complete")

	control.RegisterReloadHook(func() { events.Record("iofwd: hot reload triggered") })
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for range hup {
			log.Printf("iofwd: SIGHUP received, dispatching reload hooks")
			control.TriggerHotReload()
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var wg sync.WaitGroup
	for _, w := range workers {
		wg.Add(1)
		go func(w *forward.Worker) {
			defer wg.Done()
			if err := w.Run(); err != nil {
				log.Printf("iofwd: worker exited with error: %v", err)
			}
		}(w)
	}

	<-ctx.Done()
	log.Printf("iofwd: shutdown requested, draining workers")
	for _, w := range workers {
		w.Shutdown()
	}
	wg.Wait()
	log.Printf("iofwd: all workers stopped")
}

// numRingIndices reports how many hardware ring indices (and therefore
// workers) the configuration asks for. Defaults to 4, matching spec.md §5's
// "commonly 4".
func numRingIndices(cfgStore *control.ConfigStore) int {
	if n, ok := cfgStore.Int("ring_indices"); ok && n > 0 {
		return n
	}
	return 4
}

// forwardConfigFromStore builds the validated forward.Config a worker needs
// out of a ConfigStore snapshot. loadStaticConfig always seeds nic_names and
// default_next_hop_iface before this is called, so the only defaulting left
// to do here is Validate's.
func forwardConfigFromStore(cfgStore *control.ConfigStore) (forward.Config, error) {
	cfg := forward.Config{}
	cfg.NICNames, _ = cfgStore.StringSlice("nic_names")
	cfg.DefaultNextHopIface, _ = cfgStore.Uint8("default_next_hop_iface")
	if err := cfg.Validate(); err != nil {
		return forward.Config{}, err
	}
	return cfg, nil
}

// loadStaticConfig populates cfgStore from this deployment's static source.
// The routing-table feed protocol and config file format are both out of
// scope (spec.md §1); this seeds the minimal values the core needs.
func loadStaticConfig(cfgStore *control.ConfigStore) {
	cfgStore.SetConfig(map[string]any{
		"nic_names":              []string{"eth0", "eth1"},
		"ring_indices":           4,
		"default_next_hop_iface": uint8(1),
	})
}

// seedRoutes populates the route table before any worker starts. A real
// deployment's seeder is an external, opaque collaborator (spec.md §1); this
// placeholder covers the whole IPv4 address space with two /1 routes (the
// trie requires cidr >= 1, so a single /0 catch-all cannot be expressed) so
// cmd/iofwd runs standalone for local testing.
func seedRoutes(table *lpm.Table) error {
	for _, literal := range []string{"0.0.0.0/1", "128.0.0.0/1"} {
		prefix, cidr, err := lpm.ParsePrefix(literal)
		if err != nil {
			return err
		}
		if err := table.Insert(prefix, cidr, 0, 1); err != nil {
			return err
		}
	}
	return nil
}
