// Copyright (C) 2026 The itemcache Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Command itemcache-sim is a synthetic probe driver: it simulates a
// handful of concurrent producers emitting structured "file record"
// and "package record" items with deliberate duplication, submits
// them through itemcache.CollectContext, calls Barrier once every
// producer has finished, and prints a diagnostic dump at the end of
// the run.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/google/uuid"

	"github.com/scaprun/itemcache"
	"github.com/scaprun/itemcache/config"
	"github.com/scaprun/itemcache/diag"
)

func exitf(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

var configPath = flag.String("config", "", "path to a YAML config document (optional)")

func main() {
	flag.Parse()

	cfg := &config.Config{Producers: config.DefaultProducers, QueueCapacity: itemcache.DefaultQueueCapacity}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			exitf(err)
		}
		if loaded.Producers > 0 {
			cfg.Producers = loaded.Producers
		}
		if loaded.QueueCapacity > 0 {
			cfg.QueueCapacity = loaded.QueueCapacity
		}
		cfg.Verbose = loaded.Verbose
	}

	runID := uuid.New()
	logger := log.New(os.Stderr, fmt.Sprintf("itemcache-sim[%s] ", runID), log.LstdFlags)

	ctx, cancel := signalContext()
	defer cancel()

	cache, err := itemcache.New(cfg.QueueCapacity, logger)
	if err != nil {
		exitf(err)
	}

	dest := &memoryDestination{}
	collectCtx := &itemcache.CollectContext{
		Dest:  dest,
		Cache: cache,
		Filters: []itemcache.Filter{
			rejectEmptyPath,
		},
	}

	var wg sync.WaitGroup
	for p := 0; p < cfg.Producers; p++ {
		wg.Add(1)
		go func(producer int) {
			defer wg.Done()
			runProducer(ctx, producer, collectCtx, cfg.Verbose, logger)
		}(p)
	}
	wg.Wait()

	if err := cache.Barrier(); err != nil {
		logger.Printf("barrier after producers finished: %s", err)
	}

	// Snapshot before Free: Free drops the Dedup Index, after which
	// Len and BucketSummary report nothing.
	snap := diag.FromCache(cache)
	snap.RunID = runID

	cache.Free()

	if err := diag.Dump(os.Stdout, snap); err != nil {
		logger.Printf("writing diagnostic dump: %s", err)
	}
}

// signalContext returns a cancellation channel closed on SIGINT/SIGTERM,
// so a long simulated run can be interrupted cleanly; the returned
// func stops listening for signals.
func signalContext() (<-chan struct{}, func()) {
	done := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		close(done)
	}()
	return done, func() { signal.Stop(sigCh) }
}

func rejectEmptyPath(id itemcache.Identity) bool {
	fr, ok := id.(*fileRecord)
	if !ok {
		return true
	}
	return fr.Path != ""
}
