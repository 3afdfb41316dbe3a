// File: cmd/rtworker-demo/main.go
// Command rtworker-demo drives a rtworker pool sized to the host's CPU
// count, waking every worker on a fixed period with an rtmetrics registry
// attached, and logging generation and buffer totals on shutdown.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/momentics/rtworker/pool"
	"github.com/momentics/rtworker/rtmetrics"
	"github.com/momentics/rtworker/rtwerr"
)

func main() {
	period := flag.Duration("period", 10*time.Millisecond, "wake period")
	priority := flag.Int("priority", pool.DefaultPriority, "realtime priority for each worker (0-99)")
	flag.Parse()

	metrics := rtmetrics.New()

	cores := pool.AutoDetectCores(runtime.NumCPU())
	p, err := pool.New(cores, pool.WithMetrics(metrics))
	if err != nil {
		log.Fatalf("rtworker-demo: new pool: %v", err)
	}
	defer p.Close()

	var buffersProcessed int64
	for i := range cores {
		idx := i
		status, platformStatus := p.AddWorker(func(any) {
			atomic.AddInt64(&buffersProcessed, 1)
		}, nil, pool.WithPriority(*priority))
		if status != rtwerr.StatusOK {
			log.Fatalf("rtworker-demo: add worker %d: %s (platform: %s)", idx, status, platformStatus)
		}
	}

	log.Printf("rtworker-demo: %d workers across cores %v, period=%s", p.NumWorkers(), cores, *period)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(*period)
	defer ticker.Stop()

	var generations int64
	for {
		select {
		case <-ctx.Done():
			log.Printf("rtworker-demo: shutting down after %d generations, %d buffers processed",
				generations, atomic.LoadInt64(&buffersProcessed))
			return
		case <-ticker.C:
			waitCtx, cancel := context.WithTimeout(ctx, time.Second)
			err := p.WakeAndWait(waitCtx)
			cancel()
			if err != nil {
				log.Printf("rtworker-demo: wake and wait: %v", err)
				continue
			}
			generations++
		}
	}
}
