package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/safelabs/sentinel-node/internal/adapters/connectivity"
	"github.com/safelabs/sentinel-node/pkg/sentinel"
)

// Runs the node entirely on simulated hardware against a local RTDB
// emulator; handy for poking at the sync loop without sensors.
func main() {
	cfg := &sentinel.Config{}
	cfg.Device.ID = "sensor_node_01"
	cfg.Store.Backend = "rtdb"
	cfg.Store.RTDB.DatabaseURL = "http://localhost:9000"
	cfg.Sampling.Interval = 5 * time.Second
	cfg.Hardware.Simulated = true
	cfg.ApplyDefaults()

	node, err := sentinel.New(cfg, sentinel.WithLink(connectivity.NewSimLink(true)))
	if err != nil {
		log.Fatalf("bootstrap node: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := node.Run(ctx); err != nil {
		log.Fatalf("node exited: %v", err)
	}
}
