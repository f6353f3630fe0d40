package main

import (
	"github.com/libruary/libruary/internal/config"
	"github.com/libruary/libruary/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
