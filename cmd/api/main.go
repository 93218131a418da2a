package main

import (
	"os"

	"resume-critic/internal/bootstrap"
	"resume-critic/internal/shared/config"
	"resume-critic/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Setup(os.Stdout, cfg.LogFormat, cfg.LogLevel)

	app, err := bootstrap.Build(cfg)
	if err != nil {
		telemetry.Error("startup.failed", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	addr := cfg.Addr()
	telemetry.Info("server.start", map[string]any{"addr": addr, "env": cfg.Env})
	if err := app.Router.Run(addr); err != nil {
		telemetry.Error("server.stopped", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
