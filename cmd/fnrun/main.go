package main

import (
	"context"
	"flag"
	"log"

	"github.com/sirupsen/logrus"

	"github.com/9triver/fnrun/internal/config"
	"github.com/9triver/fnrun/internal/util"
	"github.com/9triver/fnrun/runtime"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}
	util.InitLogger(cfg.Logging.Level)

	creds, err := runtime.LoadCredentials(cfg.TLSCertsDir)
	if err != nil {
		logrus.Fatalf("Failed to load TLS credentials: %v", err)
	}

	srv := runtime.NewServer(&Function{},
		runtime.WithAddress(cfg.ListenAddr),
		runtime.WithCredentials(creds),
		runtime.WithInsecure(cfg.Insecure),
		runtime.WithGracePeriod(cfg.GracePeriod()),
	)

	// Serve blocks until SIGINT/SIGTERM, then drains in-flight calls.
	if err := srv.Serve(context.Background()); err != nil {
		logrus.Fatalf("Server failed: %v", err)
	}
	logrus.Info("Shutdown complete")
}
