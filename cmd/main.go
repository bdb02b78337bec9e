package main

import (
	"flag"

	"embedpipe/internal/config"
	"embedpipe/internal/embedding/provider"
	"embedpipe/internal/engine"
	"embedpipe/internal/server"
	"embedpipe/internal/store"
	"embedpipe/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config file")
	flag.Parse()

	conf := config.Default()
	if *configPath != "" {
		var err error
		conf, err = config.FromFile(*configPath)
		if err != nil {
			logger.Fatal("Failed to load config", "path", *configPath, "error", err)
		}
	}
	logger.InitLogger(conf.LogLevel, conf.LogFile)

	st, err := store.Open(conf.StorePath)
	if err != nil {
		logger.Fatal("Failed to open model store", "path", conf.StorePath, "error", err)
	}
	defer st.Close()

	// The registry cannot run degraded: without backends there is
	// nothing to dispatch to.
	registry, err := provider.NewRegistry()
	if err != nil {
		logger.Fatal("Failed to initialize backend registry", "error", err)
	}
	logger.Info("Registered embedding backends", "count", registry.Len())

	s := server.New(st, registry, engine.Options{
		DefaultBatchSize: conf.BatchSize,
		CacheSize:        conf.CacheSize,
	})
	if err := s.Run(conf.ListenAddr); err != nil {
		logger.Fatal("Server stopped", "error", err)
	}
}
