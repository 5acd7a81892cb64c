package main

import (
	"flag"

	"go.uber.org/zap"

	"github.com/parleylabs/parley/pkg/logger"
	"github.com/parleylabs/parley/server"
)

func main() {
	// Parse command line flags
	listenAddr := flag.String("listen", "", "Address to listen on (overrides config file)")
	configPath := flag.String("config", "", "Path to TOML config file")
	journalPath := flag.String("journal", "", "Path to SQLite turn journal (overrides config file)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Set up logger
	logger := logger.NewLogger(*debug)
	defer logger.Sync()

	config, err := server.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if *listenAddr != "" {
		config.ListenAddr = *listenAddr
	}
	if *journalPath != "" {
		config.JournalPath = *journalPath
	}

	logger.Info("parley voice endpoint starting",
		zap.String("listen", config.ListenAddr),
		zap.Bool("debug", *debug),
	)

	s, err := server.New(config, logger)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}
	defer s.Close()

	if err := s.Run(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
