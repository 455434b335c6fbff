package cmd

import (
	"fmt"
	"log"

	"diffly/core/config"
	"diffly/core/database"
	"diffly/core/diff"
	"diffly/core/logger"
	"diffly/core/monitor"
	"diffly/core/snapshot"
	"diffly/core/storage"

	"go.uber.org/zap"
)

// bootstrap loads configuration and initializes the logger. Fatal on
// failure: no subcommand can run without either.
func bootstrap() (*config.Config, *zap.Logger) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(logg)

	return cfg, logg
}

// connectSide opens one database side and wraps its repository with the
// shared timing instrumentation.
func connectSide(cfg database.Config, report *monitor.Report) (diff.RowRepository, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	return monitor.WrapRepository(database.NewRepository(db, cfg.Driver), report), nil
}

// newSnapshotStore picks the configured snapshot backend.
func newSnapshotStore(cfg *config.Config) (snapshot.Store, error) {
	switch cfg.Snapshot.Store {
	case "file":
		return snapshot.NewFileStore(cfg.Snapshot.Dir), nil
	case "object":
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, err
		}
		return snapshot.NewObjectStore(client, cfg.Storage.Bucket, cfg.Storage.Region), nil
	default:
		return nil, fmt.Errorf("unknown snapshot store: %s", cfg.Snapshot.Store)
	}
}
