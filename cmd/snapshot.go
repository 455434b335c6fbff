package cmd

import (
	"fmt"

	"diffly/core/monitor"
	"diffly/core/snapshot"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var snapshotName string

// snapshotCmd captures the target's current rows as a baseline for later
// conflict checks.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture a baseline snapshot of the target schema",
	Long: `Fetches every configured table from the target database and stores the
rows together with their fingerprints. Run this at clone time; a later
"diff --with-conflicts" compares against it to spot concurrent target
changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg := bootstrap()
		defer logg.Sync()
		ctx := cmd.Context()

		report := monitor.NewReport()
		target, err := connectSide(cfg.Target, report)
		if err != nil {
			return fmt.Errorf("target connection failed: %w", err)
		}

		archive, err := snapshot.NewService(target).Capture(ctx, cfg.Target.Schema, cfg.Diff.Tables)
		if err != nil {
			return err
		}

		store, err := newSnapshotStore(cfg)
		if err != nil {
			return err
		}

		name := snapshotName
		if name == "" {
			name = cfg.Snapshot.Name
		}
		if err := store.Save(ctx, name, archive); err != nil {
			return err
		}

		logg.Info("Baseline snapshot saved",
			zap.String("name", name),
			zap.String("schema", cfg.Target.Schema),
			zap.Int("tables", len(archive.Tables)))
		fmt.Printf("Snapshot %q saved (%d tables)\n", name, len(archive.Tables))
		return nil
	},
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotName, "name", "", "snapshot name (default from config)")
	RootCmd.AddCommand(snapshotCmd)
}
