package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"diffly/core/config"
	"diffly/core/conflict"
	"diffly/core/diff"
	"diffly/core/monitor"
	"diffly/core/output"
	"diffly/core/row"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	diffDryRun        bool
	diffFormat        string
	diffWithConflicts bool
	diffBaseline      string
	diffShowPerf      bool
)

// diffCmd runs the two-way diff and optionally the three-way conflict
// check against a stored baseline.
var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Diff source against target and write a changeset",
	Long: `Compares every configured table between the source and target schemas
and writes the resulting changeset to the output directory. With
--with-conflicts the changeset is additionally checked against a stored
baseline snapshot for cells changed on both sides.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg := bootstrap()
		defer logg.Sync()
		ctx := cmd.Context()

		report := monitor.NewReport()

		source, err := connectSide(cfg.Source, report)
		if err != nil {
			return fmt.Errorf("source connection failed: %w", err)
		}
		target, err := connectSide(cfg.Target, report)
		if err != nil {
			return fmt.Errorf("target connection failed: %w", err)
		}

		differ := monitor.WrapDiffer(diff.NewTableDiffer(), report)
		svc := diff.NewService(source, target, differ, logg)

		cs, err := svc.Run(ctx, cfg.Source.Schema, cfg.Target.Schema, cfg.Source.Driver, cfg.Diff.Tables)
		if err != nil {
			return err
		}

		output.PrintSummary(os.Stdout, cs)

		var conflicted int
		if diffWithConflicts {
			conflicted, err = checkConflicts(ctx, cfg, target, cs)
			if err != nil {
				return err
			}
		}

		if !diffDryRun {
			format := diffFormat
			if format == "" {
				format = cfg.Output.Format
			}
			dir, err := writeChangeset(cfg.Output.Dir, format, cs)
			if err != nil {
				return err
			}
			logg.Info("Changeset written",
				zap.String("changeset_id", cs.ChangesetID),
				zap.String("dir", dir))
			fmt.Printf("Changeset written to %s\n", dir)
		}

		if diffShowPerf {
			output.PrintPerfReport(os.Stdout, report)
		}

		if conflicted > 0 {
			return fmt.Errorf("%d conflict(s) detected", conflicted)
		}
		return nil
	},
}

// checkConflicts loads the baseline, refetches the target's current rows
// and runs the three-way check. Returns the number of conflicts found.
func checkConflicts(ctx context.Context, cfg *config.Config, target diff.RowRepository, cs *diff.Changeset) (int, error) {
	store, err := newSnapshotStore(cfg)
	if err != nil {
		return 0, err
	}

	name := diffBaseline
	if name == "" {
		name = cfg.Snapshot.Name
	}
	archive, err := store.Load(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("baseline %q unavailable: %w", name, err)
	}

	currentRows := make(map[string][]row.Map, len(cfg.Diff.Tables))
	pkCols := make(map[string][]string, len(cfg.Diff.Tables))
	for _, tc := range cfg.Diff.Tables {
		rows, err := target.FetchRows(ctx, cfg.Target.Schema, tc.Name, tc.PrimaryKey, tc.ExcludedColumns)
		if err != nil {
			return 0, err
		}
		currentRows[tc.Name] = rows
		pkCols[tc.Name] = tc.PrimaryKey
	}

	result := conflict.NewService().Check(cs, archive.Provider(), archive.Fingerprints, currentRows, pkCols)
	output.PrintConflicts(os.Stdout, result.Conflicts)
	return len(result.Conflicts), nil
}

// writeChangeset renders the changeset into its own subdirectory and
// returns the directory path.
func writeChangeset(baseDir, format string, cs *diff.Changeset) (string, error) {
	dir := filepath.Join(baseDir, cs.ChangesetID)

	var writers []output.Writer
	if format == "all" {
		writers = output.All()
	} else {
		w, ok := output.For(format)
		if !ok {
			return "", fmt.Errorf("unknown format: %s", format)
		}
		writers = []output.Writer{w}
	}

	for _, w := range writers {
		if _, err := output.WriteToFile(w, cs, dir); err != nil {
			return "", err
		}
	}
	return dir, nil
}

func init() {
	diffCmd.Flags().BoolVar(&diffDryRun, "dry-run", false, "print the summary without writing files")
	diffCmd.Flags().StringVarP(&diffFormat, "format", "f", "", "output format: json, sql, html or all (default from config)")
	diffCmd.Flags().BoolVar(&diffWithConflicts, "with-conflicts", false, "check the changeset against a stored baseline snapshot")
	diffCmd.Flags().StringVar(&diffBaseline, "baseline", "", "baseline snapshot name (default from config)")
	diffCmd.Flags().BoolVar(&diffShowPerf, "perf", false, "print per-table timing after the run")
	RootCmd.AddCommand(diffCmd)
}
