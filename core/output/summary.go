package output

import (
	"fmt"
	"io"
	"strconv"

	"diffly/core/conflict"
	"diffly/core/diff"
	"diffly/core/monitor"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	headline = color.New(color.Bold, color.FgCyan)
	alarm    = color.New(color.Bold, color.FgRed)
	okay     = color.New(color.Bold, color.FgGreen)
	inserts  = color.New(color.FgGreen)
	updates  = color.New(color.FgYellow)
	deletes  = color.New(color.FgRed)
	bold     = color.New(color.Bold)
	dim      = color.New(color.Faint)
)

// renderTable prints one bordered table. Cell widths are ANSI-aware, so
// colored cells line up.
func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewTable(w)
	table.Header(header)
	for _, r := range rows {
		_ = table.Append(r)
	}
	_ = table.Render()
}

// PrintSummary writes the human-readable run summary: one row per changed
// table plus the aggregate counts.
func PrintSummary(w io.Writer, cs *diff.Changeset) {
	fmt.Fprintln(w)
	headline.Fprintln(w, "DIFFLY DIFF SUMMARY")
	fmt.Fprintf(w, "%s → %s\n", color.BlueString(cs.SourceSchema), color.GreenString(cs.TargetSchema))
	fmt.Fprintf(w, "Changeset: %s\n\n", color.HiYellowString(cs.ChangesetID))

	if cs.Summary.TotalChanges == 0 {
		dim.Fprintln(w, "No changes detected.")
		return
	}

	var rows [][]string
	for _, t := range cs.Tables {
		if t.IsEmpty() {
			continue
		}
		rows = append(rows, []string{
			bold.Sprint(t.TableName),
			inserts.Sprint(len(t.Inserts)),
			updates.Sprint(len(t.Updates)),
			deletes.Sprint(len(t.Deletes)),
		})
	}
	renderTable(w, []string{"Table", "Inserts", "Updates", "Deletes"}, rows)

	s := cs.Summary
	fmt.Fprintln(w)
	renderTable(w, []string{"Metric", "Value"}, [][]string{
		{"Total inserts", inserts.Sprint(s.TotalInserts)},
		{"Total updates", updates.Sprint(s.TotalUpdates)},
		{"Total deletes", deletes.Sprint(s.TotalDeletes)},
		{"Total changes", bold.Sprint(s.TotalChanges)},
	})
	fmt.Fprintln(w)
}

// PrintConflicts writes the detected conflicts as a table and returns true
// if there are any, so the caller can exit non-zero.
func PrintConflicts(w io.Writer, conflicts []conflict.Report) bool {
	if len(conflicts) == 0 {
		okay.Fprintln(w, "✓ No conflicts — changeset is clean.")
		return false
	}

	fmt.Fprintln(w)
	alarm.Fprintln(w, "CONFLICTS DETECTED")
	fmt.Fprintf(w, "%s conflict(s) must be resolved before deploying.\n\n", bold.Sprint(len(conflicts)))

	rows := make([][]string, 0, len(conflicts))
	for _, c := range conflicts {
		rows = append(rows, []string{
			bold.Sprint(c.TableName),
			pkString(c.PK),
			updates.Sprint(c.Column),
			dim.Sprint(formatValue(c.BaseValue)),
			color.CyanString(formatValue(c.SourceValue)),
			color.RedString(formatValue(c.TargetValue)),
		})
	}
	renderTable(w, []string{"Table", "PK", "Column", "Base", "Yours", "Theirs"}, rows)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s  base value at clone time\n", dim.Sprint("base  →"))
	fmt.Fprintf(w, "  %s  your source change\n", color.CyanString("yours →"))
	fmt.Fprintf(w, "  %s  concurrent target change\n", color.RedString("theirs→"))
	fmt.Fprintln(w)
	return true
}

// PrintPerfReport writes the per-operation timing table recorded during
// the run. Silent when nothing was recorded.
func PrintPerfReport(w io.Writer, report *monitor.Report) {
	timings := report.Timings()
	if len(timings) == 0 {
		return
	}

	headline.Fprintln(w, "PERFORMANCE")

	var totalRows int
	var totalMs int64
	rows := make([][]string, 0, len(timings))
	for _, t := range timings {
		ms := t.Duration.Milliseconds()
		totalMs += ms
		if t.Op == monitor.OpFetch {
			totalRows += t.Rows
		}
		rows = append(rows, []string{
			dim.Sprint(string(t.Op)),
			bold.Sprint(t.Table),
			strconv.Itoa(t.Rows),
			formatMillis(ms),
		})
	}
	renderTable(w, []string{"Operation", "Table", "Rows", "Time (ms)"}, rows)

	fmt.Fprintf(w, "  Total: %s row(s) fetched  ·  %s elapsed\n\n",
		bold.Sprint(totalRows), formatMillis(totalMs))
}

func formatMillis(ms int64) string {
	switch {
	case ms >= 1000:
		return updates.Sprintf("%.1fs", float64(ms)/1000)
	case ms >= 100:
		return updates.Sprint(ms)
	default:
		return inserts.Sprint(ms)
	}
}

func pkString(pk map[string]any) string {
	out := ""
	for _, k := range sortedKeys(pk) {
		if out != "" {
			out += ", "
		}
		out += k + "=" + formatValue(pk[k])
	}
	return out
}
