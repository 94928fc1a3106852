package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emedina/horas/internal/model"
	"github.com/emedina/horas/internal/store"
	"github.com/emedina/horas/internal/timecalc"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the local copy of sent records",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	path, err := store.DefaultPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	printList(successfulRecords(store.New(path).List()))
	return nil
}

// successfulRecords filters to confirmed records; transient or failed
// entries are never shown.
func successfulRecords(records []model.Record) []model.Record {
	var out []model.Record
	for _, r := range records {
		if r.Status == model.StatusSuccess {
			out = append(out, r)
		}
	}
	return out
}

// printList prints records newest first, one per line.
func printList(records []model.Record) {
	if len(records) == 0 {
		fmt.Println("No records found.")
		return
	}

	for _, r := range records {
		fmt.Println(recordLine(r))
	}
}

// recordLine renders one record for display, registration timestamp included.
func recordLine(r model.Record) string {
	obs := ""
	if r.Observations != "" {
		obs = "  " + r.Observations
	}
	return fmt.Sprintf("%s  %s %s – %s %s  %6s h  %s  %s  %s%s",
		r.ID,
		timecalc.FormatDisplayDate(r.StartDate), r.StartTime,
		timecalc.FormatDisplayDate(r.EndDate), r.EndTime,
		timecalc.FormatHours(r.CalculatedHours),
		r.Name,
		r.Description,
		timecalc.FormatDisplayTimestamp(r.Timestamp),
		obs,
	)
}
