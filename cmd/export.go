package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/emedina/horas/internal/model"
	"github.com/emedina/horas/internal/store"
	"github.com/emedina/horas/internal/timecalc"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the local copy of sent records to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md")
}

func runExport(cmd *cobra.Command, args []string) error {
	path, err := store.DefaultPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	records := successfulRecords(store.New(path).List())

	switch exportFormat {
	case "json":
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	case "md":
		printList(records)
	default: // csv
		printCSV(records)
	}

	return nil
}

func printCSV(records []model.Record) {
	fmt.Println("id,start_date,start_time,end_date,end_time,name,description,observations,hours,registered")
	for _, r := range records {
		registered := ""
		if t, err := time.Parse(time.RFC3339, r.Timestamp); err == nil {
			registered = timecalc.FormatRegistration(t)
		}
		fmt.Printf("%s,%s,%s,%s,%s,%s,%s,%s,%s,%s\n",
			csvEscape(r.ID),
			csvEscape(r.StartDate),
			csvEscape(r.StartTime),
			csvEscape(r.EndDate),
			csvEscape(r.EndTime),
			csvEscape(r.Name),
			csvEscape(r.Description),
			csvEscape(r.Observations),
			timecalc.FormatHours(r.CalculatedHours),
			csvEscape(registered),
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	// Escape internal double quotes by doubling them.
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\""
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}
