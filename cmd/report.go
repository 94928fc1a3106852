package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/emedina/horas/internal/store"
	"github.com/emedina/horas/internal/timecalc"
)

var reportFormat string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show total hours aggregated by name",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")
}

func runReport(cmd *cobra.Command, args []string) error {
	path, err := store.DefaultPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	records := successfulRecords(store.New(path).List())

	// Aggregate hours by name.
	totals := map[string]float64{}
	var order []string
	for _, r := range records {
		if _, seen := totals[r.Name]; !seen {
			order = append(order, r.Name)
		}
		totals[r.Name] += r.CalculatedHours
	}
	sort.Strings(order)

	var grandTotal float64
	for _, h := range totals {
		grandTotal += h
	}

	switch reportFormat {
	case "csv":
		fmt.Println("name,hours")
		for _, n := range order {
			fmt.Printf("%s,%s\n", csvEscape(n), timecalc.FormatHours(totals[n]))
		}
	case "json":
		fmt.Println("{")
		fmt.Println("  \"names\": [")
		for i, n := range order {
			comma := ","
			if i == len(order)-1 {
				comma = ""
			}
			fmt.Printf("    {\"name\": %q, \"hours\": %s}%s\n",
				n, timecalc.FormatHours(totals[n]), comma)
		}
		fmt.Println("  ],")
		fmt.Printf("  \"total_hours\": %s\n", timecalc.FormatHours(grandTotal))
		fmt.Println("}")
	default: // md
		fmt.Println("Hours by name")
		fmt.Println("--------------------------------")
		for _, n := range order {
			fmt.Printf("%-20s%s h\n", n, timecalc.FormatHours(totals[n]))
		}
		fmt.Println("--------------------------------")
		fmt.Printf("%-20s%s h\n", "Total", timecalc.FormatHours(grandTotal))
	}

	return nil
}
