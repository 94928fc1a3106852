package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/emedina/horas/internal/config"
	"github.com/emedina/horas/internal/model"
	"github.com/emedina/horas/internal/sheets"
	"github.com/emedina/horas/internal/store"
	"github.com/emedina/horas/internal/submit"
	"github.com/emedina/horas/internal/timecalc"
)

var (
	addStartDate    string
	addEndDate      string
	addStartTime    string
	addEndTime      string
	addName         string
	addDescription  string
	addObservations string
	addHours        string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a new work period to the sheet",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addStartDate, "start-date", "", "Start date (YYYY-MM-DD); defaults to today")
	addCmd.Flags().StringVar(&addEndDate, "end-date", "", "End date (YYYY-MM-DD); defaults to the start date")
	addCmd.Flags().StringVar(&addStartTime, "start-time", "", "Start time (HH:MM); defaults to now")
	addCmd.Flags().StringVar(&addEndTime, "end-time", "", "End time (HH:MM); defaults to one hour after the start")
	addCmd.Flags().StringVar(&addName, "name", "", "Category / author name (Nombre)")
	addCmd.Flags().StringVar(&addDescription, "description", "", "Activity description (Actuación)")
	addCmd.Flags().StringVar(&addObservations, "observations", "", "Optional free-text notes")
	addCmd.Flags().StringVar(&addHours, "hours", "", "Manual hours override (comma or dot decimals); skips the calculation")
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	now := time.Now()

	if addStartDate == "" {
		addStartDate = now.Format("2006-01-02")
	}
	if addStartTime == "" {
		addStartTime = now.Format("15:04")
	}
	addEndDate, addEndTime, err = applyEndDefaults(addStartDate, addStartTime, addEndDate, addEndTime)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if addName == "" {
		addName = cfg.Sheet.DefaultName
	}

	var hours float64
	if addHours != "" {
		hours = timecalc.ParseManualHours(addHours)
	} else {
		hours, err = timecalc.ElapsedHours(addStartDate, addStartTime, addEndDate, addEndTime)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	path, err := store.DefaultPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	client := sheets.NewClient(cfg.Sheet.ScriptURL, sheets.ParseMode(cfg.Sheet.Mode))
	coordinator := submit.New(store.New(path), client)

	draft := model.Draft{
		StartDate:       addStartDate,
		EndDate:         addEndDate,
		StartTime:       addStartTime,
		EndTime:         addEndTime,
		Name:            addName,
		Description:     addDescription,
		Observations:    addObservations,
		CalculatedHours: hours,
	}

	fmt.Printf("Submitting %s %s–%s %s (%s h)...\n",
		timecalc.FormatDisplayDate(addStartDate), addStartTime,
		timecalc.FormatDisplayDate(addEndDate), addEndTime,
		timecalc.FormatHours(hours))

	rec, err := coordinator.Create(context.Background(), draft)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Added record %s for %q (%s h)\n", rec.ID, rec.Name, timecalc.FormatHours(rec.CalculatedHours))
	return nil
}

// applyEndDefaults fills empty end fields anchored to the start instant, so
// a backdated start still defaults to a one-hour period instead of running
// until today. An end time without an end date stays on the start date.
func applyEndDefaults(startDate, startTime, endDate, endTime string) (string, string, error) {
	if endDate != "" && endTime != "" {
		return endDate, endTime, nil
	}

	start, err := timecalc.ParseDateTime(startDate, startTime)
	if err != nil {
		return "", "", err
	}
	later := start.Add(time.Hour)

	if endDate == "" {
		if endTime == "" {
			endDate = later.Format("2006-01-02")
		} else {
			endDate = startDate
		}
	}
	if endTime == "" {
		endTime = later.Format("15:04")
	}
	return endDate, endTime, nil
}
