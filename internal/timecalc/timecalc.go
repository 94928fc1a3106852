package timecalc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// NewID creates a unique record ID.
func NewID() string {
	return uuid.NewString()
}

// ParseDateTime composes a calendar date (YYYY-MM-DD) and a wall-clock time
// (HH:MM) into a single instant in the local timezone.
func ParseDateTime(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout+" "+clockLayout, date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, clock, err)
	}
	return t, nil
}

// ElapsedHours returns the hours between start and end, rounded to 2 decimal
// places. An end at or before the start yields 0; it is not an error.
func ElapsedHours(startDate, startTime, endDate, endTime string) (float64, error) {
	start, err := ParseDateTime(startDate, startTime)
	if err != nil {
		return 0, err
	}
	end, err := ParseDateTime(endDate, endTime)
	if err != nil {
		return 0, err
	}
	if !end.After(start) {
		return 0, nil
	}
	return Round2(float64(end.Sub(start).Milliseconds()) / 3_600_000), nil
}

// ParseManualHours parses a manually entered hours value, accepting either a
// comma or a dot as the decimal separator. Empty, unparseable or negative
// input parses to 0.
func ParseManualHours(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	h, err := strconv.ParseFloat(s, 64)
	if err != nil || h < 0 {
		return 0
	}
	return Round2(h)
}

// Round2 rounds to 2 decimal places.
func Round2(h float64) float64 {
	return math.Round(h*100) / 100
}

// FormatRegistration formats a creation instant as "D-M-YYYY HH:MM" for the
// sheet's F. Registro column. Day and month carry no zero padding.
func FormatRegistration(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d %02d:%02d", t.Day(), int(t.Month()), t.Year(), t.Hour(), t.Minute())
}

// FormatDisplayDate reformats an ISO date as DD-MM-YYYY for display.
// Anything that is not a plain ISO date is returned unchanged.
func FormatDisplayDate(iso string) string {
	t, err := time.Parse(dateLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format("02-01-2006")
}

// FormatDisplayTimestamp reformats an RFC 3339 instant as "DD-MM-YYYY HH:MM"
// for display. Unparseable input is returned unchanged.
func FormatDisplayTimestamp(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format("02-01-2006 15:04")
}

// FormatHours renders an hours value with 2 decimal places.
func FormatHours(h float64) string {
	return strconv.FormatFloat(Round2(h), 'f', 2, 64)
}
