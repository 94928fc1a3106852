package model

// Record status values. A record is only ever persisted as StatusSuccess;
// the other two exist transiently while a submission is in flight.
const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusError   = "error"
)

// Record represents a single logged work period.
type Record struct {
	ID              string  `json:"id"`
	StartDate       string  `json:"startDate"` // YYYY-MM-DD
	EndDate         string  `json:"endDate"`   // YYYY-MM-DD
	StartTime       string  `json:"startTime"` // HH:MM, 24h
	EndTime         string  `json:"endTime"`   // HH:MM, 24h
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Observations    string  `json:"observations,omitempty"`
	CalculatedHours float64 `json:"calculatedHours"`
	Status          string  `json:"status"`
	Timestamp       string  `json:"timestamp"` // RFC 3339 creation instant
}

// Draft holds the user-entered fields of a record before submission.
// ID, status and timestamp are assigned by the submission coordinator.
type Draft struct {
	StartDate       string `validate:"required,datetime=2006-01-02"`
	EndDate         string `validate:"required,datetime=2006-01-02"`
	StartTime       string `validate:"required,datetime=15:04"`
	EndTime         string `validate:"required,datetime=15:04"`
	Name            string `validate:"required"`
	Description     string `validate:"required"`
	Observations    string
	CalculatedHours float64 `validate:"gte=0"`
}
