// Package submit orchestrates record creation and deletion: it assigns
// identifiers and timestamps, calls the remote sheet, and reconciles the
// local record store only after the remote call resolves.
package submit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/emedina/horas/internal/model"
	"github.com/emedina/horas/internal/timecalc"
)

// RemoteClient is the outbound interface to the spreadsheet endpoint.
type RemoteClient interface {
	SubmitCreate(ctx context.Context, rec model.Record) error
	SubmitDelete(ctx context.Context, id string) error
}

// RecordStore is the local persistence port mutated by the coordinator.
type RecordStore interface {
	Append(rec model.Record) error
	Remove(id string) error
	List() []model.Record
}

// Coordinator is the single writer of the record store. Local mutation
// happens strictly after the corresponding remote call succeeds, so a failed
// submission leaves the store exactly as it was.
type Coordinator struct {
	store    RecordStore
	client   RemoteClient
	validate *validator.Validate

	now   func() time.Time
	newID func() string
}

// New creates a Coordinator over the given store and remote client.
func New(store RecordStore, client RemoteClient) *Coordinator {
	return &Coordinator{
		store:    store,
		client:   client,
		validate: validator.New(),
		now:      time.Now,
		newID:    timecalc.NewID,
	}
}

// Create validates a draft, submits it to the sheet and, on confirmation,
// appends the finished record to the local store. The returned record
// carries the assigned ID, timestamp and final status.
func (c *Coordinator) Create(ctx context.Context, d model.Draft) (model.Record, error) {
	if err := c.validate.Struct(d); err != nil {
		return model.Record{}, fmt.Errorf("invalid record: %w", err)
	}

	rec := model.Record{
		ID:              c.newID(),
		StartDate:       d.StartDate,
		EndDate:         d.EndDate,
		StartTime:       d.StartTime,
		EndTime:         d.EndTime,
		Name:            d.Name,
		Description:     d.Description,
		Observations:    d.Observations,
		CalculatedHours: timecalc.Round2(d.CalculatedHours),
		Status:          model.StatusPending,
		Timestamp:       c.now().Format(time.RFC3339),
	}

	if err := c.client.SubmitCreate(ctx, rec); err != nil {
		return model.Record{}, fmt.Errorf("adding record to the sheet: %w", err)
	}

	rec.Status = model.StatusSuccess
	if err := c.store.Append(rec); err != nil {
		return model.Record{}, fmt.Errorf("saving local copy: %w", err)
	}
	return rec, nil
}

// Delete removes a record from the sheet and then from the local store.
// When the remote call fails the local copy is left untouched; the two
// stores may then disagree, which is tolerated rather than reconciled.
func (c *Coordinator) Delete(ctx context.Context, id string) error {
	if err := c.client.SubmitDelete(ctx, id); err != nil {
		return fmt.Errorf("deleting record from the sheet: %w", err)
	}
	if err := c.store.Remove(id); err != nil {
		return fmt.Errorf("removing local copy: %w", err)
	}
	return nil
}
