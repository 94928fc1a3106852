package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/emedina/horas/internal/model"
)

// Store persists the ordered record list, newest first, in a single JSON
// file. It is not safe for concurrent mutation; the submission coordinator
// is its only writer.
type Store struct {
	path string
}

// New creates a Store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// BaseDir returns the root data directory (~/.horas).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".horas"), nil
}

// DefaultPath returns the default record file path (~/.horas/records.json).
func DefaultPath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "records.json"), nil
}

// List returns the full record sequence, newest first. A missing or corrupt
// file yields an empty sequence; a corrupt file is backed up alongside the
// original so nothing is lost silently.
func (s *Store) List() []model.Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return []model.Record{}
	}

	var records []model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		_ = os.Rename(s.path, s.path+".corrupt")
		return []model.Record{}
	}
	return records
}

// Append inserts a record at the head of the sequence and persists it.
// A record whose ID is already present is rejected.
func (s *Store) Append(rec model.Record) error {
	records := s.List()
	for _, r := range records {
		if r.ID == rec.ID {
			return fmt.Errorf("duplicate record id %q", rec.ID)
		}
	}
	return s.save(append([]model.Record{rec}, records...))
}

// Remove deletes the record with the given ID if present. Removing an
// absent ID is a no-op, not an error.
func (s *Store) Remove(id string) error {
	records := s.List()
	kept := records[:0]
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return nil
	}
	return s.save(kept)
}

// save atomically writes the record sequence: write to a temp file, then
// rename over the target.
func (s *Store) save(records []model.Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}
