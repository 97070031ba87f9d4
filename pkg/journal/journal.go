// Package journal persists recorded hydration intake on disk so the CLI can
// compare the day's running total against the recommended amount.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// IntakeJournal is an append-only intake log rooted at a directory. One JSON
// file per day keeps reads cheap and pruning trivial.
type IntakeJournal struct {
	dir string
	now func() time.Time
}

// NewIntakeJournal creates a journal rooted at dir.
func NewIntakeJournal(dir string) *IntakeJournal {
	return &IntakeJournal{dir: dir, now: time.Now}
}

// Record appends an intake event for the user and returns the stored entry.
func (j *IntakeJournal) Record(userID string, amountML int) (models.HydrationEntry, error) {
	if amountML <= 0 {
		return models.HydrationEntry{}, fmt.Errorf("intake amount must be positive, got %d", amountML)
	}

	entry := models.NewHydrationEntry(userID, amountML, j.now())

	entries, err := j.Day(entry.RecordedAt)
	if err != nil {
		return models.HydrationEntry{}, err
	}
	entries = append(entries, entry)

	if err := os.MkdirAll(j.dir, 0755); err != nil {
		return models.HydrationEntry{}, fmt.Errorf("failed to create journal directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return models.HydrationEntry{}, fmt.Errorf("failed to marshal journal: %w", err)
	}
	if err := os.WriteFile(j.dayFile(entry.RecordedAt), data, 0644); err != nil {
		return models.HydrationEntry{}, fmt.Errorf("failed to write journal: %w", err)
	}
	return entry, nil
}

// Day returns all entries recorded on the given day, oldest first.
func (j *IntakeJournal) Day(day time.Time) ([]models.HydrationEntry, error) {
	data, err := os.ReadFile(j.dayFile(day))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	var entries []models.HydrationEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal journal: %w", err)
	}
	return entries, nil
}

// DayTotal sums the intake recorded for the user on the given day.
func (j *IntakeJournal) DayTotal(userID string, day time.Time) (int, error) {
	entries, err := j.Day(day)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, entry := range entries {
		if entry.UserID == userID {
			total += entry.AmountML
		}
	}
	return total, nil
}

func (j *IntakeJournal) dayFile(day time.Time) string {
	return filepath.Join(j.dir, "intake-"+day.Format("2006-01-02")+".json")
}
