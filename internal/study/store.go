package study

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/iamsernine/python-to-do-list/internal/codec"
	"github.com/iamsernine/python-to-do-list/internal/models"
)

// StorageKey is the fixed identifier the study plan is persisted under.
const StorageKey = "python-study-todos"

// Store persists the whole study plan as one serialized blob in the
// study_state key-value table.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load reads the saved plan. When no saved state exists yet, the fixed seed
// curriculum is returned. An unreadable blob also falls back to the seed so a
// corrupted row never makes the app unusable.
func (s *Store) Load() ([]models.StudyItem, error) {
	var blob string
	err := s.db.QueryRow(
		`SELECT value FROM study_state WHERE key = $1`,
		StorageKey,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return seedCopy(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}

	items, err := codec.UnmarshalJSON(blob)
	if err != nil {
		log.Printf("[store] saved plan unreadable, falling back to seed: %v", err)
		return seedCopy(), nil
	}
	return items, nil
}

// Save upserts the full plan under the fixed key.
func (s *Store) Save(items []models.StudyItem) error {
	blob, err := codec.MarshalJSON(items)
	if err != nil {
		return fmt.Errorf("save plan: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO study_state (key, value, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		StorageKey, blob,
	)
	if err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

func seedCopy() []models.StudyItem {
	items := make([]models.StudyItem, len(models.SeedItems))
	copy(items, models.SeedItems)
	return items
}
