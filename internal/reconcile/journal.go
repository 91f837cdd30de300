// Package reconcile records checkout commit failures for manual follow-up.
// A commit failure is the one genuinely dangerous checkout outcome: payment
// has been captured but the order was not fully recorded, so every such
// failure must land somewhere durable that an operator actually looks at.
package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"jewelkart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Entry is one commit failure awaiting manual reconciliation.
type Entry struct {
	OrderID    uuid.UUID         `json:"orderId"`
	UserID     string            `json:"userId"`
	Email      string            `json:"email,omitempty"`
	Total      string            `json:"total"`
	Lines      []model.CartLine  `json:"lines"`
	FailedAt   time.Time         `json:"failedAt"`
	FailureMsg string            `json:"failureMsg"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Journal persists reconciliation entries.
type Journal interface {
	Record(ctx context.Context, entry Entry) error
}

// fileJournal implements Journal on the local file system, one JSON file per
// entry.
type fileJournal struct {
	dir    string
	logger zerolog.Logger
}

// NewFileJournal creates a journal writing to a local directory.
func NewFileJournal(dir string, logger zerolog.Logger) Journal {
	return &fileJournal{
		dir:    dir,
		logger: logger.With().Str("component", "file-reconcile-journal").Logger(),
	}
}

// Record writes the entry as <dir>/<orderID>.json.
func (j *fileJournal) Record(ctx context.Context, entry Entry) error {
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create reconcile directory %s: %w", j.dir, err)
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode reconcile entry: %w", err)
	}

	path := filepath.Join(j.dir, entry.OrderID.String()+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write reconcile entry %s: %w", path, err)
	}

	j.logger.Error().
		Str("order_id", entry.OrderID.String()).
		Str("user_id", entry.UserID).
		Str("path", path).
		Msg("commit failure journaled for manual reconciliation")

	return nil
}
