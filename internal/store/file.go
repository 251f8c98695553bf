package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/transformlabs/pulse/pkg/models"
)

// FileStore keeps the event document on the local filesystem. It
// serves development and tests; deployments use the S3 store.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed event store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, EventsDocument)}
}

func (s *FileStore) Load(_ context.Context) ([]models.MarketingEvent, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.MarketingEvent{}, nil
		}
		return nil, fmt.Errorf("failed to load events document: %w", err)
	}

	var events []models.MarketingEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events document: %w", err)
	}
	return events, nil
}

func (s *FileStore) Save(_ context.Context, events []models.MarketingEvent) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode events document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	// Write-then-rename so a crashed save never leaves a truncated
	// document behind.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write events document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace events document: %w", err)
	}
	return nil
}

func (s *FileStore) Ping(_ context.Context) error {
	dir := filepath.Dir(s.path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("store directory unavailable: %w", err)
	}
	return nil
}
