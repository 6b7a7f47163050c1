package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/lehigh-university-libraries/proofreader/internal/models"
)

// ErrRevisionMismatch is returned when a commit was prepared against a
// revision that is no longer current.
var ErrRevisionMismatch = errors.New("page revision changed")

// PageStore persists page records.
type PageStore interface {
	// Get returns the record of title, or nil when the page was never saved.
	Get(ctx context.Context, title string) (*models.PageRecord, error)
	// Commit stores record if the current revision of the page is still
	// expectedRevision ("" for a page that does not exist yet).
	Commit(ctx context.Context, record *models.PageRecord, expectedRevision string) error
	// List returns every record ordered by title.
	List(ctx context.Context) ([]*models.PageRecord, error)
	Close() error
}

// Open returns the store named by kind: "memory" or "badger"
func Open(kind, stateDir string, logger *slog.Logger) (PageStore, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "badger":
		return NewBadgerStore(stateDir, logger)
	default:
		return nil, fmt.Errorf("unknown store type %q", kind)
	}
}

// MemoryStore keeps page records in memory
type MemoryStore struct {
	pages map[string]*models.PageRecord
	mu    sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pages: make(map[string]*models.PageRecord),
	}
}

func (s *MemoryStore) Get(_ context.Context, title string) (*models.PageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page, exists := s.pages[title]
	if !exists {
		return nil, nil
	}
	clone := *page
	return &clone, nil
}

func (s *MemoryStore) Commit(_ context.Context, record *models.PageRecord, expectedRevision string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkRevision(s.pages[record.Title], expectedRevision); err != nil {
		return err
	}
	clone := *record
	s.pages[record.Title] = &clone
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]*models.PageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.PageRecord, 0, len(s.pages))
	for _, v := range s.pages {
		clone := *v
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return result, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func checkRevision(current *models.PageRecord, expected string) error {
	currentRevision := ""
	if current != nil {
		currentRevision = current.RevisionID
	}
	if currentRevision != expected {
		return ErrRevisionMismatch
	}
	return nil
}
