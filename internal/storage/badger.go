package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/lehigh-university-libraries/proofreader/internal/models"
)

const (
	pageKeyPrefix = "page:"
	pagesDBDir    = "pages_db"

	maxConflictRetries = 10
)

// BadgerStore implements PageStore on an embedded BadgerDB
type BadgerStore struct {
	db  *badger.DB
	log *slog.Logger
}

// NewBadgerStore opens (or creates) the page database under stateDir
func NewBadgerStore(stateDir string, logger *slog.Logger) (*BadgerStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dbPath := filepath.Join(stateDir, pagesDBDir)
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory %s: %w", dbPath, err)
	}

	opts := badger.DefaultOptions(dbPath).
		WithLogger(newBadgerLogger(logger.With("component", "badgerdb"))).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database at %s: %w", dbPath, err)
	}

	logger.Info("Page database opened", "path", dbPath)
	return &BadgerStore{db: db, log: logger}, nil
}

// dbUpdate retries db.Update while badger reports a transaction conflict.
func (s *BadgerStore) dbUpdate(fn func(txn *badger.Txn) error) error {
	for i := range maxConflictRetries {
		err := s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		s.log.Debug("Badger transaction conflict, retrying", "attempt", i+1, "max", maxConflictRetries)
	}
	return fmt.Errorf("transaction conflict not resolved after %d retries", maxConflictRetries)
}

func (s *BadgerStore) Get(_ context.Context, title string) (*models.PageRecord, error) {
	var record *models.PageRecord
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		record, err = readRecord(txn, title)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read page %q: %w", title, err)
	}
	return record, nil
}

func (s *BadgerStore) Commit(_ context.Context, record *models.PageRecord, expectedRevision string) error {
	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode page %q: %w", record.Title, err)
	}

	err = s.dbUpdate(func(txn *badger.Txn) error {
		current, err := readRecord(txn, record.Title)
		if err != nil {
			return err
		}
		if err := checkRevision(current, expectedRevision); err != nil {
			return err
		}
		return txn.Set([]byte(pageKeyPrefix+record.Title), value)
	})
	if errors.Is(err, ErrRevisionMismatch) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to commit page %q: %w", record.Title, err)
	}
	return nil
}

func (s *BadgerStore) List(_ context.Context) ([]*models.PageRecord, error) {
	var records []*models.PageRecord
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(pageKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var record models.PageRecord
				if err := json.Unmarshal(val, &record); err != nil {
					return err
				}
				records = append(records, &record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	return records, nil
}

func (s *BadgerStore) Close() error {
	if s.db == nil || s.db.IsClosed() {
		return nil
	}
	if err := s.db.Close(); err != nil {
		s.log.Error("Error closing page database", "err", err)
		return err
	}
	return nil
}

func readRecord(txn *badger.Txn, title string) (*models.PageRecord, error) {
	item, err := txn.Get([]byte(pageKeyPrefix + title))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var record models.PageRecord
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &record)
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// badgerLogger routes badger's printf-style logging into slog
type badgerLogger struct {
	log *slog.Logger
}

func newBadgerLogger(logger *slog.Logger) *badgerLogger {
	return &badgerLogger{log: logger}
}

func (l *badgerLogger) Errorf(f string, v ...interface{})   { l.log.Error(fmt.Sprintf(f, v...)) }
func (l *badgerLogger) Warningf(f string, v ...interface{}) { l.log.Warn(fmt.Sprintf(f, v...)) }
func (l *badgerLogger) Infof(f string, v ...interface{})    { l.log.Info(fmt.Sprintf(f, v...)) }
func (l *badgerLogger) Debugf(f string, v ...interface{})   { l.log.Debug(fmt.Sprintf(f, v...)) }
