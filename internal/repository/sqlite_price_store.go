package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"FinVault/internal/domain/models"
	"FinVault/internal/domain/repository"
	applogger "FinVault/pkg/logger"
	"FinVault/pkg/util"
)

// SQLitePriceStore implements PriceStore with one table per instrument,
// keyed by calendar date.
type SQLitePriceStore struct {
	db *sql.DB
	l  *applogger.Logger

	mu     sync.Mutex
	keyMus map[string]*sync.Mutex
	tables map[string]bool
}

func NewSQLitePriceStore(db *sql.DB) *SQLitePriceStore {
	return &SQLitePriceStore{
		db:     db,
		l:      applogger.Nop(),
		keyMus: make(map[string]*sync.Mutex),
		tables: make(map[string]bool),
	}
}

var _ repository.PriceStore = (*SQLitePriceStore)(nil)

// SetLogger injects a structured logger.
func (s *SQLitePriceStore) SetLogger(l *applogger.Logger) {
	if l != nil {
		s.l = l
	}
}

func (s *SQLitePriceStore) Upsert(ctx context.Context, rec models.PriceRecord) (models.UpsertResult, error) {
	if err := rec.Validate(); err != nil {
		return models.UpsertInserted, err
	}
	table, err := quoteTable(rec.InstrumentKey)
	if err != nil {
		return models.UpsertInserted, err
	}

	unlock := s.lockKey(rec.InstrumentKey)
	defer unlock()

	if err := s.ensureTable(ctx, rec.InstrumentKey, table); err != nil {
		return models.UpsertInserted, err
	}

	day := util.FormatDate(rec.Date)
	q := fmt.Sprintf(`INSERT INTO %s (date, price) VALUES (?, ?) ON CONFLICT(date) DO NOTHING`, table)
	res, err := s.db.ExecContext(ctx, q, day, rec.Price)
	if err != nil {
		s.l.Error("sqlite upsert error",
			applogger.String("instrument", rec.InstrumentKey),
			applogger.String("date", day),
			applogger.Error(err),
		)
		return models.UpsertInserted, models.StorageError("insert "+rec.InstrumentKey, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.UpsertInserted, models.StorageError("rows affected "+rec.InstrumentKey, err)
	}
	if n == 0 {
		return models.UpsertAlreadyPresent, nil
	}
	return models.UpsertInserted, nil
}

func (s *SQLitePriceStore) ReadRange(ctx context.Context, key string, from time.Time) ([]models.PriceRecord, error) {
	table, err := quoteTable(key)
	if err != nil {
		return nil, err
	}
	exists, err := s.tableExists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []models.PriceRecord{}, nil
	}

	q := fmt.Sprintf(`SELECT date, price FROM %s WHERE date >= ? ORDER BY date ASC`, table)
	rows, err := s.db.QueryContext(ctx, q, util.FormatDate(from))
	if err != nil {
		return nil, models.StorageError("read "+key, err)
	}
	defer rows.Close()

	out := make([]models.PriceRecord, 0, 256)
	for rows.Next() {
		var (
			day   string
			price float64
		)
		if err := rows.Scan(&day, &price); err != nil {
			return nil, models.StorageError("scan "+key, err)
		}
		d, err := util.ParseDate(day)
		if err != nil {
			return nil, models.StorageError("scan "+key, err)
		}
		out = append(out, models.PriceRecord{InstrumentKey: key, Date: d, Price: price})
	}
	if err := rows.Err(); err != nil {
		return nil, models.StorageError("rows "+key, err)
	}
	return out, nil
}

func (s *SQLitePriceStore) DeleteOlderThan(ctx context.Context, key string, cutoff time.Time) (int64, error) {
	table, err := quoteTable(key)
	if err != nil {
		return 0, err
	}

	unlock := s.lockKey(key)
	defer unlock()

	exists, err := s.tableExists(ctx, key)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}

	q := fmt.Sprintf(`DELETE FROM %s WHERE date < ?`, table)
	res, err := s.db.ExecContext(ctx, q, util.FormatDate(cutoff))
	if err != nil {
		return 0, models.StorageError("delete "+key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, models.StorageError("rows affected "+key, err)
	}
	return n, nil
}

func (s *SQLitePriceStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close is a no-op; the handle belongs to pkg/sqlite.Client.
func (s *SQLitePriceStore) Close() error {
	return nil
}

func (s *SQLitePriceStore) lockKey(key string) func() {
	s.mu.Lock()
	m, ok := s.keyMus[key]
	if !ok {
		m = &sync.Mutex{}
		s.keyMus[key] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// ensureTable must be called with the key lock held.
func (s *SQLitePriceStore) ensureTable(ctx context.Context, key, table string) error {
	s.mu.Lock()
	done := s.tables[key]
	s.mu.Unlock()
	if done {
		return nil
	}

	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (date TEXT PRIMARY KEY, price REAL NOT NULL)`, table)
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return models.StorageError("create table "+key, err)
	}

	s.mu.Lock()
	s.tables[key] = true
	s.mu.Unlock()
	return nil
}

func (s *SQLitePriceStore) tableExists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	done := s.tables[key]
	s.mu.Unlock()
	if done {
		return true, nil
	}

	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, key).Scan(&name)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, models.StorageError("lookup table "+key, err)
	}

	s.mu.Lock()
	s.tables[key] = true
	s.mu.Unlock()
	return true, nil
}

func quoteTable(key string) (string, error) {
	if !models.ValidKey(key) {
		return "", fmt.Errorf("%w: invalid instrument key %q", models.ErrStorage, key)
	}
	return `"` + key + `"`, nil
}
