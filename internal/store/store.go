package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Saiganesh18787/catalog-management-system/internal/domain"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// Collection keys. Each key holds the full JSON snapshot of one logical
// collection; there are no row-level operations.
const (
	CollectionProducts   = "all_products"
	CollectionSales      = "daily_sales"
	CollectionSettings   = "app_settings"
	CollectionEvents     = "calendar_events"
	CollectionAccessLogs = "access_logs"
	CollectionBills      = "bills"
)

// Collections lists every collection key, in reporting order.
func Collections() []string {
	return []string{
		CollectionProducts,
		CollectionSales,
		CollectionSettings,
		CollectionEvents,
		CollectionAccessLogs,
		CollectionBills,
	}
}

const bucketName = "collections"

// Store is the durable key-value snapshot store. Reads fail soft: any
// storage or decoding failure resolves to the collection's documented
// default and is logged, never returned to the caller. Writes overwrite the
// whole snapshot and return their error so callers can observe (and log) a
// dropped write without changing their in-memory state.
type Store struct {
	db     *bolt.DB
	logger *zap.Logger
}

// Open opens (creating if necessary) the store file at path.
func Open(path string, logger *zap.Logger) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize store bucket: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying store file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the location of the store file.
func (s *Store) Path() string {
	return s.db.Path()
}

// raw returns the stored snapshot bytes for a collection, or nil when the
// collection has never been written.
func (s *Store) raw(collection string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(collection)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	return data, err
}

// read decodes a collection snapshot into out. It reports whether out was
// populated; on any failure it logs and reports false so the caller falls
// back to the collection default.
func (s *Store) read(ctx context.Context, collection string, out interface{}) bool {
	if err := ctx.Err(); err != nil {
		s.logger.Warn("Read canceled", zap.String("collection", collection), zap.Error(err))
		return false
	}

	data, err := s.raw(collection)
	if err != nil {
		s.logger.Error("Failed to read collection",
			zap.String("collection", collection),
			zap.Error(err),
		)
		return false
	}
	if data == nil {
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Error("Corrupt collection snapshot",
			zap.String("collection", collection),
			zap.Error(err),
		)
		return false
	}
	return true
}

// write replaces a collection snapshot atomically.
func (s *Store) write(ctx context.Context, collection string, v interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s snapshot: %w", collection, err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		return b.Put([]byte(collection), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s snapshot: %w", collection, err)
	}
	return nil
}

// Products returns the product catalog, or an empty catalog when the
// snapshot is missing or unreadable.
func (s *Store) Products(ctx context.Context) []domain.Product {
	var products []domain.Product
	if !s.read(ctx, CollectionProducts, &products) || products == nil {
		return []domain.Product{}
	}
	return products
}

// SaveProducts replaces the whole product catalog snapshot.
func (s *Store) SaveProducts(ctx context.Context, products []domain.Product) error {
	return s.write(ctx, CollectionProducts, products)
}

// Sales returns the daily sales ledger, or an empty ledger.
func (s *Store) Sales(ctx context.Context) domain.SalesLedger {
	var sales domain.SalesLedger
	if !s.read(ctx, CollectionSales, &sales) || sales == nil {
		return domain.SalesLedger{}
	}
	return sales
}

// SaveSales replaces the whole sales ledger snapshot.
func (s *Store) SaveSales(ctx context.Context, sales domain.SalesLedger) error {
	return s.write(ctx, CollectionSales, sales)
}

// Settings returns the application settings, or the documented defaults.
func (s *Store) Settings(ctx context.Context) domain.Settings {
	settings := domain.DefaultSettings()
	if !s.read(ctx, CollectionSettings, &settings) {
		return domain.DefaultSettings()
	}
	return settings
}

// SaveSettings replaces the settings snapshot.
func (s *Store) SaveSettings(ctx context.Context, settings domain.Settings) error {
	return s.write(ctx, CollectionSettings, settings)
}

// Events returns the calendar events, or an empty map.
func (s *Store) Events(ctx context.Context) domain.EventMap {
	var events domain.EventMap
	if !s.read(ctx, CollectionEvents, &events) || events == nil {
		return domain.EventMap{}
	}
	return events
}

// SaveEvents replaces the calendar events snapshot.
func (s *Store) SaveEvents(ctx context.Context, events domain.EventMap) error {
	return s.write(ctx, CollectionEvents, events)
}

// AccessLogs returns the audit trail, newest-first, or an empty trail.
func (s *Store) AccessLogs(ctx context.Context) []domain.AccessLogEntry {
	var logs []domain.AccessLogEntry
	if !s.read(ctx, CollectionAccessLogs, &logs) || logs == nil {
		return []domain.AccessLogEntry{}
	}
	return logs
}

// SaveAccessLogs replaces the audit trail snapshot.
func (s *Store) SaveAccessLogs(ctx context.Context, logs []domain.AccessLogEntry) error {
	return s.write(ctx, CollectionAccessLogs, logs)
}

// Bills returns the expense bills, or an empty list.
func (s *Store) Bills(ctx context.Context) []domain.Bill {
	var bills []domain.Bill
	if !s.read(ctx, CollectionBills, &bills) || bills == nil {
		return []domain.Bill{}
	}
	return bills
}

// SaveBills replaces the bills snapshot.
func (s *Store) SaveBills(ctx context.Context, bills []domain.Bill) error {
	return s.write(ctx, CollectionBills, bills)
}
