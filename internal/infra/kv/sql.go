package kv

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is the row layout of the SQL backend.
type Record struct {
	Key       string    `gorm:"column:entry_key;primaryKey;size:191"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Record) TableName() string { return "kv_entries" }

// SQLStore implements Store on top of a GORM connection (Postgres or SQLite).
// The caller owns migrations; see database.Open.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var rec Record
	if err := s.db.WithContext(ctx).First(&rec, "entry_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec.Value, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	return s.SetAll(ctx, []Entry{{Key: key, Value: value}})
}

func (s *SQLStore) SetAll(ctx context.Context, entries []Entry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			row := Record{Key: e.Key, Value: e.Value, UpdatedAt: time.Now().UTC()}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "entry_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLStore) SetIf(ctx context.Context, key string, value []byte, cond func([]byte) bool) (bool, error) {
	var wrote bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec Record
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rec, "entry_key = ?", key).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if !cond(nil) {
				return nil
			}
			// a concurrent insert wins
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&Record{Key: key, Value: value, UpdatedAt: time.Now().UTC()})
			wrote = res.RowsAffected > 0
			return res.Error
		}
		if err != nil {
			return err
		}
		if !cond(rec.Value) {
			return nil
		}
		wrote = true
		return tx.Model(&Record{}).Where("entry_key = ?", key).
			Updates(map[string]interface{}{"value": value, "updated_at": time.Now().UTC()}).Error
	})
	if err != nil {
		return false, err
	}
	return wrote, nil
}
