package database

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pathakanu/phtReminder/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KV is a string key/value table on top of GORM.
type KV struct {
	db *gorm.DB
}

// NewKV wraps db. The records table must already be migrated.
func NewKV(db *gorm.DB) *KV {
	return &KV{db: db}
}

// Get returns the value stored under key. ok is false when the key is absent.
func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	var rec model.Record
	err := k.db.WithContext(ctx).Where(&model.Record{Key: key}).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, goerr.Wrap(err, "failed to read record", goerr.V("key", key))
	}
	return rec.Value, true, nil
}

// Put overwrites the value under key.
func (k *KV) Put(ctx context.Context, key, value string) error {
	rec := model.Record{Key: key, Value: value}
	err := k.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return goerr.Wrap(err, "failed to write record", goerr.V("key", key))
	}
	return nil
}
