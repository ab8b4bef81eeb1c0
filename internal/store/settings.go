package store

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pathakanu/phtReminder/internal/model"
	"go.uber.org/zap"
)

// SettingsStore loads and saves the settings record.
type SettingsStore struct {
	kv     KV
	logger *zap.SugaredLogger
}

// NewSettingsStore creates a SettingsStore on top of kv.
func NewSettingsStore(kv KV, logger *zap.SugaredLogger) *SettingsStore {
	return &SettingsStore{kv: kv, logger: logger}
}

// Load returns the persisted settings, or model.DefaultSettings when the
// record is missing, unreadable or invalid.
func (s *SettingsStore) Load(ctx context.Context) model.Settings {
	raw, ok, err := s.kv.Get(ctx, SettingsKey)
	if err != nil {
		s.logger.Warnw("settings: read failed, using defaults", "error", err)
		return model.DefaultSettings()
	}
	if !ok {
		return model.DefaultSettings()
	}

	var settings model.Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		s.logger.Warnw("settings: corrupt record, using defaults", "error", err)
		return model.DefaultSettings()
	}
	if err := settings.Validate(); err != nil {
		s.logger.Warnw("settings: invalid record, using defaults", "error", err)
		return model.DefaultSettings()
	}
	return settings
}

// Save overwrites the persisted settings.
func (s *SettingsStore) Save(ctx context.Context, settings model.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return goerr.Wrap(err, "failed to encode settings")
	}
	return s.kv.Put(ctx, SettingsKey, string(raw))
}
