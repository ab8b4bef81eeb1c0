package store

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pathakanu/phtReminder/internal/model"
	"go.uber.org/zap"
)

// HistoryStore loads and saves the reminder history record.
type HistoryStore struct {
	kv     KV
	logger *zap.SugaredLogger
}

// NewHistoryStore creates a HistoryStore on top of kv.
func NewHistoryStore(kv KV, logger *zap.SugaredLogger) *HistoryStore {
	return &HistoryStore{kv: kv, logger: logger}
}

// Load returns the persisted history, newest first. A missing or corrupt
// record yields an empty history; an oversized one is truncated.
func (h *HistoryStore) Load(ctx context.Context) []model.Reminder {
	raw, ok, err := h.kv.Get(ctx, HistoryKey)
	if err != nil {
		h.logger.Warnw("history: read failed, starting empty", "error", err)
		return []model.Reminder{}
	}
	if !ok {
		return []model.Reminder{}
	}

	var history []model.Reminder
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		h.logger.Warnw("history: corrupt record, starting empty", "error", err)
		return []model.Reminder{}
	}
	if history == nil {
		return []model.Reminder{}
	}
	if len(history) > model.MaxHistory {
		history = history[:model.MaxHistory]
	}
	return history
}

// Save overwrites the persisted history.
func (h *HistoryStore) Save(ctx context.Context, history []model.Reminder) error {
	if history == nil {
		history = []model.Reminder{}
	}
	raw, err := json.Marshal(history)
	if err != nil {
		return goerr.Wrap(err, "failed to encode history", goerr.V("entries", len(history)))
	}
	return h.kv.Put(ctx, HistoryKey, string(raw))
}

// Clear persists an empty history.
func (h *HistoryStore) Clear(ctx context.Context) error {
	return h.Save(ctx, []model.Reminder{})
}
