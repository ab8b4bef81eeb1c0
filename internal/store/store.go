// Package store persists settings and reminder history as JSON records.
package store

import "context"

// Fixed keys of the two persisted records.
const (
	SettingsKey = "phtReminder.settings"
	HistoryKey  = "phtReminder.history"
)

// KV is the storage backend both stores write through.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}
