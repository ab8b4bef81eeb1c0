package model

import "time"

// Record is a single persisted key/value pair. Settings and history each live
// under their own fixed key as JSON text.
type Record struct {
	Key       string    `gorm:"primaryKey;size:191"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
