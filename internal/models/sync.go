package models

import "time"

// SyncFields carries the change-tracking columns every owned resource
// embeds. Version starts at 1 and is bumped on every write; Deleted is a
// tombstone for offline clients, not a server-side filter.
type SyncFields struct {
	Version   int  `gorm:"not null;default:1"`
	Deleted   bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
