package models

import "time"

// Task identifiers are client-supplied opaque strings (usually a millisecond
// epoch timestamp stringified on the way in).
type Task struct {
	ID        string  `gorm:"primaryKey;size:50"`
	OwnerID   uint    `gorm:"not null;index"`
	SpaceID   string  `gorm:"size:50;not null;index"`
	ProjectID *string `gorm:"size:50;index"`

	Title string `gorm:"size:200;not null"`
	Notes string

	// Timing
	Date        time.Time `gorm:"type:date;not null"`
	StartTime   *string   `gorm:"size:8"` // HH:MM
	EndTime     *string   `gorm:"size:8"`
	DurationMin int       `gorm:"not null;default:60"`

	// Metadata
	Location string `gorm:"size:100"`
	Tag      string `gorm:"size:50"`
	Color    string `gorm:"size:20"`

	Status string `gorm:"size:20;not null"` // todo, done

	SyncFields

	Owner   User     `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Space   Space    `gorm:"foreignKey:SpaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
