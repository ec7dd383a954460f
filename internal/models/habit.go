package models

import "time"

type Habit struct {
	ID      string  `gorm:"primaryKey;size:50"`
	OwnerID uint    `gorm:"not null;index"`
	SpaceID *string `gorm:"size:50;index"`

	Name        string `gorm:"size:100;not null"`
	Color       string `gorm:"size:20"`
	GoalPerWeek int    `gorm:"not null;default:7"`

	SyncFields

	Owner User       `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Space *Space     `gorm:"foreignKey:SpaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Logs  []HabitLog `gorm:"foreignKey:HabitID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// HabitLog rows exist only through the reconciliation engine; at most one
// log per calendar date per habit.
type HabitLog struct {
	ID      string    `gorm:"primaryKey;size:50"`
	HabitID string    `gorm:"size:50;not null;uniqueIndex:idx_habit_logs_habit_date"`
	Date    time.Time `gorm:"type:date;not null;uniqueIndex:idx_habit_logs_habit_date"`
	Done    bool      `gorm:"not null"`
	Note    string    `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
