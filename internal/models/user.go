package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Username     string `gorm:"uniqueIndex;not null"`
	Nombre       string `gorm:"size:150"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`

	// Engagement counters
	Streak          int        `gorm:"not null;default:0"`
	LastLoginStreak *time.Time `gorm:"type:date"`
	EnergyLevel     int        `gorm:"not null;default:100"`

	// Free-form client settings (theme, habit ordering, etc.)
	Preferences datatypes.JSON

	// Relationships
	Spaces       []Space       `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tasks        []Task        `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Projects     []Project     `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Habits       []Habit       `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Gastos       []Gasto       `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Presupuestos []Presupuesto `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Clases       []Clase       `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
