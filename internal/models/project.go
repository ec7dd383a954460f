package models

import "time"

type Project struct {
	ID      string `gorm:"primaryKey;size:50"`
	OwnerID uint   `gorm:"not null;index"`
	SpaceID string `gorm:"size:50;not null;index"`

	Title       string `gorm:"size:100;not null"`
	Description string
	Color       string     `gorm:"size:20"`
	DueDate     *time.Time `gorm:"type:date"`
	Progress    int        `gorm:"not null;default:0"`
	Etiquetas   string     `gorm:"size:200"` // comma-separated tags
	IsActive    bool       `gorm:"not null;default:true"`

	SyncFields

	Owner User  `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Space Space `gorm:"foreignKey:SpaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
