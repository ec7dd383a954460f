package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Gasto is a single expense entry.
type Gasto struct {
	ID      string `gorm:"primaryKey;size:50"`
	OwnerID uint   `gorm:"not null;index"`
	SpaceID string `gorm:"size:50;not null;index"`

	Descripcion string          `gorm:"size:200;not null"`
	Categoria   string          `gorm:"size:60"`
	Fecha       time.Time       `gorm:"type:date;not null"`
	Monto       decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	SyncFields

	Owner User  `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Space Space `gorm:"foreignKey:SpaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// Presupuesto is the monthly budget for a space. One row per
// (owner, space, mes, anio); creating over an existing period updates the
// amount in place.
type Presupuesto struct {
	ID      string `gorm:"primaryKey;size:50"`
	OwnerID uint   `gorm:"not null;uniqueIndex:idx_presupuestos_period"`
	SpaceID string `gorm:"size:50;not null;uniqueIndex:idx_presupuestos_period"`

	Mes   int             `gorm:"not null;uniqueIndex:idx_presupuestos_period"`
	Anio  int             `gorm:"not null;uniqueIndex:idx_presupuestos_period"`
	Monto decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	SyncFields

	Owner User  `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Space Space `gorm:"foreignKey:SpaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
