package models

// Clase is a recurring class block on the weekly schedule.
type Clase struct {
	ID      string `gorm:"primaryKey;size:50"`
	OwnerID uint   `gorm:"not null;index"`
	SpaceID string `gorm:"size:50;not null;index"`

	Materia    string `gorm:"size:150;not null"`
	Profesor   string `gorm:"size:150"`
	Salon      string `gorm:"size:120"`
	DiaSemana  int    `gorm:"not null"`        // 0-6
	HoraInicio string `gorm:"size:8;not null"` // HH:MM
	HoraFin    string `gorm:"size:8;not null"`
	Color      string `gorm:"size:20"`

	SyncFields

	Owner User  `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Space Space `gorm:"foreignKey:SpaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
