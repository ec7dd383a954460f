package models

// Space is a named grouping bucket ("Personal", "Escuela", "Trabajo") scoped
// to one owner. Spaces are created implicitly the first time a client names
// one; the (owner_id, name) unique index backs the get-or-create race.
type Space struct {
	ID      string `gorm:"primaryKey;size:50"`
	OwnerID uint   `gorm:"not null;uniqueIndex:idx_spaces_owner_name"`
	Name    string `gorm:"size:50;not null;uniqueIndex:idx_spaces_owner_name"`
	Color   string `gorm:"size:20"`

	SyncFields

	Owner User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
