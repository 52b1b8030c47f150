package models

import "time"

// Collection represents the collections table used by the SQL record
// store drivers: one row per named JSON document.
type Collection struct {
	Name      string    `gorm:"primaryKey;size:191" json:"name"`
	Payload   []byte    `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Collection) TableName() string {
	return "collections"
}
