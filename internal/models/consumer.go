package models

import "time"

// Consumer: the organisation (hospital, campus, plant) that owns the
// assets and stock. Every engine call is scoped to one consumer.
type Consumer struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	Address   string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
