package models

import "time"

// Supplier: vendor assets and stock are bought from / returned to.
type Supplier struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Email     string `gorm:"size:100"`
	Phone     string `gorm:"size:30"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
