package models

import "time"

// Department: an organisational unit that stock gets issued to.
type Department struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:100;not null"`
	ConsumerID uint   `gorm:"index;not null"`
	Consumer   Consumer
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
