package models

import "time"

// WarrantyType - coverage kind
type WarrantyType string

const (
	WarrantyStandard WarrantyType = "STANDARD"
	WarrantyExtended WarrantyType = "EXTENDED"
)

func (t WarrantyType) Valid() bool {
	switch t {
	case WarrantyStandard, WarrantyExtended:
		return true
	}
	return false
}

// Warranty: coverage record tied to one asset. Only active rows take part
// in expiry bucketing.
type Warranty struct {
	ID         uint `gorm:"primaryKey"`
	AssetID    uint `gorm:"index;not null"`
	Asset      Asset
	ConsumerID uint `gorm:"index;not null"`
	Consumer   Consumer
	SupplierID *uint
	Supplier   *Supplier
	Type       WarrantyType `gorm:"type:varchar(20);not null"`
	StartDate  time.Time    `gorm:"not null"`
	EndDate    time.Time    `gorm:"index;not null"`
	IsActive   bool         `gorm:"not null;default:true;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
