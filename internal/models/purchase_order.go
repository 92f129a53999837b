package models

import "time"

// PurchaseOrder: ordering paperwork; line items feed transaction provenance.
type PurchaseOrder struct {
	ID         uint   `gorm:"primaryKey"`
	OrderNo    string `gorm:"size:20;not null;uniqueIndex"` // generated, e.g. "PUO8841002953"
	ConsumerID uint   `gorm:"index;not null"`
	Consumer   Consumer
	SupplierID uint `gorm:"index;not null"`
	Supplier   Supplier
	OrderDate  time.Time `gorm:"not null"`
	Note       string    `gorm:"size:500"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	LineItems []POLineItem `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
}

// POLineItem: one ordered position.
type POLineItem struct {
	ID              uint `gorm:"primaryKey"`
	PurchaseOrderID uint `gorm:"index;not null"`
	ItemName        string      `gorm:"size:100;not null"`
	Quantity        int64       `gorm:"not null"`
	UnitMeasure     UnitMeasure `gorm:"type:varchar(10);not null"`
	UnitPrice       float64     `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
