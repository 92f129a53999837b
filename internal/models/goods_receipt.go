package models

import "time"

// GoodsReceipt: GRN recorded when ordered stock arrives.
type GoodsReceipt struct {
	ID              uint   `gorm:"primaryKey"`
	GRNNo           string `gorm:"size:20;not null;uniqueIndex"` // generated, e.g. "GRN2210077465"
	PurchaseOrderID *uint  `gorm:"index"`
	PurchaseOrder   *PurchaseOrder
	SupplierID      uint `gorm:"index;not null"`
	Supplier        Supplier
	ReceivedDate    time.Time `gorm:"not null"`
	Note            string    `gorm:"size:500"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []GRNItem `gorm:"foreignKey:GoodsReceiptID;constraint:OnDelete:CASCADE"`
}

// GRNItem: one received position; referenced by IN transactions.
type GRNItem struct {
	ID             uint `gorm:"primaryKey"`
	GoodsReceiptID uint `gorm:"index;not null"`
	POLineItemID   *uint
	ItemName       string      `gorm:"size:100;not null"`
	Quantity       int64       `gorm:"not null"`
	UnitMeasure    UnitMeasure `gorm:"type:varchar(10);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
