package models

import "time"

// ContractType - AMC (annual maintenance) or CMC (comprehensive maintenance)
type ContractType string

const (
	ContractAMC ContractType = "AMC"
	ContractCMC ContractType = "CMC"
)

func (t ContractType) Valid() bool {
	switch t {
	case ContractAMC, ContractCMC:
		return true
	}
	return false
}

// ContractStatus - lifecycle state of a service contract
type ContractStatus string

const (
	ContractActive    ContractStatus = "ACTIVE"
	ContractExpired   ContractStatus = "EXPIRED"
	ContractCancelled ContractStatus = "CANCELLED"
)

func (s ContractStatus) Valid() bool {
	switch s {
	case ContractActive, ContractExpired, ContractCancelled:
		return true
	}
	return false
}

// ServiceContract: AMC/CMC coverage for one asset. Bucketing considers only
// ACTIVE contracts.
type ServiceContract struct {
	ID         uint   `gorm:"primaryKey"`
	ContractNo string `gorm:"size:20;not null;uniqueIndex"` // generated, e.g. "SCT0061943728"
	AssetID    uint   `gorm:"index;not null"`
	Asset      Asset
	ConsumerID uint `gorm:"index;not null"`
	Consumer   Consumer
	SupplierID *uint
	Supplier   *Supplier
	Type       ContractType   `gorm:"type:varchar(10);not null"`
	Status     ContractStatus `gorm:"type:varchar(15);not null;default:'ACTIVE';index"`
	StartDate  time.Time      `gorm:"not null"`
	EndDate    time.Time      `gorm:"index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
