package models

import "time"

// AssetStatus - operational state of an asset
type AssetStatus string

const (
	AssetInService    AssetStatus = "IN_SERVICE"
	AssetUnderRepair  AssetStatus = "UNDER_REPAIR"
	AssetRetired      AssetStatus = "RETIRED"
	AssetDisposedOf   AssetStatus = "DISPOSED"
)

func (s AssetStatus) Valid() bool {
	switch s {
	case AssetInService, AssetUnderRepair, AssetRetired, AssetDisposedOf:
		return true
	}
	return false
}

// Asset: a tracked capital item. Created together with its location,
// installation record and initial warranty in one transaction.
type Asset struct {
	ID           uint   `gorm:"primaryKey"`
	AssetNo      string `gorm:"size:20;not null;uniqueIndex"` // generated, e.g. "AST6619034582"
	Name         string `gorm:"size:100;not null"`
	SerialNo     string `gorm:"size:100;index"`
	Status       AssetStatus `gorm:"type:varchar(20);not null;default:'IN_SERVICE'"`
	ConsumerID   uint        `gorm:"index;not null"`
	Consumer     Consumer
	SupplierID   *uint
	Supplier     *Supplier
	DepartmentID *uint `gorm:"index"`
	Department   *Department
	// Flags excluding the asset from coverage expectations; the
	// without-AMC/CMC warranty cohort skips flagged assets.
	WarrantyNotApplicable bool `gorm:"not null;default:false"`
	AmcCmcNotApplicable   bool `gorm:"not null;default:false"`
	CreatedAt             time.Time
	UpdatedAt             time.Time

	Location         *AssetLocation     `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
	Installation     *AssetInstallation `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
	Warranties       []Warranty         `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
	ServiceContracts []ServiceContract  `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
}

// AssetLocation: where the asset physically sits.
type AssetLocation struct {
	ID        uint `gorm:"primaryKey"`
	AssetID   uint `gorm:"uniqueIndex;not null"`
	Building  string `gorm:"size:100"`
	Floor     string `gorm:"size:50"`
	Room      string `gorm:"size:50"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AssetInstallation: commissioning record written at onboarding.
type AssetInstallation struct {
	ID          uint `gorm:"primaryKey"`
	AssetID     uint `gorm:"uniqueIndex;not null"`
	InstalledAt time.Time `gorm:"not null"`
	InstalledBy string    `gorm:"size:100"`
	Notes       string    `gorm:"size:500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
