package audit

import (
	"encoding/json"
	"fmt"

	"assettrack-backend/internal/models"

	"gorm.io/gorm"
)

// Recorder writes audit rows for mutating operations. A failed audit write
// never fails the operation itself; callers ignore the returned error or
// log it.
type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func (r *Recorder) Write(opts LogOptions) error {
	// jsonb columns need the JSON literal "null", not an empty string.
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	row := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := r.db.Create(&row).Error; err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}

	return nil
}
