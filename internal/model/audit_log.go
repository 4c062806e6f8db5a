package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog is an append-only record of who did what. Writing one is
// fire-and-forget: a failed audit insert never rolls back the business
// transaction it describes.
type AuditLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Actor       string    `gorm:"type:varchar(255);not null;index" json:"actor"`
	Action      string    `gorm:"type:varchar(50);not null" json:"action"`
	SubjectType string    `gorm:"type:varchar(50);not null;index" json:"subject_type"`
	SubjectID   string    `gorm:"type:varchar(64)" json:"subject_id"`
	Details     string    `gorm:"type:text" json:"details"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
