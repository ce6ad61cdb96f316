package models

import (
	"time"

	"gorm.io/datatypes"
)

// JobExecutionLog is append-only: one row per execution attempt, never
// mutated after insert. The scheduler writes it for audit and debugging
// and never reads it back to make decisions.
type JobExecutionLog struct {
	ID                uint      `gorm:"primaryKey;autoIncrement"`
	JobID             uint      `gorm:"not null;index"`
	UserID            uint      `gorm:"not null;index"`
	ExecutedAt        time.Time `gorm:"not null"`
	Status            string    `gorm:"type:varchar(50);not null"`
	BatchID           *uint
	ProcessingTimeMs  int64          `gorm:"not null"`
	ContactsProcessed int            `gorm:"default:0;not null"`
	ErrorMessage      string         `gorm:"type:text"`
	Diagnostic        datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
}
