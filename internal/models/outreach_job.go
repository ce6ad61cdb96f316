package models

import (
	"time"
)

// OutreachJob is the recurring-schedule record for one user's daily
// outreach. There is at most one row per user; it exists only while the
// user has outreach enabled.
type OutreachJob struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	UserID      uint      `gorm:"uniqueIndex;not null"`
	Status      string    `gorm:"type:varchar(50);not null;default:'scheduled'"`
	NextRunAt   time.Time `gorm:"not null;index"`
	LastRunAt   *time.Time
	LastOutcome string `gorm:"type:varchar(50)"`
	LastError   string `gorm:"type:text"`
	RetryCount  int    `gorm:"default:0;not null"`
	NextRetryAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;index"`
}
