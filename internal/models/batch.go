package models

import (
	"time"
)

// DailyBatch is one day's set of generated outreach emails for one
// user. A fresh row is created on every successful scheduler run; rows
// outlive the job that produced them so historical dedup keeps working
// after a user disables outreach.
type DailyBatch struct {
	ID          uint       `gorm:"primaryKey;autoIncrement"`
	UserID      uint       `gorm:"not null;index"`
	BatchDate   time.Time  `gorm:"not null"`
	Status      string     `gorm:"type:varchar(50);not null;default:'ready'"`
	ExpiresAt   time.Time  `gorm:"not null"`
	AccessToken string `gorm:"type:varchar(64);uniqueIndex;not null"`
	TokenUsedAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// BatchItem binds one contact/company pair to a generated email.
// Immutable after creation except for the delivery-status fields, which
// belong to the send flow.
type BatchItem struct {
	ID           uint       `gorm:"primaryKey;autoIncrement"`
	BatchID      uint       `gorm:"not null;index"`
	UserID       uint       `gorm:"not null;index"`
	ContactID    uint       `gorm:"not null;index"`
	CompanyID    uint       `gorm:"not null;index"`
	EmailSubject string     `gorm:"type:text;not null"`
	EmailBody    string     `gorm:"type:text;not null"`
	Status       string `gorm:"type:varchar(50);not null;default:'pending'"`
	SentAt       *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}
