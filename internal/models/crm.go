package models

import (
	"time"
)

// Contact and Company rows are written by the (external) import and
// search pipelines; the batch generator only reads them.
type Contact struct {
	ID              uint      `gorm:"primaryKey;autoIncrement"`
	UserID          uint      `gorm:"not null;index"`
	CompanyID       uint      `gorm:"not null;index"`
	FirstName       string    `gorm:"type:varchar(255)"`
	LastName        string    `gorm:"type:varchar(255)"`
	Email           string    `gorm:"type:varchar(255)"`
	Role            string    `gorm:"type:varchar(255)"`
	ConfidenceScore float64   `gorm:"default:0;not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

type Company struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	UserID      uint      `gorm:"not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Website     string    `gorm:"type:varchar(255)"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// ProductProfile describes what the user is selling; the generator
// falls back to the most recently created one when none is selected.
type ProductProfile struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	UserID      uint      `gorm:"not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Offer       string    `gorm:"type:text"`
	Selected    bool      `gorm:"default:false;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// SenderProfile is the persona the emails are written as.
type SenderProfile struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uint      `gorm:"not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Title     string    `gorm:"type:varchar(255)"`
	Company   string    `gorm:"type:varchar(255)"`
	Selected  bool      `gorm:"default:false;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// CustomerProfile captures who the user sells to plus tone hints passed
// through to the content generator.
type CustomerProfile struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	UserID        uint      `gorm:"not null;index"`
	Description   string    `gorm:"type:text"`
	Tone          string    `gorm:"type:varchar(100)"`
	OfferStrategy string    `gorm:"type:varchar(100)"`
	Selected      bool      `gorm:"default:false;not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}
