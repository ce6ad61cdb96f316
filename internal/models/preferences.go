package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// OutreachPreferences is owned and edited by the settings layer; the
// scheduler only ever reads it. ScheduleDays holds a JSON array of
// lowercase weekday tokens ("mon".."sun").
type OutreachPreferences struct {
	ID           uint           `gorm:"primaryKey;autoIncrement"`
	UserID       uint           `gorm:"uniqueIndex;not null"`
	Enabled      bool           `gorm:"default:false;not null"`
	ScheduleDays datatypes.JSON `gorm:"type:jsonb"`
	ScheduleTime string         `gorm:"type:varchar(5);not null;default:'09:00'"`
	Timezone     string         `gorm:"type:varchar(64);not null;default:'UTC'"`

	VacationMode  bool `gorm:"default:false;not null"`
	VacationFrom  *time.Time
	VacationUntil *time.Time

	ProductProfileID  *uint
	SenderProfileID   *uint
	CustomerProfileID *uint

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// DayTokens decodes ScheduleDays into its weekday tokens.
func (p *OutreachPreferences) DayTokens() ([]string, error) {
	var days []string
	if len(p.ScheduleDays) == 0 {
		return days, nil
	}
	if err := json.Unmarshal(p.ScheduleDays, &days); err != nil {
		return nil, err
	}
	return days, nil
}
