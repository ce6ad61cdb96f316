package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/leadloop/leadloop/internal/models"
	"github.com/leadloop/leadloop/internal/outreach"
	"github.com/leadloop/leadloop/internal/scheduler"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

var _ scheduler.PreferenceRepoInterface = (*PreferenceRepository)(nil)
var _ outreach.PreferenceRepoInterface = (*PreferenceRepository)(nil)

// GetByUser returns the user's outreach preferences, or nil when the
// user never configured any.
func (r *PreferenceRepository) GetByUser(ctx context.Context, userID uint) (*models.OutreachPreferences, error) {
	var prefs models.OutreachPreferences
	if err := r.db.WithContext(ctx).First(&prefs, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return &prefs, nil
}

// Save upserts the user's preferences row on the user_id key.
func (r *PreferenceRepository) Save(ctx context.Context, prefs *models.OutreachPreferences) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(prefs).Error
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
