package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/leadloop/leadloop/internal/batch"
	"github.com/leadloop/leadloop/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

var _ batch.ProfileRepoInterface = (*ProfileRepository)(nil)

// ActiveProductProfile resolves the user's selected product profile,
// falling back to the most recently created one. nil means the user has
// no product profile at all.
func (r *ProfileRepository) ActiveProductProfile(ctx context.Context, userID uint) (*models.ProductProfile, error) {
	var p models.ProductProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("selected DESC, created_at DESC").
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product profile: %w", err)
	}
	return &p, nil
}

// ActiveSenderProfile resolves the sender persona, same fallback rule.
func (r *ProfileRepository) ActiveSenderProfile(ctx context.Context, userID uint) (*models.SenderProfile, error) {
	var p models.SenderProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("selected DESC, created_at DESC").
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sender profile: %w", err)
	}
	return &p, nil
}

// ActiveCustomerProfile resolves the customer profile, same fallback rule.
func (r *ProfileRepository) ActiveCustomerProfile(ctx context.Context, userID uint) (*models.CustomerProfile, error) {
	var p models.CustomerProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("selected DESC, created_at DESC").
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer profile: %w", err)
	}
	return &p, nil
}
