package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leadloop/leadloop/internal/batch"
	"github.com/leadloop/leadloop/internal/config"
	"github.com/leadloop/leadloop/internal/models"
	"gorm.io/gorm"
)

var ErrTokenInvalid = errors.New("batch token invalid, expired, or already used")

type BatchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

var _ batch.BatchRepoInterface = (*BatchRepository)(nil)

// UncontactedContacts returns the user's contacts with a usable email
// that have never appeared in any batch item for that user, best
// confidence first. Dedup is against the user's entire history, not
// just recent batches.
func (r *BatchRepository) UncontactedContacts(ctx context.Context, userID uint, limit int) ([]models.Contact, error) {
	contacted := r.db.Model(&models.BatchItem{}).
		Select("contact_id").
		Where("user_id = ?", userID)

	var contacts []models.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND email <> ''", userID).
		Where("id NOT IN (?)", contacted).
		Order("confidence_score DESC").
		Limit(limit).
		Find(&contacts).Error
	if err != nil {
		return nil, fmt.Errorf("select uncontacted contacts: %w", err)
	}
	return contacts, nil
}

// CompanyTopUpContacts is the softer, company-level pool: contacts from
// companies that never had any contact used in a prior batch for this
// user. excludeIDs keeps already-picked candidates out.
func (r *BatchRepository) CompanyTopUpContacts(ctx context.Context, userID uint, excludeIDs []uint, limit int) ([]models.Contact, error) {
	usedCompanies := r.db.Model(&models.BatchItem{}).
		Select("company_id").
		Where("user_id = ?", userID)

	q := r.db.WithContext(ctx).
		Where("user_id = ? AND email <> ''", userID).
		Where("company_id NOT IN (?)", usedCompanies)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}

	var contacts []models.Contact
	err := q.Order("confidence_score DESC").
		Limit(limit).
		Find(&contacts).Error
	if err != nil {
		return nil, fmt.Errorf("select top-up contacts: %w", err)
	}
	return contacts, nil
}

// CompaniesByIDs resolves the companies for the selected contacts.
func (r *BatchRepository) CompaniesByIDs(ctx context.Context, ids []uint) (map[uint]models.Company, error) {
	var companies []models.Company
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("select companies: %w", err)
	}

	out := make(map[uint]models.Company, len(companies))
	for _, c := range companies {
		out[c.ID] = c
	}
	return out, nil
}

// CreateBatchWithItems persists the batch and its items in one
// transaction; a half-written batch would poison the dedup history.
func (r *BatchRepository) CreateBatchWithItems(ctx context.Context, b *models.DailyBatch, items []models.BatchItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].BatchID = b.ID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// GetBatchByToken resolves a batch by its single-use access token and
// consumes the token. Expired or already-consumed tokens fail with
// ErrTokenInvalid.
func (r *BatchRepository) GetBatchByToken(ctx context.Context, token string, now time.Time) (*models.DailyBatch, []models.BatchItem, error) {
	var b models.DailyBatch
	if err := r.db.WithContext(ctx).
		First(&b, "access_token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTokenInvalid
		}
		return nil, nil, fmt.Errorf("get batch by token: %w", err)
	}

	if b.TokenUsedAt != nil || now.After(b.ExpiresAt) {
		return nil, nil, ErrTokenInvalid
	}

	if err := r.db.WithContext(ctx).Model(&b).
		Update("token_used_at", now).Error; err != nil {
		return nil, nil, fmt.Errorf("consume batch token: %w", err)
	}

	var items []models.BatchItem
	if err := r.db.WithContext(ctx).
		Where("batch_id = ?", b.ID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, nil, fmt.Errorf("get batch items: %w", err)
	}
	return &b, items, nil
}

// ExpireBatches flips overdue batches to expired. Housekeeping only;
// token checks validate expires_at directly.
func (r *BatchRepository) ExpireBatches(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.DailyBatch{}).
		Where("status = ? AND expires_at < ?", config.BatchStatusReady, now).
		Update("status", config.BatchStatusExpired)
	if res.Error != nil {
		return 0, fmt.Errorf("expire batches: %w", res.Error)
	}
	return res.RowsAffected, nil
}
