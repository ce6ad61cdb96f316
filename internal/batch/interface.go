package batch

import (
	"context"
	"time"

	"github.com/leadloop/leadloop/internal/models"
)

// BatchRepoInterface defines the storage contract for batch generation
// and token-based batch access.
type BatchRepoInterface interface {
	UncontactedContacts(ctx context.Context, userID uint, limit int) ([]models.Contact, error)
	CompanyTopUpContacts(ctx context.Context, userID uint, excludeIDs []uint, limit int) ([]models.Contact, error)
	CompaniesByIDs(ctx context.Context, ids []uint) (map[uint]models.Company, error)
	CreateBatchWithItems(ctx context.Context, b *models.DailyBatch, items []models.BatchItem) error
	GetBatchByToken(ctx context.Context, token string, now time.Time) (*models.DailyBatch, []models.BatchItem, error)
	ExpireBatches(ctx context.Context, now time.Time) (int64, error)
}

// ProfileRepoInterface resolves the user's active profiles, falling
// back to the most recently created when none is selected.
type ProfileRepoInterface interface {
	ActiveProductProfile(ctx context.Context, userID uint) (*models.ProductProfile, error)
	ActiveSenderProfile(ctx context.Context, userID uint) (*models.SenderProfile, error)
	ActiveCustomerProfile(ctx context.Context, userID uint) (*models.CustomerProfile, error)
}
