package postgres

import (
	"context"
	"fmt"

	"github.com/leadloop/leadloop/internal/models"
	"github.com/leadloop/leadloop/internal/outreach"
	"github.com/leadloop/leadloop/internal/scheduler"
	"gorm.io/gorm"
)

type ExecutionLogRepository struct {
	db *gorm.DB
}

func NewExecutionLogRepository(db *gorm.DB) *ExecutionLogRepository {
	return &ExecutionLogRepository{db: db}
}

var _ scheduler.ExecutionLogRepoInterface = (*ExecutionLogRepository)(nil)
var _ outreach.ExecutionLogRepoInterface = (*ExecutionLogRepository)(nil)

// Append inserts one execution-log row. Rows are never updated or
// deleted afterwards.
func (r *ExecutionLogRepository) Append(ctx context.Context, entry *models.JobExecutionLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("append execution log: %w", err)
	}
	return nil
}

// ListByUser returns a user's most recent execution attempts.
func (r *ExecutionLogRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.JobExecutionLog, error) {
	var entries []models.JobExecutionLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("executed_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list execution log: %w", err)
	}
	return entries, nil
}
