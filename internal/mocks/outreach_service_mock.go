package mocks

import (
	"context"

	"github.com/leadloop/leadloop/internal/dto"
	"github.com/leadloop/leadloop/internal/models"
	"github.com/stretchr/testify/mock"
)

type OutreachServiceMock struct {
	mock.Mock
}

func (m *OutreachServiceMock) UpdateUserPreferences(ctx context.Context, userID uint, in *dto.OutreachPreferencesDTO) (*models.OutreachPreferences, *models.OutreachJob, error) {
	args := m.Called(ctx, userID, in)

	prefs, _ := args.Get(0).(*models.OutreachPreferences)
	job, _ := args.Get(1).(*models.OutreachJob)
	return prefs, job, args.Error(2)
}

func (m *OutreachServiceMock) DisableUserOutreach(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *OutreachServiceMock) GetJob(ctx context.Context, userID uint) (*dto.JobResponseDTO, error) {
	args := m.Called(ctx, userID)

	resp, _ := args.Get(0).(*dto.JobResponseDTO)
	return resp, args.Error(1)
}

func (m *OutreachServiceMock) GetExecutionLog(ctx context.Context, userID uint, limit int) ([]dto.ExecutionLogDTO, error) {
	args := m.Called(ctx, userID, limit)

	entries, _ := args.Get(0).([]dto.ExecutionLogDTO)
	return entries, args.Error(1)
}
