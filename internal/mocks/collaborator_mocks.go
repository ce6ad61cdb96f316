package mocks

import (
	"context"
	"time"

	"github.com/leadloop/leadloop/internal/ai"
	"github.com/leadloop/leadloop/internal/batch"
	"github.com/leadloop/leadloop/internal/models"
	"github.com/stretchr/testify/mock"
)

type PreferenceRepoMock struct {
	mock.Mock
}

func (m *PreferenceRepoMock) GetByUser(ctx context.Context, userID uint) (*models.OutreachPreferences, error) {
	args := m.Called(ctx, userID)

	prefs, _ := args.Get(0).(*models.OutreachPreferences)
	return prefs, args.Error(1)
}

func (m *PreferenceRepoMock) Save(ctx context.Context, prefs *models.OutreachPreferences) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}

type ExecutionLogRepoMock struct {
	mock.Mock
}

func (m *ExecutionLogRepoMock) Append(ctx context.Context, entry *models.JobExecutionLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ExecutionLogRepoMock) ListByUser(ctx context.Context, userID uint, limit int) ([]models.JobExecutionLog, error) {
	args := m.Called(ctx, userID, limit)

	entries, _ := args.Get(0).([]models.JobExecutionLog)
	return entries, args.Error(1)
}

type BatchGeneratorMock struct {
	mock.Mock
}

func (m *BatchGeneratorMock) GenerateDailyBatch(ctx context.Context, userID uint) *batch.Result {
	args := m.Called(ctx, userID)

	res, _ := args.Get(0).(*batch.Result)
	return res
}

type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) SendDailyNudge(ctx context.Context, userID uint, b *models.DailyBatch) error {
	args := m.Called(ctx, userID, b)
	return args.Error(0)
}

type ContentGeneratorMock struct {
	mock.Mock
}

func (m *ContentGeneratorMock) GenerateEmailContent(ctx context.Context, req ai.ContentRequest) (ai.ContentResult, error) {
	args := m.Called(ctx, req)

	res, _ := args.Get(0).(ai.ContentResult)
	return res, args.Error(1)
}

type BatchRepoMock struct {
	mock.Mock
}

func (m *BatchRepoMock) UncontactedContacts(ctx context.Context, userID uint, limit int) ([]models.Contact, error) {
	args := m.Called(ctx, userID, limit)

	contacts, _ := args.Get(0).([]models.Contact)
	return contacts, args.Error(1)
}

func (m *BatchRepoMock) CompanyTopUpContacts(ctx context.Context, userID uint, excludeIDs []uint, limit int) ([]models.Contact, error) {
	args := m.Called(ctx, userID, excludeIDs, limit)

	contacts, _ := args.Get(0).([]models.Contact)
	return contacts, args.Error(1)
}

func (m *BatchRepoMock) CompaniesByIDs(ctx context.Context, ids []uint) (map[uint]models.Company, error) {
	args := m.Called(ctx, ids)

	companies, _ := args.Get(0).(map[uint]models.Company)
	return companies, args.Error(1)
}

func (m *BatchRepoMock) CreateBatchWithItems(ctx context.Context, b *models.DailyBatch, items []models.BatchItem) error {
	args := m.Called(ctx, b, items)
	return args.Error(0)
}

func (m *BatchRepoMock) GetBatchByToken(ctx context.Context, token string, now time.Time) (*models.DailyBatch, []models.BatchItem, error) {
	args := m.Called(ctx, token, now)

	b, _ := args.Get(0).(*models.DailyBatch)
	items, _ := args.Get(1).([]models.BatchItem)
	return b, items, args.Error(2)
}

func (m *BatchRepoMock) ExpireBatches(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type ProfileRepoMock struct {
	mock.Mock
}

func (m *ProfileRepoMock) ActiveProductProfile(ctx context.Context, userID uint) (*models.ProductProfile, error) {
	args := m.Called(ctx, userID)

	p, _ := args.Get(0).(*models.ProductProfile)
	return p, args.Error(1)
}

func (m *ProfileRepoMock) ActiveSenderProfile(ctx context.Context, userID uint) (*models.SenderProfile, error) {
	args := m.Called(ctx, userID)

	p, _ := args.Get(0).(*models.SenderProfile)
	return p, args.Error(1)
}

func (m *ProfileRepoMock) ActiveCustomerProfile(ctx context.Context, userID uint) (*models.CustomerProfile, error) {
	args := m.Called(ctx, userID)

	p, _ := args.Get(0).(*models.CustomerProfile)
	return p, args.Error(1)
}
