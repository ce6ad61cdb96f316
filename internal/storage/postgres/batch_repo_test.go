package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leadloop/leadloop/internal/config"
	"github.com/leadloop/leadloop/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedContact(t *testing.T, db *gorm.DB, userID, companyID uint, email string, score float64) models.Contact {
	t.Helper()
	c := models.Contact{UserID: userID, CompanyID: companyID, Email: email, ConfidenceScore: score}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func seedBatchWithContact(t *testing.T, repo *BatchRepository, userID uint, contact models.Contact) *models.DailyBatch {
	t.Helper()
	b := &models.DailyBatch{
		UserID:      userID,
		BatchDate:   time.Now(),
		Status:      config.BatchStatusReady,
		ExpiresAt:   time.Now().Add(24 * time.Hour),
		AccessToken: uuid.NewString(),
	}
	items := []models.BatchItem{{
		UserID:       userID,
		ContactID:    contact.ID,
		CompanyID:    contact.CompanyID,
		EmailSubject: "s",
		EmailBody:    "b",
		Status:       "pending",
	}}
	require.NoError(t, repo.CreateBatchWithItems(context.Background(), b, items))
	return b
}

func TestBatchRepository_UncontactedContactsDedupAcrossHistory(t *testing.T) {
	db := SetupTestDB(t)
	repo := NewBatchRepository(db)
	ctx := context.Background()

	used := seedContact(t, db, 1, 100, "used@x.com", 95)
	fresh := seedContact(t, db, 1, 101, "fresh@x.com", 90)
	noEmail := seedContact(t, db, 1, 102, "", 99)
	otherUser := seedContact(t, db, 2, 103, "other@x.com", 99)

	seedBatchWithContact(t, repo, 1, used)

	contacts, err := repo.UncontactedContacts(ctx, 1, 20)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, fresh.ID, contacts[0].ID)

	_ = noEmail
	_ = otherUser
}

func TestBatchRepository_UncontactedContactsOrderAndCap(t *testing.T) {
	db := SetupTestDB(t)
	repo := NewBatchRepository(db)
	ctx := context.Background()

	low := seedContact(t, db, 1, 100, "low@x.com", 10)
	high := seedContact(t, db, 1, 101, "high@x.com", 90)
	mid := seedContact(t, db, 1, 102, "mid@x.com", 50)

	contacts, err := repo.UncontactedContacts(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, high.ID, contacts[0].ID)
	assert.Equal(t, mid.ID, contacts[1].ID)
	_ = low
}

func TestBatchRepository_CompanyTopUpExcludesTouchedCompanies(t *testing.T) {
	db := SetupTestDB(t)
	repo := NewBatchRepository(db)
	ctx := context.Background()

	used := seedContact(t, db, 1, 100, "used@x.com", 95)
	colleague := seedContact(t, db, 1, 100, "colleague@x.com", 80) // same company as used
	freshCo := seedContact(t, db, 1, 200, "fresh@x.com", 70)

	seedBatchWithContact(t, repo, 1, used)

	contacts, err := repo.CompanyTopUpContacts(ctx, 1, nil, 10)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, freshCo.ID, contacts[0].ID)
	_ = colleague

	// Exclusion list keeps already-picked candidates out.
	contacts, err = repo.CompanyTopUpContacts(ctx, 1, []uint{freshCo.ID}, 10)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestBatchRepository_NoContactEverInTwoBatches(t *testing.T) {
	db := SetupTestDB(t)
	repo := NewBatchRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		seedContact(t, db, 1, uint(100+i), "c@x.com", float64(50+i))
	}

	// Simulate three daily runs, each consuming whatever is eligible.
	seen := make(map[uint]int)
	for run := 0; run < 3; run++ {
		contacts, err := repo.UncontactedContacts(ctx, 1, 20)
		require.NoError(t, err)
		if len(contacts) == 0 {
			break
		}
		seedBatchWithContact(t, repo, 1, contacts[0])
		seen[contacts[0].ID]++
	}

	for id, count := range seen {
		assert.Equal(t, 1, count, "contact %d selected more than once", id)
	}
}

func TestBatchRepository_TokenLookupIsSingleUse(t *testing.T) {
	db := SetupTestDB(t)
	repo := NewBatchRepository(db)
	ctx := context.Background()
	now := time.Now()

	contact := seedContact(t, db, 1, 100, "c@x.com", 50)
	b := seedBatchWithContact(t, repo, 1, contact)

	got, items, err := repo.GetBatchByToken(ctx, b.AccessToken, now)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	require.Len(t, items, 1)
	assert.Equal(t, contact.ID, items[0].ContactID)

	// Second use fails.
	_, _, err = repo.GetBatchByToken(ctx, b.AccessToken, now)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestBatchRepository_TokenLookupRejectsExpired(t *testing.T) {
	db := SetupTestDB(t)
	repo := NewBatchRepository(db)
	ctx := context.Background()

	contact := seedContact(t, db, 1, 100, "c@x.com", 50)
	b := seedBatchWithContact(t, repo, 1, contact)

	_, _, err := repo.GetBatchByToken(ctx, b.AccessToken, time.Now().Add(25*time.Hour))
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, _, err = repo.GetBatchByToken(ctx, "no-such-token", time.Now())
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestBatchRepository_ExpireBatches(t *testing.T) {
	db := SetupTestDB(t)
	repo := NewBatchRepository(db)
	ctx := context.Background()

	contact := seedContact(t, db, 1, 100, "c@x.com", 50)
	b := seedBatchWithContact(t, repo, 1, contact)

	n, err := repo.ExpireBatches(ctx, time.Now().Add(25*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var got models.DailyBatch
	require.NoError(t, db.First(&got, b.ID).Error)
	assert.Equal(t, config.BatchStatusExpired, got.Status)
}

func TestBatchRepository_CompaniesByIDs(t *testing.T) {
	db := SetupTestDB(t)
	repo := NewBatchRepository(db)
	ctx := context.Background()

	c1 := models.Company{UserID: 1, Name: "Acme", Description: "saas"}
	c2 := models.Company{UserID: 1, Name: "Globex", Description: "retail store"}
	require.NoError(t, db.Create(&c1).Error)
	require.NoError(t, db.Create(&c2).Error)

	out, err := repo.CompaniesByIDs(ctx, []uint{c1.ID, c2.ID})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Acme", out[c1.ID].Name)
	assert.Equal(t, "Globex", out[c2.ID].Name)
}
