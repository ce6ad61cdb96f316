// Package batch selects the day's leads and assembles their emails.
package batch

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/leadloop/leadloop/internal/ai"
	"github.com/leadloop/leadloop/internal/config"
	"github.com/leadloop/leadloop/internal/models"
)

const (
	// BatchSize leads land in the user's inbox per day, no more, no less.
	BatchSize = 5
	// candidatePoolCap bounds the primary uncontacted pool.
	candidatePoolCap = 20
	// roleBoost rewards contacts with a known role when ranking.
	roleBoost = 10
	// batchTTL is how long the generated batch stays accessible.
	batchTTL = 24 * time.Hour
)

// Result is what one successful generation produced.
type Result struct {
	Batch             *models.DailyBatch
	Items             []models.BatchItem
	ContactsProcessed int
	// CategorySummary groups the selected company names under a
	// keyword-derived label for the notification text. Not persisted.
	CategorySummary map[string][]string
}

type Generator struct {
	repo     BatchRepoInterface
	profiles ProfileRepoInterface
	content  ai.ContentGenerator
	clock    func() time.Time
}

func NewGenerator(repo BatchRepoInterface, profiles ProfileRepoInterface, content ai.ContentGenerator, clock func() time.Time) *Generator {
	if clock == nil {
		clock = time.Now
	}
	return &Generator{repo: repo, profiles: profiles, content: content, clock: clock}
}

// GenerateDailyBatch builds and persists today's batch for the user.
// It returns nil both for "not enough eligible contacts" and for any
// internal failure: the caller treats either as the insufficient-
// contacts outcome, never as a retryable job error.
func (g *Generator) GenerateDailyBatch(ctx context.Context, userID uint) *Result {
	res, err := g.generate(ctx, userID)
	if err != nil {
		log.Printf("[batch] user %d: generation aborted: %v", userID, err)
		return nil
	}
	return res
}

func (g *Generator) generate(ctx context.Context, userID uint) (*Result, error) {
	candidates, err := g.repo.UncontactedContacts(ctx, userID, candidatePoolCap)
	if err != nil {
		return nil, err
	}

	// Company-level top-up: contacts at companies never touched in any
	// prior batch for this user.
	if len(candidates) < BatchSize {
		exclude := contactIDs(candidates)
		extra, err := g.repo.CompanyTopUpContacts(ctx, userID, exclude, BatchSize-len(candidates))
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, extra...)
	}

	if len(candidates) < BatchSize {
		log.Printf("[batch] user %d: only %d eligible contacts, need %d",
			userID, len(candidates), BatchSize)
		return nil, nil
	}

	selected := rank(candidates)[:BatchSize]

	product, err := g.profiles.ActiveProductProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		log.Printf("[batch] user %d: no product profile configured", userID)
		return nil, nil
	}
	sender, err := g.profiles.ActiveSenderProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	customer, err := g.profiles.ActiveCustomerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	companies, err := g.repo.CompaniesByIDs(ctx, companyIDs(selected))
	if err != nil {
		return nil, err
	}

	now := g.clock()
	b := &models.DailyBatch{
		UserID:      userID,
		BatchDate:   now,
		Status:      config.BatchStatusReady,
		ExpiresAt:   now.Add(batchTTL),
		AccessToken: uuid.NewString(),
	}

	items := make([]models.BatchItem, 0, BatchSize)
	summary := make(map[string][]string)
	for _, contact := range selected {
		company := companies[contact.CompanyID]
		email := g.composeEmail(ctx, userID, contact, company, product, sender, customer)

		items = append(items, models.BatchItem{
			UserID:       userID,
			ContactID:    contact.ID,
			CompanyID:    contact.CompanyID,
			EmailSubject: email.Subject,
			EmailBody:    email.Content,
			Status:       "pending",
		})

		cat := Categorize(company.Description)
		summary[cat] = append(summary[cat], company.Name)
	}

	if err := g.repo.CreateBatchWithItems(ctx, b, items); err != nil {
		return nil, err
	}

	return &Result{
		Batch:             b,
		Items:             items,
		ContactsProcessed: len(items),
		CategorySummary:   summary,
	}, nil
}

// composeEmail asks the content generator for one email and falls back
// to the deterministic template so a flaky generator can't sink the
// whole batch.
func (g *Generator) composeEmail(
	ctx context.Context,
	userID uint,
	contact models.Contact,
	company models.Company,
	product *models.ProductProfile,
	sender *models.SenderProfile,
	customer *models.CustomerProfile,
) ai.ContentResult {
	req := ai.ContentRequest{
		Prompt:  buildPrompt(product, sender),
		Contact: contact,
		Company: company,
		UserID:  userID,
	}
	if customer != nil {
		req.Tone = customer.Tone
		req.OfferStrategy = customer.OfferStrategy
	}

	result, err := g.content.GenerateEmailContent(ctx, req)
	if err != nil {
		log.Printf("[batch] user %d: content generation for contact %d failed, using template: %v",
			userID, contact.ID, err)
		result, _ = ai.TemplateGenerator{}.GenerateEmailContent(ctx, req)
	}
	return result
}

func buildPrompt(product *models.ProductProfile, sender *models.SenderProfile) string {
	prompt := fmt.Sprintf("We offer %s: %s.", product.Name, product.Description)
	if product.Offer != "" {
		prompt += " " + product.Offer
	}
	if sender != nil {
		prompt += fmt.Sprintf(" Written by %s, %s.", sender.Name, sender.Title)
	}
	return prompt
}

// rank orders candidates by confidence with a flat boost for contacts
// whose role is known.
func rank(contacts []models.Contact) []models.Contact {
	ranked := make([]models.Contact, len(contacts))
	copy(ranked, contacts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return rankScore(ranked[i]) > rankScore(ranked[j])
	})
	return ranked
}

func rankScore(c models.Contact) float64 {
	score := c.ConfidenceScore
	if c.Role != "" {
		score += roleBoost
	}
	return score
}

func contactIDs(contacts []models.Contact) []uint {
	ids := make([]uint, len(contacts))
	for i, c := range contacts {
		ids[i] = c.ID
	}
	return ids
}

func companyIDs(contacts []models.Contact) []uint {
	seen := make(map[uint]bool, len(contacts))
	var ids []uint
	for _, c := range contacts {
		if !seen[c.CompanyID] {
			seen[c.CompanyID] = true
			ids = append(ids, c.CompanyID)
		}
	}
	return ids
}
