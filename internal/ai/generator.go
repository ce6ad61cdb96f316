// Package ai defines the email-content collaborator. The real
// implementation lives outside this service; TemplateGenerator is both
// the local default and the fallback when the remote generator fails.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/leadloop/leadloop/internal/models"
)

type ContentRequest struct {
	Prompt        string
	Contact       models.Contact
	Company       models.Company
	UserID        uint
	Tone          string
	OfferStrategy string
}

type ContentResult struct {
	Subject string
	Content string
}

type ContentGenerator interface {
	GenerateEmailContent(ctx context.Context, req ContentRequest) (ContentResult, error)
}

// TemplateGenerator produces a deterministic email from the request
// alone. Never fails.
type TemplateGenerator struct{}

var _ ContentGenerator = (*TemplateGenerator)(nil)

func (TemplateGenerator) GenerateEmailContent(_ context.Context, req ContentRequest) (ContentResult, error) {
	first := strings.TrimSpace(req.Contact.FirstName)
	if first == "" {
		first = "there"
	}

	subject := fmt.Sprintf("Quick question about %s", req.Company.Name)
	body := fmt.Sprintf(
		"Hi %s,\n\nI came across %s and thought it might be a fit for what we're building. %s\n\nWould you be open to a short call this week?\n\nBest regards",
		first, req.Company.Name, req.Prompt,
	)

	return ContentResult{Subject: subject, Content: body}, nil
}
