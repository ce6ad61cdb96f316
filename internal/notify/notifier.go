// Package notify defines the "leads ready" nudge collaborator. Email
// delivery itself is owned by an external provider.
package notify

import (
	"context"
	"log"

	"github.com/leadloop/leadloop/internal/models"
)

// Notifier sends the daily nudge. A nil batch means the user needs more
// contacts before a batch can be built.
type Notifier interface {
	SendDailyNudge(ctx context.Context, userID uint, batch *models.DailyBatch) error
}

// LogNotifier is the development dispatcher: it only logs. Lets the
// scheduler run end to end without a mail provider configured.
type LogNotifier struct{}

var _ Notifier = (*LogNotifier)(nil)

func (LogNotifier) SendDailyNudge(_ context.Context, userID uint, batch *models.DailyBatch) error {
	if batch == nil {
		log.Printf("[notify] user %d: need more contacts", userID)
		return nil
	}
	log.Printf("[notify] user %d: leads ready (batch %d, expires %s)",
		userID, batch.ID, batch.ExpiresAt.Format("2006-01-02 15:04"))
	return nil
}
