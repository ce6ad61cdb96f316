package config

import "time"

// Job statuses. A job has no terminal state other than deletion: a
// permanently failed job stays "failed" with no next_retry_at until the
// user edits preferences.
const (
	JobStatusScheduled = "scheduled"
	JobStatusRunning   = "running"
	JobStatusFailed    = "failed"
)

// Execution-log statuses.
const (
	ExecStatusSuccess         = "success"
	ExecStatusFailed          = "failed"
	ExecStatusFailedPermanent = "failed_permanent"
)

// Outcomes surfaced on the job row itself (the execution log is the
// real audit trail).
const (
	OutcomeSuccess              = "success"
	OutcomeInsufficientContacts = "insufficient_contacts"
	OutcomeFailed               = "failed"
	OutcomeFailedPermanent      = "failed_permanent"
	OutcomeResetAfterRestart    = "reset_after_restart"
)

// Batch statuses.
const (
	BatchStatusReady   = "ready"
	BatchStatusExpired = "expired"
)

// retryBackoff is the ladder applied after consecutive failures; the
// last rung repeats once the ladder is exhausted.
var retryBackoff = []time.Duration{
	60 * time.Second,
	300 * time.Second,
	900 * time.Second,
}

// BackoffFor returns the delay before the given retry attempt.
// retryCount is the post-increment value, so the first retry gets the
// first rung.
func BackoffFor(retryCount int) time.Duration {
	idx := retryCount - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(retryBackoff) {
		idx = len(retryBackoff) - 1
	}
	return retryBackoff[idx]
}
