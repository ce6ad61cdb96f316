// Package scheduler runs the polling loop that decides when each
// user's daily outreach job fires, executes due jobs with bounded
// concurrency, and survives process crashes.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/leadloop/leadloop/internal/batch"
	"github.com/leadloop/leadloop/internal/config"
	"github.com/leadloop/leadloop/internal/models"
	"github.com/leadloop/leadloop/internal/notify"
	"github.com/leadloop/leadloop/internal/schedule"
	"gorm.io/datatypes"
)

type Engine struct {
	cfg      config.SchedulerConfig
	jobs     JobRepoInterface
	prefs    PreferenceRepoInterface
	logs     ExecutionLogRepoInterface
	gen      BatchGeneratorInterface
	notifier notify.Notifier
	clock    func() time.Time

	// running tracks in-flight executions (userID -> start time). It is
	// a single-process cache, not a lock; the DB staleness sweep is the
	// real safety net.
	mu      sync.Mutex
	running map[uint]time.Time

	// sem enforces MaxConcurrent by construction: a slot is taken
	// before an execution goroutine launches.
	sem chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewEngine(
	cfg config.SchedulerConfig,
	jobs JobRepoInterface,
	prefs PreferenceRepoInterface,
	logs ExecutionLogRepoInterface,
	gen BatchGeneratorInterface,
	notifier notify.Notifier,
	clock func() time.Time,
) *Engine {
	if clock == nil {
		clock = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		cfg:      cfg,
		jobs:     jobs,
		prefs:    prefs,
		logs:     logs,
		gen:      gen,
		notifier: notifier,
		clock:    clock,
		running:  make(map[uint]time.Time),
		sem:      make(chan struct{}, cfg.MaxConcurrent),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start performs crash recovery and then begins polling. Recovery is
// unconditional: a fresh process start means no in-memory execution can
// still be in flight, whatever updated_at says.
func (e *Engine) Start() error {
	reset, err := e.jobs.ResetRunning(e.ctx, "reset after scheduler restart")
	if err != nil {
		return fmt.Errorf("startup recovery: %w", err)
	}
	if reset > 0 {
		log.Printf("[scheduler] recovered %d job(s) left running by a previous process", reset)
	}

	e.wg.Add(1)
	go e.loop()

	log.Printf("[scheduler] polling every %v (batch %d, concurrency %d, retries %d)",
		e.cfg.PollInterval, e.cfg.TickBatchSize, e.cfg.MaxConcurrent, e.cfg.MaxRetries)
	return nil
}

// Stop halts polling and waits for in-flight executions to finish.
func (e *Engine) Stop() {
	e.cancel()
	e.wg.Wait()
	log.Println("[scheduler] stopped")
}

func (e *Engine) loop() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.tick()
		case <-e.ctx.Done():
			return
		}
	}
}

// tick is one scheduling pass: sweep stale state, then launch as many
// due jobs as free slots allow. Never blocks on job execution.
func (e *Engine) tick() {
	now := e.clock()
	e.sweepStale(now)

	slots := e.cfg.MaxConcurrent - e.runningCount()
	if slots <= 0 {
		return
	}

	limit := e.cfg.TickBatchSize
	if slots < limit {
		limit = slots
	}

	due, err := e.jobs.DueJobs(e.ctx, now, e.cfg.MaxRetries, limit)
	if err != nil {
		log.Printf("[scheduler][WARN] due-job query failed: %v", err)
		return
	}

	for i := range due {
		job := due[i]
		if !e.markRunningLocal(job.UserID, now) {
			continue // already executing in this process
		}

		select {
		case e.sem <- struct{}{}:
		default:
			e.releaseLocal(job.UserID)
			return // cap reached, leave the rest for the next tick
		}

		e.wg.Add(1)
		go e.execute(job)
	}
}

// sweepStale drops in-memory markers and resets DB rows stuck in
// Running past the staleness threshold. Liveness only: a merely slow
// execution may still finish and write a superseded result.
func (e *Engine) sweepStale(now time.Time) {
	cutoff := now.Add(-e.cfg.StaleAfter)

	e.mu.Lock()
	for userID, started := range e.running {
		if started.Before(cutoff) {
			log.Printf("[scheduler][WARN] dropping stale in-memory marker for user %d (started %v)", userID, started)
			delete(e.running, userID)
		}
	}
	e.mu.Unlock()

	reset, err := e.jobs.ResetStaleRunning(e.ctx, cutoff, "reset after stale running state")
	if err != nil {
		log.Printf("[scheduler][WARN] stale sweep failed: %v", err)
		return
	}
	if reset > 0 {
		log.Printf("[scheduler] reset %d stale running job(s)", reset)
	}
}

// execute runs one job end to end. Every error is contained here: one
// job can never take down the polling loop or starve its siblings.
func (e *Engine) execute(job models.OutreachJob) {
	start := e.clock()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[scheduler][ERROR] panic executing job %d (user %d): %v", job.ID, job.UserID, r)
			e.recordFailure(&job, start, fmt.Errorf("panic: %v", r))
		}
		e.releaseLocal(job.UserID)
		<-e.sem
		e.wg.Done()
	}()

	if err := e.jobs.MarkRunning(e.ctx, job.ID); err != nil {
		log.Printf("[scheduler][WARN] could not mark job %d running: %v", job.ID, err)
		return
	}

	res := e.gen.GenerateDailyBatch(e.ctx, job.UserID)

	// The user may have disabled outreach while we were generating.
	prefs, err := e.prefs.GetByUser(e.ctx, job.UserID)
	if err != nil {
		e.recordFailure(&job, start, fmt.Errorf("re-read preferences: %w", err))
		return
	}
	if prefs == nil || !prefs.Enabled {
		log.Printf("[scheduler] user %d disabled outreach mid-run, deleting job %d", job.UserID, job.ID)
		if err := e.jobs.DeleteByUser(e.ctx, job.UserID); err != nil {
			log.Printf("[scheduler][WARN] delete job for user %d: %v", job.UserID, err)
		}
		return
	}

	var b *models.DailyBatch
	if res != nil {
		b = res.Batch
	}
	if err := e.notifier.SendDailyNudge(e.ctx, job.UserID, b); err != nil {
		e.recordFailure(&job, start, fmt.Errorf("send nudge: %w", err))
		return
	}

	next, err := schedule.NextRun(prefs, e.clock())
	if err != nil {
		e.recordFailure(&job, start, fmt.Errorf("compute next run: %w", err))
		return
	}

	e.recordSuccess(&job, start, next, res)
}

// recordSuccess covers both a full batch and the insufficient-contacts
// outcome: either way the job is rescheduled normally and retry
// bookkeeping is cleared.
func (e *Engine) recordSuccess(job *models.OutreachJob, start, next time.Time, res *batch.Result) {
	now := e.clock()

	outcome := config.OutcomeSuccess
	entry := &models.JobExecutionLog{
		JobID:            job.ID,
		UserID:           job.UserID,
		ExecutedAt:       start,
		Status:           config.ExecStatusSuccess,
		ProcessingTimeMs: now.Sub(start).Milliseconds(),
	}
	if res != nil {
		entry.BatchID = &res.Batch.ID
		entry.ContactsProcessed = res.ContactsProcessed
		entry.Diagnostic = diagnostic(map[string]any{
			"contactsSelected": res.ContactsProcessed,
			"categories":       res.CategorySummary,
		})
	} else {
		outcome = config.OutcomeInsufficientContacts
		entry.Diagnostic = diagnostic(map[string]any{
			"reason": "insufficient contacts",
		})
	}

	if err := e.jobs.MarkScheduled(e.ctx, job.ID, next, now, outcome); err != nil {
		log.Printf("[scheduler][WARN] mark job %d scheduled: %v", job.ID, err)
	}
	if err := e.logs.Append(e.ctx, entry); err != nil {
		log.Printf("[scheduler][WARN] append execution log for job %d: %v", job.ID, err)
	}

	log.Printf("[scheduler] job %d (user %d) completed (%s), next run %v",
		job.ID, job.UserID, outcome, next.Format(time.RFC3339))
}

func (e *Engine) recordFailure(job *models.OutreachJob, start time.Time, cause error) {
	now := e.clock()
	retry := job.RetryCount + 1
	entry := &models.JobExecutionLog{
		JobID:            job.ID,
		UserID:           job.UserID,
		ExecutedAt:       start,
		ProcessingTimeMs: now.Sub(start).Milliseconds(),
		ErrorMessage:     cause.Error(),
	}

	if retry < e.cfg.MaxRetries {
		nextRetry := now.Add(config.BackoffFor(retry))
		entry.Status = config.ExecStatusFailed
		if err := e.jobs.MarkFailed(e.ctx, job.ID, retry, &nextRetry, config.OutcomeFailed, cause.Error()); err != nil {
			log.Printf("[scheduler][WARN] mark job %d failed: %v", job.ID, err)
		}
		log.Printf("[scheduler] job %d (user %d) failed (attempt %d/%d), retrying at %v: %v",
			job.ID, job.UserID, retry, e.cfg.MaxRetries, nextRetry, cause)
	} else {
		entry.Status = config.ExecStatusFailedPermanent
		if err := e.jobs.MarkFailed(e.ctx, job.ID, retry, nil, config.OutcomeFailedPermanent, cause.Error()); err != nil {
			log.Printf("[scheduler][WARN] mark job %d failed: %v", job.ID, err)
		}
		log.Printf("[scheduler] job %d (user %d) failed permanently after %d attempts: %v",
			job.ID, job.UserID, retry, cause)
	}

	if err := e.logs.Append(e.ctx, entry); err != nil {
		log.Printf("[scheduler][WARN] append execution log for job %d: %v", job.ID, err)
	}
}

func (e *Engine) markRunningLocal(userID uint, now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.running[userID]; ok {
		return false
	}
	e.running[userID] = now
	return true
}

func (e *Engine) releaseLocal(userID uint) {
	e.mu.Lock()
	delete(e.running, userID)
	e.mu.Unlock()
}

func (e *Engine) runningCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.running)
}

func diagnostic(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
