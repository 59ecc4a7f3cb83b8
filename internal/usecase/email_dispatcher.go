package usecase

import (
	"context"
	"sync"
	"time"

	"airops-service/internal/domain/entity"
	"airops-service/internal/domain/repository"
	"airops-service/pkg/logger"
	"airops-service/pkg/metrics"

	"github.com/google/uuid"
)

// EmailJob is one email to deliver plus the records it belongs to
type EmailJob struct {
	Kind   string
	PNR    string
	ItemID string
	Email  entity.OutgoingEmail
}

// SendTask is the handle of one in-flight send
type SendTask struct {
	Job    EmailJob
	done   chan struct{}
	result entity.SendResult
}

// Done is closed once the send has resolved
func (t *SendTask) Done() <-chan struct{} {
	return t.done
}

// Result returns the outcome; it blocks until the send has resolved
func (t *SendTask) Result() entity.SendResult {
	<-t.done
	return t.result
}

// Wait blocks until the send resolves or ctx is done
func (t *SendTask) Wait(ctx context.Context) (entity.SendResult, error) {
	select {
	case <-t.done:
		return t.result, nil
	case <-ctx.Done():
		return entity.SendResult{}, ctx.Err()
	}
}

// EmailDispatcher sends emails in the background, one goroutine per email.
// Sends are attempted once and are not ordered against each other.
type EmailDispatcher struct {
	root       context.Context
	mailer     repository.Mailer
	sentEmails repository.SentEmailRepository
	oplog      opLog
	metrics    *metrics.Metrics
	logger     logger.Logger
	timeout    time.Duration

	wg sync.WaitGroup
}

// NewEmailDispatcher creates a dispatcher; in-flight sends are cancelled when root is done
func NewEmailDispatcher(
	root context.Context,
	mailer repository.Mailer,
	sentEmails repository.SentEmailRepository,
	logs repository.LogRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
	timeout time.Duration,
) *EmailDispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &EmailDispatcher{
		root:       root,
		mailer:     mailer,
		sentEmails: sentEmails,
		oplog:      newOpLog(logs, entity.SourceEmail, logger),
		metrics:    metrics,
		logger:     logger,
		timeout:    timeout,
	}
}

// Dispatch starts the send and returns immediately. onDone, if set, runs on
// the sending goroutine once the outcome is recorded.
func (d *EmailDispatcher) Dispatch(ctx context.Context, job EmailJob, onDone func(entity.SendResult)) *SendTask {
	task := &SendTask{Job: job, done: make(chan struct{})}

	link := entity.LogEntry{PNR: job.PNR, ItemID: job.ItemID}
	d.oplog.info(ctx, link, "%s EMAIL QUEUED TO %s", job.Kind, job.Email.To)

	// detached from the caller so a finished request does not abort the send
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	stop := context.AfterFunc(d.root, cancel)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()
		defer stop()

		result := d.mailer.Send(sendCtx, job.Email)
		d.record(sendCtx, job, result)

		task.result = result
		close(task.done)

		if onDone != nil {
			onDone(result)
		}
	}()

	return task
}

func (d *EmailDispatcher) record(ctx context.Context, job EmailJob, result entity.SendResult) {
	link := entity.LogEntry{PNR: job.PNR, ItemID: job.ItemID}

	if !result.Success {
		d.metrics.EmailOutcome("failed")
		d.oplog.error(ctx, link, "%s EMAIL TO %s FAILED: %s %s", job.Kind, job.Email.To, result.Reason, result.Error)
		d.logger.Warn("Email send failed",
			"kind", job.Kind,
			"to", job.Email.To,
			"reason", result.Reason,
			"error", result.Error)
		return
	}

	d.metrics.EmailOutcome("sent")
	d.oplog.info(ctx, link, "%s EMAIL SENT TO %s (%s)", job.Kind, job.Email.To, result.MessageID)

	if d.sentEmails == nil {
		return
	}
	sent := &entity.SentEmail{
		ID:        uuid.NewString(),
		Kind:      job.Kind,
		PNR:       job.PNR,
		ItemID:    job.ItemID,
		To:        job.Email.To,
		Subject:   job.Email.Subject,
		MessageID: result.MessageID,
		SentAt:    time.Now(),
	}
	if err := d.sentEmails.Save(ctx, sent); err != nil {
		d.logger.Error("Failed to record sent email", "to", job.Email.To, "error", err)
	}
}

// After runs fn on its own goroutine once delay has passed. fn is skipped
// if the root context ends first, and its context is cancelled with root.
// Wait covers it like a send.
func (d *EmailDispatcher) After(ctx context.Context, delay time.Duration, fn func(context.Context)) {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(d.root, cancel)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()
		defer stop()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-runCtx.Done():
			d.logger.Debug("Delayed job dropped at shutdown")
			return
		case <-timer.C:
		}
		fn(runCtx)
	}()
}

// Wait blocks until every dispatched send and delayed job has finished
func (d *EmailDispatcher) Wait() {
	d.wg.Wait()
}
