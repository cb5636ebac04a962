package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueNotifications = "jobs:notifications"
	QueueInvoices      = "jobs:invoices"
	QueueEmail         = "jobs:email"

	// MaxJobAttempts is how many times a job runs before it goes to the DLQ.
	MaxJobAttempts = 3
)

// Job is the envelope pushed onto every queue.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Handler processes one job payload. A returned error schedules a retry;
// errors wrapped with Permanent go straight to the DLQ.
type Handler interface {
	Process(ctx context.Context, raw json.RawMessage) error
}

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error { return permanentError{err: err} }

func isPermanent(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}

// ── Dispatcher ────────────────────────────────────────────────────────────────

// Dispatcher enqueues jobs into Redis lists consumed by the Pool via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

type NotificationJobPayload struct {
	NotificationID string `json:"notification_id"`
}

type InvoiceJobPayload struct {
	InvoiceID string `json:"invoice_id"`
}

func (d *Dispatcher) EnqueueNotification(ctx context.Context, id uuid.UUID) error {
	return d.enqueue(ctx, QueueNotifications, "notification", NotificationJobPayload{NotificationID: id.String()})
}

func (d *Dispatcher) EnqueueInvoice(ctx context.Context, id uuid.UUID) error {
	return d.enqueue(ctx, QueueInvoices, "invoice", InvoiceJobPayload{InvoiceID: id.String()})
}

func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, "email", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return d.push(ctx, queue, Job{Type: jobType, Payload: data})
}

func (d *Dispatcher) push(ctx context.Context, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// ── Pool ──────────────────────────────────────────────────────────────────────

// Pool runs size goroutines that BRPOP every registered queue.
type Pool struct {
	rdb      *redis.Client
	size     int
	handlers map[string]Handler
	wg       sync.WaitGroup
}

func NewPool(rdb *redis.Client, size int) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{rdb: rdb, size: size, handlers: make(map[string]Handler)}
}

// Register must be called before Start.
func (p *Pool) Register(queue string, h Handler) {
	p.handlers[queue] = h
}

func (p *Pool) queues() []string {
	out := make([]string, 0, len(p.handlers))
	for _, q := range []string{QueueNotifications, QueueInvoices, QueueEmail} {
		if _, ok := p.handlers[q]; ok {
			out = append(out, q)
		}
	}
	return out
}

// Start returns immediately. Workers exit when ctx is cancelled; Wait blocks
// until they have.
func (p *Pool) Start(ctx context.Context) {
	queues := p.queues()
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			p.run(ctx, id, queues)
		}(i)
	}
	log.Info().Int("workers", p.size).Strs("queues", queues).Msg("worker pool started")
}

func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) run(ctx context.Context, id int, queues []string) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Msg("worker shutting down")
			return
		default:
			// waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
					log.Warn().Err(err).Int("worker", id).Msg("brpop failed")
					time.Sleep(time.Second)
				}
				continue
			}
			if len(result) < 2 {
				continue
			}
			p.processJob(ctx, result[0], result[1])
		}
	}
}

func (p *Pool) processJob(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		SendToDLQ(ctx, p.rdb, queue, "unknown", json.RawMessage(`null`), "malformed envelope: "+err.Error(), 0)
		return
	}
	h, ok := p.handlers[queue]
	if !ok {
		log.Error().Str("queue", queue).Msg("no handler registered")
		return
	}

	job.Attempts++
	err := h.Process(ctx, job.Payload)
	if err == nil {
		log.Debug().Str("type", job.Type).Str("queue", queue).Int("attempt", job.Attempts).Msg("job done")
		return
	}

	if isPermanent(err) || job.Attempts >= MaxJobAttempts {
		SendToDLQ(ctx, p.rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
		return
	}
	log.Warn().
		Err(err).
		Str("type", job.Type).
		Int("attempt", job.Attempts).
		Msg("job failed, requeueing")

	wait := computeRetryBackoff(job.Attempts)
	select {
	case <-ctx.Done():
	case <-time.After(wait):
	}
	// use a fresh context so a job caught by shutdown is not lost
	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := (&Dispatcher{rdb: p.rdb}).push(pushCtx, queue, job); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("failed to requeue job")
	}
}

// computeRetryBackoff: 1s, 2s, 4s ... capped at 30s.
func computeRetryBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := time.Duration(1<<uint(attempt-1)) * time.Second
	if d > 30*time.Second {
		d = 30 * time.Second
	}
	return d
}
