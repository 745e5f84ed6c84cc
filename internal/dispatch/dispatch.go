// Package dispatch runs the bounded worker pool that generates and sends one
// email per recipient, shaping outbound rate with a randomized per-worker
// delay between sends.
package dispatch

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shivam27k/email-automation-bot/internal/mail"
	"github.com/shivam27k/email-automation-bot/internal/types"
)

// Worker pool bounds and the inter-send delay window. The delay is uniform
// in [minSendDelay, minSendDelay+sendDelaySpread) per worker.
const (
	MinWorkers      = 1
	MaxWorkers      = 5
	minSendDelay    = 2 * time.Second
	sendDelaySpread = 4 * time.Second
)

// ContentGenerator produces the message for a recipient. Implementations
// must be safe for concurrent use.
type ContentGenerator interface {
	Generate(ctx context.Context, recipient types.Recipient) types.EmailMessage
}

// Result records the outcome of one recipient's send attempt.
type Result struct {
	Recipient types.Recipient
	Message   types.EmailMessage
	Err       error
}

// Summary aggregates a batch run.
type Summary struct {
	BatchID string
	Total   int
	Sent    int
	Failed  int
	Results []Result
}

// Dispatcher processes a recipient list with a fixed-size worker pool.
type Dispatcher struct {
	gen     ContentGenerator
	sender  mail.Sender
	workers int
	logger  *zap.Logger

	// injectable for tests
	sleep func(time.Duration)
	delay func() time.Duration
}

// New creates a Dispatcher with the worker count clamped to [1,5].
func New(gen ContentGenerator, sender mail.Sender, workers int, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		gen:     gen,
		sender:  sender,
		workers: ClampWorkers(workers),
		logger:  logger,
		sleep:   time.Sleep,
		delay:   randomSendDelay,
	}
}

// ClampWorkers bounds a configured worker count to the supported pool size.
func ClampWorkers(n int) int {
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// Run processes every recipient exactly once and blocks until the queue is
// drained and all workers have exited. Per-recipient failures are logged and
// recorded but never abort the batch or other workers.
func (d *Dispatcher) Run(ctx context.Context, recipients []types.Recipient) Summary {
	queue := make(chan types.Recipient, len(recipients))
	for _, r := range recipients {
		queue <- r
	}
	close(queue)

	batchID := uuid.NewString()
	logger := d.logger.With(zap.String("batch_id", batchID))
	logger.Info("dispatching batch",
		zap.Int("recipients", len(recipients)),
		zap.Int("workers", d.workers))

	var (
		mu      sync.Mutex
		results []Result
	)
	record := func(res Result) {
		mu.Lock()
		results = append(results, res)
		mu.Unlock()
	}

	g := new(errgroup.Group)
	for w := 1; w <= d.workers; w++ {
		workerLog := logger.With(zap.Int("worker", w))
		g.Go(func() error {
			d.work(ctx, queue, workerLog, record)
			return nil
		})
	}
	_ = g.Wait()

	summary := Summary{BatchID: batchID, Total: len(recipients), Results: results}
	for _, res := range results {
		if res.Err != nil {
			summary.Failed++
		} else {
			summary.Sent++
		}
	}
	logger.Info("batch complete",
		zap.Int("sent", summary.Sent),
		zap.Int("failed", summary.Failed))
	return summary
}

// work drains the queue: generate, send, record, then sleep the randomized
// inter-send delay. The worker exits when the queue is empty.
func (d *Dispatcher) work(ctx context.Context, queue <-chan types.Recipient, logger *zap.Logger, record func(Result)) {
	for recipient := range queue {
		msg := d.gen.Generate(ctx, recipient)

		err := d.sender.Send(recipient, msg)
		if err != nil {
			logger.Error("failed to send email",
				zap.String("recipient", recipient.Email),
				zap.Error(err))
		} else {
			logger.Info("processed recipient",
				zap.String("recipient", recipient.Email),
				zap.String("subject", msg.Subject))
		}
		record(Result{Recipient: recipient, Message: msg, Err: err})

		d.sleep(d.delay())
	}
}

func randomSendDelay() time.Duration {
	return minSendDelay + time.Duration(rand.Float64()*float64(sendDelaySpread))
}
