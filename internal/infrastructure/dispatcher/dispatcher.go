package dispatcher

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/mitiledger/internal/usecase"
)

// ErrStopped is returned by Submit once the worker has shut down.
var ErrStopped = errors.New("dispatcher stopped")

// Handler processes one inbound message.
type Handler interface {
	HandleMessage(ctx context.Context, msg usecase.Message) ([]string, error)
}

// Config for Dispatcher.
type Config struct {
	Handler   Handler
	Logger    zerolog.Logger
	QueueSize int // Messages buffered ahead of the worker
}

// Dispatcher feeds inbound messages to a single worker so that each message
// is fully processed before the next one starts.
type Dispatcher struct {
	handler Handler
	logger  zerolog.Logger
	queue   chan job
	stopped chan struct{}
}

type job struct {
	ctx    context.Context
	msg    usecase.Message
	result chan result
}

type result struct {
	replies []string
	err     error
}

// New creates a new Dispatcher. Call Start to run the worker.
func New(cfg Config) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}

	return &Dispatcher{
		handler: cfg.Handler,
		logger:  cfg.Logger,
		queue:   make(chan job, cfg.QueueSize),
		stopped: make(chan struct{}),
	}
}

// Start runs the worker until ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.logger.Info().Int("queue_size", cap(d.queue)).Msg("dispatcher started")
	defer close(d.stopped)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info().Int("pending", len(d.queue)).Msg("dispatcher shutting down")
			return ctx.Err()
		case j := <-d.queue:
			d.process(j)
		}
	}
}

// process runs a queued message to completion even if its submitter gave up,
// so a half-applied command is never left behind.
func (d *Dispatcher) process(j job) {
	start := time.Now()

	replies, err := d.handler.HandleMessage(context.WithoutCancel(j.ctx), j.msg)
	if err != nil {
		d.logger.Error().Err(err).Str("message_id", j.msg.ID).Msg("failed to handle message")
	}

	d.logger.Debug().
		Str("message_id", j.msg.ID).
		Int("replies", len(replies)).
		Dur("duration", time.Since(start)).
		Msg("message handled")

	j.result <- result{replies: replies, err: err}
}

// Submit queues msg and waits for its replies.
func (d *Dispatcher) Submit(ctx context.Context, msg usecase.Message) ([]string, error) {
	j := job{ctx: ctx, msg: msg, result: make(chan result, 1)}

	select {
	case <-d.stopped:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	case d.queue <- j:
	}

	select {
	case r := <-j.result:
		return r.replies, r.err
	case <-d.stopped:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Len returns the number of messages waiting for the worker.
func (d *Dispatcher) Len() int {
	return len(d.queue)
}
