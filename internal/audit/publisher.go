package audit

import (
	"context"
	"log/slog"
	"sync"
)

// Sink receives published events. Implementations must be safe for concurrent
// use.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher fans events out to a sink, either synchronously or through a
// buffered worker. Close drains the buffer before returning, so no emitted
// event is lost on shutdown.
type Publisher struct {
	sink   Sink
	logger *slog.Logger

	ch        chan Event
	wg        sync.WaitGroup
	closeOnce sync.Once
}

type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to asynchronous delivery through a
// buffer of the given size. Emit then never blocks on the sink.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.ch = make(chan Event, size)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher constructs a publisher over the sink. Without options delivery
// is synchronous.
func NewPublisher(sink Sink, opts ...Option) *Publisher {
	p := &Publisher{sink: sink, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.ch != nil {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

// Emit records an event. Audit failures are logged, not propagated: a lost
// audit record must not fail the user-facing operation.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if p.ch != nil {
		select {
		case p.ch <- event:
		case <-ctx.Done():
		}
		return
	}
	if err := p.sink.Append(ctx, event); err != nil {
		p.logger.ErrorContext(ctx, "failed to append audit event",
			"action", event.Action, "subject_id", event.SubjectID, "error", err)
	}
}

// Close drains pending events and stops the worker. Safe to call more than
// once.
func (p *Publisher) Close() {
	p.closeOnce.Do(func() {
		if p.ch != nil {
			close(p.ch)
			p.wg.Wait()
		}
	})
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for event := range p.ch {
		if err := p.sink.Append(context.Background(), event); err != nil {
			p.logger.Error("failed to append audit event",
				"action", event.Action, "subject_id", event.SubjectID, "error", err)
		}
	}
}
