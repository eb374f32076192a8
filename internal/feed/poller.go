package feed

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultPollInterval = 10 * time.Second
	DefaultPollLimit    = 20

	// LoadErrorMessage is the only failure text shown to users.
	LoadErrorMessage = "Failed to load transfers"
)

// ErrPollInProgress is logged when a pass is requested while another runs.
var ErrPollInProgress = errors.New("poll already in progress")

// Source produces the newest transfers; *Collector satisfies it.
type Source interface {
	Collect(ctx context.Context, n int) ([]TokenTransfer, error)
}

// Sink receives every state the poller publishes. It must not block.
type Sink interface {
	Publish(State)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(State)

func (f SinkFunc) Publish(s State) { f(s) }

type PollerOptions struct {
	Interval time.Duration
	Limit    int
}

// Poller drives the loading/success/error cycle: once at startup, then on
// every tick or manual refresh, one pass at a time.
type Poller struct {
	source  Source
	window  *Window
	opts    PollerOptions
	sink    Sink
	logger  *zap.Logger
	running atomic.Bool
	refresh chan struct{}
}

func NewPoller(source Source, window *Window, opts PollerOptions, sink Sink, logger *zap.Logger) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultPollInterval
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultPollLimit
	}
	if window == nil {
		window = NewWindow(opts.Limit)
	}
	if sink == nil {
		sink = SinkFunc(func(State) {})
	}
	return &Poller{
		source:  source,
		window:  window,
		opts:    opts,
		sink:    sink,
		logger:  logger.Named("poller"),
		refresh: make(chan struct{}, 1),
	}
}

// Run polls until ctx is cancelled. The ticker is stopped on return.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("Starting transfer poller",
		zap.Duration("interval", p.opts.Interval),
		zap.Int("limit", p.opts.Limit))

	p.Poll(ctx)

	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("Transfer poller stopped")
			return nil
		case <-ticker.C:
			p.Poll(ctx)
		case <-p.refresh:
			p.Poll(ctx)
		}
	}
}

// Refresh asks Run for an extra pass. Requests made while one is already
// queued are folded into it.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// Poll runs a single pass and returns the final state. ok is false when the
// pass was skipped because another one was running or ctx was cancelled.
func (p *Poller) Poll(ctx context.Context) (state State, ok bool) {
	if !p.running.CompareAndSwap(false, true) {
		p.logger.Debug("Skipping poll", zap.Error(ErrPollInProgress))
		return State{}, false
	}
	defer p.running.Store(false)

	passID := uuid.NewString()
	log := p.logger.With(zap.String("pass_id", passID))

	p.sink.Publish(State{
		Status:    StatusLoading,
		Transfers: p.window.Snapshot(),
		PassID:    passID,
	})

	start := time.Now()
	batch, err := p.collect(ctx)
	if ctx.Err() != nil {
		log.Debug("Poll cancelled", zap.Error(ctx.Err()))
		return State{}, false
	}

	state = State{
		Status:    StatusSuccess,
		UpdatedAt: time.Now(),
		PassID:    passID,
	}
	if err != nil {
		log.Error("Poll failed", zap.Error(err))
		state.Status = StatusError
		state.Err = LoadErrorMessage
	} else {
		state.Changed = p.window.Merge(batch)
		log.Debug("Poll finished",
			zap.Int("fetched", len(batch)),
			zap.Bool("changed", state.Changed),
			zap.String("newest", p.window.Newest()),
			zap.Duration("took", time.Since(start)))
	}
	state.Transfers = p.window.Snapshot()

	p.sink.Publish(state)
	return state, true
}

func (p *Poller) collect(ctx context.Context) (batch []TokenTransfer, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("collector panic: %v", r)
		}
	}()
	return p.source.Collect(ctx, p.opts.Limit)
}
