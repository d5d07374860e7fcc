// Package txengine runs a single asynchronous operation (a balance query, a
// ledger submission, or anything else) with explicit, capped retries and
// failures classified into the apperror taxonomy.
//
// A Run is owned by one call site. Execute and Retry must not be called
// concurrently on the same Run; the accessors may be read from any goroutine.
package txengine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/myfans/settlement/internal/apperror"
	"github.com/shopspring/decimal"
)

// State of a Run.
type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending"
	StateSuccess State = "success"
	StateFailed  State = "failed"
)

// Unit is the operation a Run executes.
type Unit[T any] func(ctx context.Context) (T, error)

// Connectivity reports whether the network the unit depends on is reachable.
type Connectivity interface {
	Online() bool
}

// Options configure a Run. The zero value runs a unit once with no retries;
// Defaults fills the standard budget.
type Options[T any] struct {
	OnSuccess       func(result T)
	OnError         func(err *apperror.Error)
	OnRetry         func(attempt int)
	Amount          decimal.Decimal
	Type            string
	Currency        string
	RetryDelay      time.Duration
	MaxDelay        time.Duration
	BackoffMultiple float64
	MaxRetries      int
}

// Defaults applies the standard retry budget (3 retries, 1s apart) to
// zero fields. Callers holding an explicit budget, where zero means "no
// retries", pass their options to New unchanged.
func (o Options[T]) Defaults() Options[T] {
	if o.MaxRetries == 0 {
		o.MaxRetries = 3
	}
	if o.RetryDelay == 0 {
		o.RetryDelay = time.Second
	}
	if o.BackoffMultiple < 1 {
		o.BackoffMultiple = 1
	}
	return o
}

// Option sets a collaborator on a Run.
type Option func(*deps)

type deps struct {
	connectivity Connectivity
	clock        clockwork.Clock
	logger       *slog.Logger
}

// WithConnectivity makes Execute short-circuit with an offline error when c
// reports the network as unreachable.
func WithConnectivity(c Connectivity) Option {
	return func(d *deps) { d.connectivity = c }
}

// WithClock replaces the wall clock used for retry delays.
func WithClock(c clockwork.Clock) Option {
	return func(d *deps) { d.clock = c }
}

// WithLogger sets the logger for attempt outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(d *deps) { d.logger = l }
}

// Run tracks one logical operation across its attempts.
type Run[T any] struct {
	opts Options[T]
	deps deps

	mu         sync.RWMutex
	state      State
	result     T
	err        *apperror.Error
	retryCount int
	unit       Unit[T]
}

// New creates an idle Run.
func New[T any](opts Options[T], options ...Option) *Run[T] {
	d := deps{
		clock:  clockwork.NewRealClock(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range options {
		o(&d)
	}
	return &Run[T]{
		opts:  opts,
		deps:  d,
		state: StateIdle,
	}
}

// Execute stores unit for later retries and invokes it. It returns the
// result and true on success, or the zero value and false on failure; the
// classified failure is available from Err.
func (r *Run[T]) Execute(ctx context.Context, unit Unit[T]) (T, bool) {
	var zero T

	if r.deps.connectivity != nil && !r.deps.connectivity.Online() {
		r.fail(apperror.Classify(apperror.KindOffline, apperror.Overrides{Context: r.diagnostics()}))
		return zero, false
	}

	r.mu.Lock()
	r.unit = unit
	r.state = StatePending
	r.err = nil
	r.mu.Unlock()

	result, err := r.invoke(ctx, unit)
	if err != nil {
		classified := apperror.FromUnknown(err)
		if classified.Context == nil {
			classified = classified.WithContext(r.diagnostics())
		}
		r.fail(classified)
		return zero, false
	}

	r.mu.Lock()
	r.result = result
	r.state = StateSuccess
	r.retryCount = 0
	r.mu.Unlock()

	executions.WithLabelValues(r.label(), outcomeSuccess, "").Inc()
	r.deps.logger.Debug("transaction unit succeeded", "type", r.opts.Type)

	if r.opts.OnSuccess != nil {
		r.opts.OnSuccess(result)
	}
	return result, true
}

// Retry re-runs the stored unit after the configured delay. Once the retry
// count exceeds MaxRetries the run fails with a network error and the unit is
// not invoked again. Without a stored unit Retry does nothing.
func (r *Run[T]) Retry(ctx context.Context) (T, bool) {
	var zero T

	r.mu.Lock()
	unit := r.unit
	if unit == nil {
		r.mu.Unlock()
		return zero, false
	}
	r.retryCount++
	attempt := r.retryCount
	r.mu.Unlock()

	retries.WithLabelValues(r.label()).Inc()
	if r.opts.OnRetry != nil {
		r.opts.OnRetry(attempt)
	}

	if delay := r.delayFor(attempt); delay > 0 {
		select {
		case <-ctx.Done():
			r.fail(apperror.FromUnknown(ctx.Err()))
			return zero, false
		case <-r.deps.clock.After(delay):
		}
	}

	if attempt > r.opts.MaxRetries {
		r.fail(apperror.Classify(apperror.KindNetworkError, apperror.Overrides{
			Message: "Maximum retry attempts exceeded",
			Context: map[string]any{
				"retryCount": attempt,
				"maxRetries": r.opts.MaxRetries,
			},
		}))
		return zero, false
	}

	return r.Execute(ctx, unit)
}

// Reset discards the result, error, retry count and stored unit.
func (r *Run[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	r.state = StateIdle
	r.result = zero
	r.err = nil
	r.retryCount = 0
	r.unit = nil
}

// State returns the current state.
func (r *Run[T]) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Result returns the last successful result.
func (r *Run[T]) Result() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.result
}

// Err returns the classified failure, or nil unless the run failed.
func (r *Run[T]) Err() *apperror.Error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}

// RetryCount returns the number of Retry calls since the last success or Reset.
func (r *Run[T]) RetryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.retryCount
}

// CanRetry reports whether the last failure is recoverable and the retry
// budget has room left.
func (r *Run[T]) CanRetry() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state == StateFailed && r.unit != nil && r.err != nil &&
		r.err.Recoverable && r.retryCount < r.opts.MaxRetries
}

func (r *Run[T]) invoke(ctx context.Context, unit Unit[T]) (result T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = apperror.Classify(apperror.KindInternal, apperror.Overrides{
				Cause: fmt.Errorf("panic in transaction unit: %v", p),
			})
		}
	}()
	return unit(ctx)
}

func (r *Run[T]) fail(err *apperror.Error) {
	r.mu.Lock()
	var zero T
	r.result = zero
	r.err = err
	r.state = StateFailed
	r.mu.Unlock()

	executions.WithLabelValues(r.label(), outcomeFailed, string(err.Kind)).Inc()
	r.deps.logger.Warn("transaction unit failed",
		"type", r.opts.Type,
		"kind", err.Kind,
		"retry_count", r.RetryCount(),
		"error", err,
	)

	if r.opts.OnError != nil {
		r.opts.OnError(err)
	}
}

// delayFor returns RetryDelay scaled by BackoffMultiple^(attempt-1), capped by
// MaxDelay when set.
func (r *Run[T]) delayFor(attempt int) time.Duration {
	if r.opts.RetryDelay <= 0 {
		return 0
	}
	mult := r.opts.BackoffMultiple
	if mult < 1 {
		mult = 1
	}
	delay := time.Duration(float64(r.opts.RetryDelay) * math.Pow(mult, float64(attempt-1)))
	if r.opts.MaxDelay > 0 && delay > r.opts.MaxDelay {
		delay = r.opts.MaxDelay
	}
	return delay
}

func (r *Run[T]) diagnostics() map[string]any {
	ctx := map[string]any{}
	if r.opts.Type != "" {
		ctx["txType"] = r.opts.Type
	}
	if !r.opts.Amount.IsZero() {
		ctx["amount"] = r.opts.Amount.String()
	}
	if r.opts.Currency != "" {
		ctx["currency"] = r.opts.Currency
	}
	return ctx
}

func (r *Run[T]) label() string {
	if r.opts.Type == "" {
		return "unspecified"
	}
	return r.opts.Type
}
