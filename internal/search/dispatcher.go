package search

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"maxgear/internal/catalog"
	"maxgear/internal/domain"
	"maxgear/internal/eventbus"
)

// ResultMsg is returned by the command Search produces once the catalog
// lookup settles.
type ResultMsg struct {
	Seq       uint64
	RequestID string
	Query     Query
	Items     []domain.Product
	Err       error
	Elapsed   time.Duration
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithEventBus publishes search lifecycle events on bus
func WithEventBus(bus eventbus.EventBus) Option {
	return func(d *Dispatcher) { d.bus = bus }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithTimeout bounds every lookup; zero means no bound beyond the parent context
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) { d.timeout = timeout }
}

// WithContext sets the parent context of every lookup
func WithContext(ctx context.Context) Option {
	return func(d *Dispatcher) { d.parent = ctx }
}

// WithRequestIDs replaces the request id generator
func WithRequestIDs(next func() string) Option {
	return func(d *Dispatcher) { d.newID = next }
}

// Dispatcher turns queries into catalog lookups and applies their outcome to
// the store. The last dispatched search wins: results of superseded searches
// are dropped when they arrive.
//
// Search, Complete and Cancel must be called from the update loop.
type Dispatcher struct {
	searcher catalog.Searcher
	store    Mutator
	bus      eventbus.EventBus
	logger   *slog.Logger
	timeout  time.Duration
	parent   context.Context
	newID    func() string

	seq      uint64
	inflight bool
	cancel   context.CancelFunc
}

// NewDispatcher creates a dispatcher writing to store
func NewDispatcher(searcher catalog.Searcher, store Mutator, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		searcher: searcher,
		store:    store,
		parent:   context.Background(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}
	return d
}

// Submit normalizes raw and dispatches it. Blank input returns nil and
// leaves the state untouched.
func (d *Dispatcher) Submit(raw string) tea.Cmd {
	q, err := Normalize(raw)
	if err != nil {
		d.logger.Debug("search input rejected", slog.String("raw", raw))
		return nil
	}
	return d.Search(q)
}

// Search marks the store loading, supersedes any in-flight search and
// returns the command performing the lookup.
func (d *Dispatcher) Search(q Query) tea.Cmd {
	d.Cancel()

	d.seq++
	seq := d.seq
	id := d.newID()

	var ctx context.Context
	var cancel context.CancelFunc
	if d.timeout > 0 {
		ctx, cancel = context.WithTimeout(d.parent, d.timeout)
	} else {
		ctx, cancel = context.WithCancel(d.parent)
	}
	ctx = catalog.WithRequestID(ctx, id)
	d.cancel = cancel
	d.inflight = true

	d.store.Start(q)
	d.publish(domain.SearchStartedEvent{Seq: seq, RequestID: id, Query: q.String()})

	searcher := d.searcher
	return func() tea.Msg {
		start := time.Now()
		items, err := searcher.SearchProducts(ctx, q.String())
		return ResultMsg{
			Seq:       seq,
			RequestID: id,
			Query:     q,
			Items:     items,
			Err:       err,
			Elapsed:   time.Since(start),
		}
	}
}

// Complete applies msg to the store. It returns false when msg belongs to a
// superseded or cancelled search and was dropped.
func (d *Dispatcher) Complete(msg ResultMsg) bool {
	if msg.Seq != d.seq || !d.inflight {
		d.logger.Debug("dropping stale search result",
			slog.Uint64("seq", msg.Seq),
			slog.Uint64("latest", d.seq),
			slog.String("query", msg.Query.String()),
		)
		d.publish(domain.SearchDiscardedEvent{
			Seq:       msg.Seq,
			Latest:    d.seq,
			RequestID: msg.RequestID,
			Query:     msg.Query.String(),
			Elapsed:   msg.Elapsed,
		})
		return false
	}

	d.inflight = false
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}

	if msg.Err != nil {
		message := catalog.Message(msg.Err)
		if message == "" {
			message = "search failed"
		}
		d.store.Fail(message)
		d.publish(domain.SearchFailedEvent{
			Seq:       msg.Seq,
			RequestID: msg.RequestID,
			Query:     msg.Query.String(),
			Message:   message,
			Err:       msg.Err,
			Elapsed:   msg.Elapsed,
		})
		return true
	}

	d.store.Succeed(msg.Items)
	d.publish(domain.SearchSucceededEvent{
		Seq:       msg.Seq,
		RequestID: msg.RequestID,
		Query:     msg.Query.String(),
		Count:     len(msg.Items),
		Elapsed:   msg.Elapsed,
	})
	return true
}

// Cancel aborts the in-flight search, if any. Its result will be dropped.
func (d *Dispatcher) Cancel() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.inflight = false
}

// Latest returns the sequence number of the last dispatched search
func (d *Dispatcher) Latest() uint64 {
	return d.seq
}

// InFlight reports whether the latest search has not settled yet
func (d *Dispatcher) InFlight() bool {
	return d.inflight
}

func (d *Dispatcher) publish(e domain.DomainEvent) {
	if d.bus != nil {
		d.bus.Publish(e)
	}
}
