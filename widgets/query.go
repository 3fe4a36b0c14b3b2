package widgets

import (
	"context"
	"sync"

	"github.com/quietfox/headless/store"
)

// Source supplies filtered items for a combobox from an asynchronous
// backend. Query must honor ctx cancellation best-effort; results of
// superseded queries are discarded regardless.
type Source interface {
	Query(ctx context.Context, text string) ([]store.Item, error)
}

// SourceFunc adapts a function into a Source.
type SourceFunc func(ctx context.Context, text string) ([]store.Item, error)

// Query calls the wrapped function.
func (f SourceFunc) Query(ctx context.Context, text string) ([]store.Item, error) {
	return f(ctx, text)
}

// QueryResult is the outcome of one async filter query. Seq ties the
// result to the query that produced it; only the newest sequence may
// update machine state.
type QueryResult struct {
	Seq   uint64
	Text  string
	Items []store.Item
	Err   error
}

// queryCoordinator hands out monotonically increasing query sequence
// numbers and cancels the previous query when a new one is issued.
type queryCoordinator struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// next supersedes any outstanding query and returns the new sequence
// number with its cancellable context.
func (q *queryCoordinator) next(parent context.Context) (uint64, context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.cancel != nil {
		q.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	q.cancel = cancel
	q.seq++
	return q.seq, ctx
}

// latest returns the newest issued sequence number.
func (q *queryCoordinator) latest() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.seq
}

// stop cancels any outstanding query.
func (q *queryCoordinator) stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
}
