package catalog

import (
	"context"
	"sync"

	"github.com/veslund/fleetdex/pkg/models"
)

// State is the fetch lifecycle of one vessel's inspection history.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Result is the outcome of one inspection fetch. A failed fetch is a value
// with an empty row set and a non-nil Err, never a panic or a dangling state.
type Result struct {
	Rows []models.Inspection
	Err  error
}

// Pending is the future handed to everyone waiting on one vessel's fetch.
// Concurrent requesters for the same vessel share the same Pending.
type Pending struct {
	done chan struct{}
	res  Result
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) resolve(res Result) {
	p.res = res
	close(p.done)
}

// Done is closed once the fetch has completed, successfully or not.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the fetch completes or ctx is cancelled. Cancellation
// abandons only this caller's wait; the shared fetch keeps running and still
// settles the cache for future use.
func (p *Pending) Wait(ctx context.Context) Result {
	select {
	case <-p.done:
		return p.res
	case <-ctx.Done():
		return Result{Rows: []models.Inspection{}, Err: ctx.Err()}
	}
}

// InspectionFetcher is the slice of the data source the cache needs.
type InspectionFetcher interface {
	FetchInspections(ctx context.Context, vesselID string) ([]models.Inspection, error)
}

type cacheEntry struct {
	state   State
	rows    []models.Inspection
	pending *Pending
}

// DetailCache loads inspection histories on demand, one fetch per vessel at
// a time. Entries are created lazily on first request and live until the
// cache is discarded with its catalog on reload.
//
// Transitions per vessel are strictly idle→loading→{loaded|failed}, with
// failed→loading on the next request: a failure is never sticky, and there
// is no backoff. The mutex is the single serialization point required for
// multi-goroutine hosts; everything else assumes single-writer semantics.
type DetailCache struct {
	mu      sync.Mutex
	fetcher InspectionFetcher
	entries map[string]*cacheEntry
}

// NewDetailCache returns an empty cache reading from fetcher.
func NewDetailCache(fetcher InspectionFetcher) *DetailCache {
	return &DetailCache{
		fetcher: fetcher,
		entries: make(map[string]*cacheEntry),
	}
}

// EnsureLoaded returns the future for vesselID's inspection history.
//
// Loaded entries resolve immediately from the cached rows with no fetch.
// A loading entry returns the pending future already in flight, so at most
// one fetch per vessel is ever outstanding. Idle and failed entries start a
// fresh fetch.
func (c *DetailCache) EnsureLoaded(vesselID string) *Pending {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := c.entries[vesselID]
	if entry == nil {
		entry = &cacheEntry{}
		c.entries[vesselID] = entry
	}

	switch entry.state {
	case StateLoaded, StateLoading:
		return entry.pending
	}

	pending := newPending()
	entry.state = StateLoading
	entry.pending = pending
	go c.fetch(vesselID, pending)
	return pending
}

// fetch runs outside the lock and is the only writer for its vessel while
// the entry is loading. It deliberately uses a background context: a vessel
// going hidden mid-fetch never cancels the fetch (spec'd — the result still
// settles the cache for later).
func (c *DetailCache) fetch(vesselID string, pending *Pending) {
	rows, err := c.fetcher.FetchInspections(context.Background(), vesselID)

	c.mu.Lock()
	entry := c.entries[vesselID]
	if err != nil {
		entry.state = StateFailed
		entry.rows = nil
	} else {
		if rows == nil {
			rows = []models.Inspection{}
		}
		entry.state = StateLoaded
		entry.rows = rows
	}
	c.mu.Unlock()

	if err != nil {
		pending.resolve(Result{Rows: []models.Inspection{}, Err: err})
		return
	}
	pending.resolve(Result{Rows: rows})
}

// State reports the lifecycle state for vesselID; idle if never requested.
func (c *DetailCache) State(vesselID string) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := c.entries[vesselID]
	if entry == nil {
		return StateIdle
	}
	return entry.state
}

// Rows returns the cached rows for vesselID, or nil when not loaded.
func (c *DetailCache) Rows(vesselID string) []models.Inspection {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := c.entries[vesselID]
	if entry == nil || entry.state != StateLoaded {
		return nil
	}
	return entry.rows
}
