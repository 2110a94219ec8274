package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veslund/fleetdex/pkg/models"
)

// blockingFetcher serves scripted results and can hold fetches open until
// released, so tests can observe the in-flight window.
type blockingFetcher struct {
	mu      sync.Mutex
	calls   map[string]int
	rows    map[string][]models.Inspection
	errs    map[string]error
	release chan struct{} // nil means resolve immediately
}

func newBlockingFetcher() *blockingFetcher {
	return &blockingFetcher{
		calls: make(map[string]int),
		rows:  make(map[string][]models.Inspection),
		errs:  make(map[string]error),
	}
}

func (f *blockingFetcher) FetchInspections(_ context.Context, vesselID string) ([]models.Inspection, error) {
	f.mu.Lock()
	f.calls[vesselID]++
	release := f.release
	f.mu.Unlock()

	if release != nil {
		<-release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[vesselID]; err != nil {
		return nil, err
	}
	return f.rows[vesselID], nil
}

func (f *blockingFetcher) callCount(vesselID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[vesselID]
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestEnsureLoadedCachesRows(t *testing.T) {
	fetcher := newBlockingFetcher()
	fetcher.rows["shipA"] = []models.Inspection{{Date: "2025-03-15", Score: "98/100"}}
	cache := NewDetailCache(fetcher)

	res := cache.EnsureLoaded("shipA").Wait(waitCtx(t))
	require.NoError(t, res.Err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "2025-03-15", res.Rows[0].Date)
	assert.Equal(t, "98/100", res.Rows[0].Score)
	assert.Equal(t, StateLoaded, cache.State("shipA"))

	// Post-resolution calls serve the cache, no second fetch.
	res = cache.EnsureLoaded("shipA").Wait(waitCtx(t))
	require.NoError(t, res.Err)
	assert.Len(t, res.Rows, 1)
	assert.Equal(t, 1, fetcher.callCount("shipA"))
}

func TestEnsureLoadedDedupsInFlight(t *testing.T) {
	fetcher := newBlockingFetcher()
	fetcher.rows["shipA"] = []models.Inspection{{Date: "2025-03-15", Score: "98/100"}}
	fetcher.release = make(chan struct{})
	cache := NewDetailCache(fetcher)

	first := cache.EnsureLoaded("shipA")
	assert.Equal(t, StateLoading, cache.State("shipA"))

	second := cache.EnsureLoaded("shipA")
	assert.Same(t, first, second, "pre-resolution requesters share one future")

	close(fetcher.release)
	res := first.Wait(waitCtx(t))
	require.NoError(t, res.Err)
	assert.Equal(t, 1, fetcher.callCount("shipA"), "fetch invoked exactly once")
}

func TestEnsureLoadedFailureIsAValue(t *testing.T) {
	fetchErr := errors.New("registry unreachable")
	fetcher := newBlockingFetcher()
	fetcher.errs["shipB"] = fetchErr
	cache := NewDetailCache(fetcher)

	res := cache.EnsureLoaded("shipB").Wait(waitCtx(t))
	assert.ErrorIs(t, res.Err, fetchErr)
	assert.NotNil(t, res.Rows)
	assert.Empty(t, res.Rows)
	assert.Equal(t, StateFailed, cache.State("shipB"))
	assert.Nil(t, cache.Rows("shipB"))
}

func TestEnsureLoadedFailureIsNotSticky(t *testing.T) {
	fetcher := newBlockingFetcher()
	fetcher.errs["shipB"] = errors.New("registry unreachable")
	cache := NewDetailCache(fetcher)

	res := cache.EnsureLoaded("shipB").Wait(waitCtx(t))
	require.Error(t, res.Err)

	// The failure clears: the next request issues a distinct second fetch.
	fetcher.mu.Lock()
	delete(fetcher.errs, "shipB")
	fetcher.rows["shipB"] = []models.Inspection{{Date: "2025-04-01", Score: "71/100"}}
	fetcher.mu.Unlock()

	res = cache.EnsureLoaded("shipB").Wait(waitCtx(t))
	require.NoError(t, res.Err)
	assert.Len(t, res.Rows, 1)
	assert.Equal(t, 2, fetcher.callCount("shipB"))
	assert.Equal(t, StateLoaded, cache.State("shipB"))
}

func TestEnsureLoadedEmptyHistory(t *testing.T) {
	fetcher := newBlockingFetcher()
	cache := NewDetailCache(fetcher)

	res := cache.EnsureLoaded("shipC").Wait(waitCtx(t))
	require.NoError(t, res.Err)
	assert.NotNil(t, res.Rows)
	assert.Empty(t, res.Rows)
	assert.Equal(t, StateLoaded, cache.State("shipC"))
}

func TestWaitHonoursCallerContext(t *testing.T) {
	fetcher := newBlockingFetcher()
	fetcher.release = make(chan struct{})
	cache := NewDetailCache(fetcher)

	pending := cache.EnsureLoaded("shipA")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := pending.Wait(ctx)
	assert.ErrorIs(t, res.Err, context.Canceled)

	// The shared fetch was not cancelled; it still settles the cache.
	close(fetcher.release)
	res = pending.Wait(waitCtx(t))
	require.NoError(t, res.Err)
	assert.Equal(t, StateLoaded, cache.State("shipA"))
	assert.Equal(t, 1, fetcher.callCount("shipA"))
}

func TestStateUnrequestedVesselIsIdle(t *testing.T) {
	cache := NewDetailCache(newBlockingFetcher())
	assert.Equal(t, StateIdle, cache.State("never-asked"))
}
