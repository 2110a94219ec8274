package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veslund/fleetdex/pkg/catalog"
	"github.com/veslund/fleetdex/pkg/models"
	"github.com/veslund/fleetdex/pkg/source"
)

// fakeSource is an in-memory source with scripted failures.
type fakeSource struct {
	records      []source.FleetRecord
	inspections  map[string][]models.Inspection
	catalogErr   error
	detailErr    error
	detailCalls  int
	catalogCalls int
}

func (f *fakeSource) FetchCatalog(_ context.Context) ([]source.FleetRecord, error) {
	f.catalogCalls++
	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	return f.records, nil
}

func (f *fakeSource) FetchInspections(_ context.Context, vesselID string) ([]models.Inspection, error) {
	f.detailCalls++
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.inspections[vesselID], nil
}

func fixtureSource() *fakeSource {
	return &fakeSource{
		records: []source.FleetRecord{
			{
				ID:   "northern",
				Name: "Northern Fleet",
				Vessels: []source.VesselRecord{
					{ID: "ship1", Name: "Skarven"},
					{ID: "ship2", Name: "Havsula"},
				},
			},
			{ID: "", Name: "Broken"}, // skipped during build
		},
		inspections: map[string][]models.Inspection{
			"ship1": {{Date: "2025-03-15", Score: "98/100"}},
		},
	}
}

func newTestService(t *testing.T, src source.Source) *Service {
	t.Helper()
	svc, err := New(&Config{SourceType: "fake"}, src, nil)
	require.NoError(t, err)
	return svc
}

func TestLoadBuildsTree(t *testing.T) {
	src := fixtureSource()
	svc := newTestService(t, src)

	require.False(t, svc.Loaded())
	require.NoError(t, svc.Load(context.Background()))
	require.True(t, svc.Loaded())

	assert.Equal(t, 1, svc.Tree().NumFleets())
	assert.Equal(t, 2, svc.Tree().NumVessels())
	assert.Equal(t, 1, svc.Skipped())
}

func TestLoadCatalogError(t *testing.T) {
	src := fixtureSource()
	src.catalogErr = errors.New("registry down")
	svc := newTestService(t, src)

	err := svc.Load(context.Background())
	assert.ErrorContains(t, err, "fetch catalog")
	assert.False(t, svc.Loaded())
}

func TestToggleVesselTriggersLoad(t *testing.T) {
	src := fixtureSource()
	svc := newTestService(t, src)
	require.NoError(t, svc.Load(context.Background()))

	pending, err := svc.ToggleVessel("ship1")
	require.NoError(t, err)
	require.NotNil(t, pending, "opening a vessel kicks off the fetch")

	res := pending.Wait(context.Background())
	require.NoError(t, res.Err)
	assert.Len(t, res.Rows, 1)
	assert.Equal(t, 1, src.detailCalls)

	// Closing does not fetch.
	pending, err = svc.ToggleVessel("ship1")
	require.NoError(t, err)
	assert.Nil(t, pending)
	assert.Equal(t, 1, src.detailCalls)
}

func TestReloadDiscardsStateAndCache(t *testing.T) {
	src := fixtureSource()
	svc := newTestService(t, src)
	require.NoError(t, svc.Load(context.Background()))

	require.NoError(t, svc.ToggleFleet("northern"))
	pending, err := svc.ToggleVessel("ship1")
	require.NoError(t, err)
	pending.Wait(context.Background())
	require.Equal(t, catalog.StateLoaded, svc.Cache().State("ship1"))

	require.NoError(t, svc.Reload(context.Background()))

	fleet, ok := svc.Tree().Fleet("northern")
	require.True(t, ok)
	assert.False(t, fleet.Open, "reload collapses everything")
	assert.Equal(t, catalog.StateIdle, svc.Cache().State("ship1"), "reload discards the cache")

	rows, err := svc.Inspections(context.Background(), "ship1")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 2, src.detailCalls, "fresh cache fetches again")
}

func TestInspectionsFailureSurfacesAsValue(t *testing.T) {
	src := fixtureSource()
	src.detailErr = errors.New("registry down")
	svc := newTestService(t, src)
	require.NoError(t, svc.Load(context.Background()))

	rows, err := svc.Inspections(context.Background(), "ship1")
	assert.Error(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	// Not sticky: fixing the source and asking again refetches.
	src.detailErr = nil
	rows, err = svc.Inspections(context.Background(), "ship1")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 2, src.detailCalls)
}

func TestInspectionsUnknownVessel(t *testing.T) {
	svc := newTestService(t, fixtureSource())
	require.NoError(t, svc.Load(context.Background()))

	_, err := svc.Inspections(context.Background(), "ghost")
	assert.ErrorIs(t, err, catalog.ErrNodeNotFound)
}

func TestSearchDelegatesToTree(t *testing.T) {
	svc := newTestService(t, fixtureSource())
	require.NoError(t, svc.Load(context.Background()))

	res := svc.Search("skarven")
	assert.Equal(t, 1, res.MatchedFleets)
	assert.Equal(t, 1, res.MatchedVessels)

	ship2, _ := svc.Tree().Vessel("ship2")
	assert.False(t, ship2.Visible)
}
