package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veslund/fleetdex/pkg/models"
)

func seededSQLite(t *testing.T) *SQLite {
	t.Helper()

	src, err := NewSQLite(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	records, inspections := DemoCatalog()
	require.NoError(t, src.Seed(context.Background(), records, inspections))
	return src
}

func TestSQLiteFetchCatalog(t *testing.T) {
	src := seededSQLite(t)

	records, err := src.FetchCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Seed order is preserved.
	assert.Equal(t, "northern", records[0].ID)
	assert.Equal(t, "coastal", records[1].ID)
	assert.Equal(t, "charter", records[2].ID)

	require.Len(t, records[0].Vessels, 3)
	assert.Equal(t, "Skarven", records[0].Vessels[0].Name)
	assert.Equal(t, "trawler", records[0].Vessels[0].Meta["class"])
	assert.Equal(t, "NO", records[0].Vessels[0].Meta["flag"])
}

func TestSQLiteFetchInspections(t *testing.T) {
	src := seededSQLite(t)

	rows, err := src.FetchInspections(context.Background(), "nf-skarven")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.Inspection{Date: "2025-03-15", Score: "98/100"}, rows[0])
	assert.Equal(t, models.Inspection{Date: "2024-09-02", Score: "91/100"}, rows[1])
}

func TestSQLiteFetchInspectionsUnknownVessel(t *testing.T) {
	src := seededSQLite(t)

	// No history is not an error; the vessel simply has no rows.
	rows, err := src.FetchInspections(context.Background(), "no-such-vessel")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestSQLiteSeedReplaces(t *testing.T) {
	src := seededSQLite(t)

	require.NoError(t, src.Seed(context.Background(), []FleetRecord{
		{ID: "solo", Name: "Solo Fleet", Vessels: []VesselRecord{{ID: "s1", Name: "Ena"}}},
	}, nil))

	records, err := src.FetchCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "solo", records[0].ID)

	rows, err := src.FetchInspections(context.Background(), "nf-skarven")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
