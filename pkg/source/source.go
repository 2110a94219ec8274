// Package source provides the data backends a catalog can be loaded from.
package source

import (
	"context"

	"github.com/veslund/fleetdex/pkg/models"
)

// VesselRecord is one vessel as delivered by a backend, before tree construction.
type VesselRecord struct {
	ID   string
	Name string
	Meta map[string]string
}

// FleetRecord is one fleet as delivered by a backend, vessels in catalog order.
type FleetRecord struct {
	ID      string
	Name    string
	Vessels []VesselRecord
}

// Source is a catalog data backend.
//
// FetchInspections returns the rows as final; any temporal or business
// filtering happens inside the backend, not in the callers' cache.
type Source interface {
	FetchCatalog(ctx context.Context) ([]FleetRecord, error)
	FetchInspections(ctx context.Context, vesselID string) ([]models.Inspection, error)
}
