// Package catalog holds the in-memory catalog model: the fleet/vessel tree
// with its open and visible flags, the text filter that drives visibility,
// and the lazy per-vessel inspection cache.
//
// The model is rebuilt wholesale on every catalog (re)load and is not
// persisted. All state lives behind a single Tree/DetailCache pair owned by
// the service; external packages mutate it only through the operations here.
package catalog

import (
	"errors"
	"fmt"

	"github.com/veslund/fleetdex/pkg/models"
	"github.com/veslund/fleetdex/pkg/source"
)

// ErrNodeNotFound reports a toggle against an id the tree does not know.
// No other node is affected when it is returned.
var ErrNodeNotFound = errors.New("catalog: node not found")

// Tree is the two-level fleet/vessel hierarchy.
//
// Tree is not safe for concurrent use; on a multi-goroutine host callers
// must serialize access (the TUI's update loop and the service both do).
type Tree struct {
	fleets   []*models.Fleet // catalog order
	byFleet  map[string]*models.Fleet
	byVessel map[string]*models.Vessel
}

// Build constructs a tree from fetched records. Records with an empty id or
// name, and records whose id was already seen, are skipped; the skip count is
// returned so callers can report it. All nodes start visible and closed.
func Build(records []source.FleetRecord) (*Tree, int) {
	t := &Tree{
		byFleet:  make(map[string]*models.Fleet),
		byVessel: make(map[string]*models.Vessel),
	}

	skipped := 0
	for _, fr := range records {
		if fr.ID == "" || fr.Name == "" {
			skipped++
			continue
		}
		if _, dup := t.byFleet[fr.ID]; dup {
			skipped++
			continue
		}

		fleet := &models.Fleet{
			ID:      fr.ID,
			Name:    fr.Name,
			Visible: true,
		}
		for _, vr := range fr.Vessels {
			if vr.ID == "" || vr.Name == "" {
				skipped++
				continue
			}
			if _, dup := t.byVessel[vr.ID]; dup {
				skipped++
				continue
			}
			vessel := &models.Vessel{
				ID:      vr.ID,
				Name:    vr.Name,
				FleetID: fleet.ID,
				Meta:    vr.Meta,
				Visible: true,
			}
			fleet.Vessels = append(fleet.Vessels, vessel)
			t.byVessel[vessel.ID] = vessel
		}

		t.fleets = append(t.fleets, fleet)
		t.byFleet[fleet.ID] = fleet
	}

	return t, skipped
}

// Fleets returns the fleets in catalog order.
func (t *Tree) Fleets() []*models.Fleet {
	return t.fleets
}

// Fleet looks up a fleet by id.
func (t *Tree) Fleet(id string) (*models.Fleet, bool) {
	f, ok := t.byFleet[id]
	return f, ok
}

// Vessel looks up a vessel by id.
func (t *Tree) Vessel(id string) (*models.Vessel, bool) {
	v, ok := t.byVessel[id]
	return v, ok
}

// NumFleets returns the number of fleets in the catalog.
func (t *Tree) NumFleets() int {
	return len(t.fleets)
}

// NumVessels returns the number of vessels across all fleets.
func (t *Tree) NumVessels() int {
	return len(t.byVessel)
}

// ToggleFleet flips a fleet's open flag. Closing a fleet cascades: every
// vessel in it is closed as well. Vessel caches are untouched.
func (t *Tree) ToggleFleet(id string) error {
	fleet, ok := t.byFleet[id]
	if !ok {
		return fmt.Errorf("toggle fleet %q: %w", id, ErrNodeNotFound)
	}

	fleet.Open = !fleet.Open
	if !fleet.Open {
		for _, vessel := range fleet.Vessels {
			vessel.Open = false
		}
	}
	return nil
}

// ToggleVessel flips a vessel's open flag and reports whether the vessel
// ended up open, so the caller can kick off the inspection load. A hidden
// vessel is never opened; the toggle is refused as a no-op.
func (t *Tree) ToggleVessel(id string) (bool, error) {
	vessel, ok := t.byVessel[id]
	if !ok {
		return false, fmt.Errorf("toggle vessel %q: %w", id, ErrNodeNotFound)
	}
	if !vessel.Visible {
		return false, nil
	}

	vessel.Open = !vessel.Open
	return vessel.Open, nil
}

// CollapseAll closes every fleet and vessel. Run after a full rebuild and
// when the filter is cleared.
func (t *Tree) CollapseAll() {
	for _, fleet := range t.fleets {
		fleet.Open = false
		for _, vessel := range fleet.Vessels {
			vessel.Open = false
		}
	}
}
