package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// FilterResult tallies the visible set left behind by ApplyFilter.
type FilterResult struct {
	MatchedFleets  int
	MatchedVessels int
}

// ApplyFilter recomputes every node's visibility from a substring query and
// forces matched branches open.
//
// The query is trimmed and case-folded. A fleet is visible when its own name
// matches or any of its vessels' names match; a visible fleet is forced open.
// A fleet-name match reveals all of that fleet's vessels, even those whose
// own names do not match. Hidden nodes are always closed. An empty or
// whitespace-only query makes everything visible again and collapses the
// whole tree, discarding any manual expansion.
//
// Each pass is atomic from the caller's point of view: the tree is never
// observed with a partially applied filter, and applying the same query twice
// yields the same visible/open sets.
func (t *Tree) ApplyFilter(query string) FilterResult {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))

	if q == "" {
		for _, fleet := range t.fleets {
			fleet.Visible = true
			fleet.Open = false
			for _, vessel := range fleet.Vessels {
				vessel.Visible = true
				vessel.Open = false
			}
		}
		return FilterResult{
			MatchedFleets:  len(t.fleets),
			MatchedVessels: len(t.byVessel),
		}
	}

	var res FilterResult
	for _, fleet := range t.fleets {
		fleetMatch := strings.Contains(fold.String(fleet.Name), q)

		vesselMatch := make([]bool, len(fleet.Vessels))
		anyVessel := false
		for i, vessel := range fleet.Vessels {
			vesselMatch[i] = strings.Contains(fold.String(vessel.Name), q)
			anyVessel = anyVessel || vesselMatch[i]
		}

		if !fleetMatch && !anyVessel {
			fleet.Visible = false
			fleet.Open = false
			for _, vessel := range fleet.Vessels {
				vessel.Visible = false
				vessel.Open = false
			}
			continue
		}

		fleet.Visible = true
		fleet.Open = true
		res.MatchedFleets++
		for i, vessel := range fleet.Vessels {
			vessel.Visible = fleetMatch || vesselMatch[i]
			if vessel.Visible {
				res.MatchedVessels++
			} else {
				vessel.Open = false
			}
		}
	}

	return res
}
