package source

import "github.com/veslund/fleetdex/pkg/models"

// DemoCatalog returns the sample catalog seeded by `fleetdex init --demo`.
func DemoCatalog() ([]FleetRecord, map[string][]models.Inspection) {
	records := []FleetRecord{
		{
			ID:   "northern",
			Name: "Northern Fleet",
			Vessels: []VesselRecord{
				{ID: "nf-skarven", Name: "Skarven", Meta: map[string]string{"class": "trawler", "flag": "NO"}},
				{ID: "nf-havsula", Name: "Havsula", Meta: map[string]string{"class": "ferry", "flag": "NO"}},
				{ID: "nf-terna", Name: "Terna", Meta: map[string]string{"class": "supply", "flag": "DK"}},
			},
		},
		{
			ID:   "coastal",
			Name: "Coastal Fleet",
			Vessels: []VesselRecord{
				{ID: "cf-lunde", Name: "Lunde", Meta: map[string]string{"class": "ferry", "flag": "NO"}},
				{ID: "cf-alke", Name: "Alke", Meta: map[string]string{"class": "trawler", "flag": "IS"}},
			},
		},
		{
			ID:   "charter",
			Name: "Charter Pool",
			Vessels: []VesselRecord{
				{ID: "ch-krykkje", Name: "Krykkje", Meta: map[string]string{"class": "yacht", "flag": "SE"}},
			},
		},
	}

	inspections := map[string][]models.Inspection{
		"nf-skarven": {
			{Date: "2025-03-15", Score: "98/100"},
			{Date: "2024-09-02", Score: "91/100"},
		},
		"nf-havsula": {
			{Date: "2025-01-20", Score: "84/100"},
		},
		"nf-terna": {
			{Date: "2024-11-30", Score: "77/100"},
			{Date: "2024-05-14", Score: "80/100"},
		},
		"cf-lunde": {
			{Date: "2025-04-02", Score: "95/100"},
		},
		"cf-alke": {},
		"ch-krykkje": {
			{Date: "2025-02-11", Score: "88/100"},
		},
	}

	return records, inspections
}
