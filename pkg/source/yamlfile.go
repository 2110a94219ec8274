package source

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/veslund/fleetdex/pkg/models"
)

// YAMLFile reads the catalog from a single YAML document. Inspection
// histories live inline next to their vessel, which makes it handy for
// fixtures and small static catalogs:
//
//	fleets:
//	  - id: northern
//	    name: Northern Fleet
//	    vessels:
//	      - id: ship1
//	        name: Skarven
//	        meta: {class: trawler}
//	        inspections:
//	          - {date: 2025-03-15, score: 98/100}
//
// The file is re-read on every fetch, so edits show up on the next reload.
type YAMLFile struct {
	path string
}

type yamlVessel struct {
	ID          string              `yaml:"id"`
	Name        string              `yaml:"name"`
	Meta        map[string]string   `yaml:"meta,omitempty"`
	Inspections []models.Inspection `yaml:"inspections,omitempty"`
}

type yamlFleet struct {
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name"`
	Vessels []yamlVessel `yaml:"vessels"`
}

type yamlCatalog struct {
	Fleets []yamlFleet `yaml:"fleets"`
}

// NewYAMLFile returns a source reading from the catalog file at path.
func NewYAMLFile(path string) *YAMLFile {
	return &YAMLFile{path: path}
}

func (y *YAMLFile) load() (*yamlCatalog, error) {
	data, err := os.ReadFile(y.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var doc yamlCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", y.path, err)
	}
	return &doc, nil
}

// FetchCatalog returns the fleets in file order.
func (y *YAMLFile) FetchCatalog(_ context.Context) ([]FleetRecord, error) {
	doc, err := y.load()
	if err != nil {
		return nil, err
	}

	records := make([]FleetRecord, 0, len(doc.Fleets))
	for _, fleet := range doc.Fleets {
		rec := FleetRecord{ID: fleet.ID, Name: fleet.Name}
		for _, vessel := range fleet.Vessels {
			rec.Vessels = append(rec.Vessels, VesselRecord{
				ID:   vessel.ID,
				Name: vessel.Name,
				Meta: vessel.Meta,
			})
		}
		records = append(records, rec)
	}
	return records, nil
}

// FetchInspections returns the inline history for one vessel.
func (y *YAMLFile) FetchInspections(_ context.Context, vesselID string) ([]models.Inspection, error) {
	doc, err := y.load()
	if err != nil {
		return nil, err
	}

	for _, fleet := range doc.Fleets {
		for _, vessel := range fleet.Vessels {
			if vessel.ID == vesselID {
				if vessel.Inspections == nil {
					return []models.Inspection{}, nil
				}
				return vessel.Inspections, nil
			}
		}
	}
	return nil, fmt.Errorf("vessel %q not in catalog file %s", vesselID, y.path)
}
