// Package service wires the catalog model to a data source and owns its
// lifecycle: the tree and cache are rebuilt wholesale on every load, never
// persisted.
package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/veslund/fleetdex/pkg/catalog"
	"github.com/veslund/fleetdex/pkg/models"
	"github.com/veslund/fleetdex/pkg/source"
)

// Config holds service configuration.
type Config struct {
	SourceType string // "sqlite" or "yaml", informational
	SourcePath string
}

// Service is the main entry point for catalog operations. Its tree and
// cache are exclusively owned here; external components go through these
// methods. The core assumes single-writer semantics (the TUI update loop or
// one CLI invocation); the cache carries its own serialization internally.
type Service struct {
	cfg     *Config
	src     source.Source
	log     *logrus.Logger
	tree    *catalog.Tree
	cache   *catalog.DetailCache
	skipped int
}

// New creates a service reading from src. The catalog is not loaded yet;
// call Load first.
func New(cfg *Config, src source.Source, log *logrus.Logger) (*Service, error) {
	if src == nil {
		return nil, fmt.Errorf("service: nil source")
	}
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	return &Service{cfg: cfg, src: src, log: log}, nil
}

// Load fetches the catalog and rebuilds the tree and cache from scratch.
// Any previous open/visible state and cached inspection rows are discarded.
// Malformed records (empty id or name, duplicate ids) are skipped and
// counted, and the build continues for the rest.
func (s *Service) Load(ctx context.Context) error {
	records, err := s.src.FetchCatalog(ctx)
	if err != nil {
		return fmt.Errorf("fetch catalog: %w", err)
	}

	tree, skipped := catalog.Build(records)
	if skipped > 0 {
		s.log.WithField("skipped", skipped).Warn("skipped malformed catalog records")
	}
	tree.CollapseAll()

	s.tree = tree
	s.cache = catalog.NewDetailCache(s.src)
	s.skipped = skipped

	s.log.WithFields(logrus.Fields{
		"fleets":  tree.NumFleets(),
		"vessels": tree.NumVessels(),
	}).Debug("catalog loaded")
	return nil
}

// Reload is Load; the name exists for call sites that re-run an already
// loaded catalog.
func (s *Service) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

// Loaded reports whether a catalog has been built.
func (s *Service) Loaded() bool {
	return s.tree != nil
}

// Tree returns the current catalog tree. Nil before the first Load.
func (s *Service) Tree() *catalog.Tree {
	return s.tree
}

// Cache returns the current inspection cache. Nil before the first Load.
func (s *Service) Cache() *catalog.DetailCache {
	return s.cache
}

// Skipped returns the malformed-record count from the last load.
func (s *Service) Skipped() int {
	return s.skipped
}

// ToggleFleet flips a fleet open or closed.
func (s *Service) ToggleFleet(id string) error {
	return s.tree.ToggleFleet(id)
}

// ToggleVessel flips a vessel open or closed. When the vessel opens, the
// inspection load is kicked off and its future returned; otherwise the
// future is nil.
func (s *Service) ToggleVessel(id string) (*catalog.Pending, error) {
	opened, err := s.tree.ToggleVessel(id)
	if err != nil {
		return nil, err
	}
	if !opened {
		return nil, nil
	}
	return s.cache.EnsureLoaded(id), nil
}

// Search applies the text filter to the tree and returns the match tally.
func (s *Service) Search(query string) catalog.FilterResult {
	return s.tree.ApplyFilter(query)
}

// Inspections ensures a vessel's history is loaded and waits for it.
// A fetch failure comes back as the error with an empty row set.
func (s *Service) Inspections(ctx context.Context, vesselID string) ([]models.Inspection, error) {
	if _, ok := s.tree.Vessel(vesselID); !ok {
		return nil, fmt.Errorf("inspections for %q: %w", vesselID, catalog.ErrNodeNotFound)
	}
	res := s.cache.EnsureLoaded(vesselID).Wait(ctx)
	return res.Rows, res.Err
}
