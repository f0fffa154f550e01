// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/tomtom215/animerec/internal/config"
	"github.com/tomtom215/animerec/internal/database"
	"github.com/tomtom215/animerec/internal/metrics"
	"github.com/tomtom215/animerec/internal/models"
)

// ErrNotLoaded is returned by lookups before the first successful Load.
var ErrNotLoaded = errors.New("catalog not loaded")

const reloadSource = "catalog"

// Catalog serves ratings, catalog and synopsis lookups from the current
// snapshot. It implements the recommend provider interfaces.
type Catalog struct {
	db     *database.DB
	paths  config.DataConfig
	logger zerolog.Logger

	current atomic.Pointer[Snapshot]

	// reloadMu serializes loads; readers never take it.
	reloadMu sync.Mutex
}

// New creates a Catalog reading the files named in cfg. Call Load before use.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(db *database.DB, cfg config.DataConfig, logger zerolog.Logger) *Catalog {
	return &Catalog{
		db:     db,
		paths:  cfg,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

func (c *Catalog) fingerprint() string {
	return database.Fingerprint(c.paths.RatingsPath, c.paths.AnimePath, c.paths.SynopsisPath)
}

// Load builds a snapshot from the files and publishes it.
func (c *Catalog) Load(ctx context.Context) error {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	err := c.load(ctx, c.fingerprint())
	metrics.RecordSnapshotReload(reloadSource, err)
	return err
}

// Reload rebuilds the snapshot if the files changed since the last load and
// reports whether a new snapshot was published. On error the previous
// snapshot stays current.
func (c *Catalog) Reload(ctx context.Context) (bool, error) {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	fp := c.fingerprint()
	if cur := c.current.Load(); cur != nil && cur.fingerprint == fp {
		return false, nil
	}

	err := c.load(ctx, fp)
	metrics.RecordSnapshotReload(reloadSource, err)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Catalog) load(ctx context.Context, fp string) error {
	conn := c.db.Conn()

	ratings, err := loadRatings(ctx, conn, c.paths.RatingsPath)
	if err != nil {
		return err
	}
	anime, err := loadAnime(ctx, conn, c.paths.AnimePath)
	if err != nil {
		return err
	}
	synopses, err := loadSynopses(ctx, conn, c.paths.SynopsisPath)
	if err != nil {
		return err
	}
	if len(anime) == 0 {
		return fmt.Errorf("anime catalog %s is empty", c.paths.AnimePath)
	}

	snap := NewSnapshot(anime, ratings, synopses)
	snap.fingerprint = fp
	c.current.Store(snap)

	nAnime, nRatings, nUsers, nSynopses, dups := snap.Stats()
	metrics.SnapshotRows.WithLabelValues("anime").Set(float64(nAnime))
	metrics.SnapshotRows.WithLabelValues("ratings").Set(float64(nRatings))
	metrics.SnapshotRows.WithLabelValues("synopsis").Set(float64(nSynopses))

	event := c.logger.Info()
	if dups > 0 {
		event = c.logger.Warn().Int("duplicate_titles", dups)
	}
	event.
		Int("anime", nAnime).
		Int("ratings", nRatings).
		Int("users", nUsers).
		Int("synopses", nSynopses).
		Msg("Catalog snapshot loaded")
	return nil
}

// Snapshot returns the current snapshot, or nil before the first Load.
func (c *Catalog) Snapshot() *Snapshot {
	return c.current.Load()
}

// Ready reports whether a snapshot has been loaded.
func (c *Catalog) Ready() bool {
	return c.current.Load() != nil
}

func (c *Catalog) snapshot() (*Snapshot, error) {
	s := c.current.Load()
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s, nil
}

// Ratings returns all ratings in file order.
func (c *Catalog) Ratings(_ context.Context) ([]models.Rating, error) {
	s, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	return s.Ratings(), nil
}

// UserRatings returns the user's ratings in file order. A user with no
// ratings yields an empty slice.
func (c *Catalog) UserRatings(_ context.Context, userID int64) ([]models.Rating, error) {
	s, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	return s.UserRatings(userID), nil
}

// AnimeByID returns a *models.NotFoundError if id is not in the catalog.
func (c *Catalog) AnimeByID(_ context.Context, id int64) (models.Anime, error) {
	s, err := c.snapshot()
	if err != nil {
		return models.Anime{}, err
	}
	a, ok := s.AnimeByID(id)
	if !ok {
		return models.Anime{}, models.NewNotFound("anime id", id)
	}
	return a, nil
}

// AnimeByTitle returns the first catalog row with the given title, or a
// *models.NotFoundError.
func (c *Catalog) AnimeByTitle(_ context.Context, title string) (models.Anime, error) {
	s, err := c.snapshot()
	if err != nil {
		return models.Anime{}, err
	}
	a, ok := s.AnimeByTitle(title)
	if !ok {
		return models.Anime{}, models.NewNotFound("anime title", title)
	}
	return a, nil
}

// Titles returns the sorted unique titles.
func (c *Catalog) Titles(_ context.Context) ([]string, error) {
	s, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	return s.Titles(), nil
}

// Synopsis returns a *models.NotFoundError if no synopsis is on record.
func (c *Catalog) Synopsis(_ context.Context, animeID int64) (string, error) {
	s, err := c.snapshot()
	if err != nil {
		return "", err
	}
	syn, ok := s.Synopsis(animeID)
	if !ok {
		return "", models.NewNotFound("synopsis", animeID)
	}
	return syn, nil
}
