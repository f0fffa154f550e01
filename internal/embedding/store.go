// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package embedding

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/animerec/internal/config"
	"github.com/tomtom215/animerec/internal/database"
	"github.com/tomtom215/animerec/internal/metrics"
)

const reloadSource = "embeddings"

// Snapshot pairs the user and anime tables loaded together.
type Snapshot struct {
	Users    *Table
	Anime    *Table
	LoadedAt time.Time

	fingerprint string
}

// Store owns the current embedding snapshot.
type Store struct {
	db        *database.DB
	dir       string
	tolerance float64
	logger    zerolog.Logger

	current  atomic.Pointer[Snapshot]
	reloadMu sync.Mutex
}

// NewStore creates a Store for the artifacts in cfg.Dir. Call Load before use.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStore(db *database.DB, cfg config.EmbeddingsConfig, logger zerolog.Logger) *Store {
	return &Store{
		db:        db,
		dir:       cfg.Dir,
		tolerance: cfg.NormTolerance,
		logger:    logger.With().Str("component", "embedding").Logger(),
	}
}

// Snapshot returns the current snapshot, or nil before the first Load.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Ready reports whether a snapshot has been loaded.
func (s *Store) Ready() bool {
	return s.current.Load() != nil
}

// Load reads both tables and publishes them as one snapshot.
func (s *Store) Load(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	err := s.load(ctx, s.fingerprint())
	metrics.RecordSnapshotReload(reloadSource, err)
	return err
}

// Reload rebuilds the snapshot if any artifact changed and reports whether a
// new snapshot was published. On error the previous snapshot stays current.
func (s *Store) Reload(ctx context.Context) (bool, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	fp := s.fingerprint()
	if cur := s.current.Load(); cur != nil && cur.fingerprint == fp {
		return false, nil
	}

	err := s.load(ctx, fp)
	metrics.RecordSnapshotReload(reloadSource, err)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) fingerprint() string {
	return database.Fingerprint(artifactCandidates(s.dir, KindUser, KindAnime)...)
}

func (s *Store) load(ctx context.Context, fp string) error {
	conn := s.db.Conn()

	users, err := loadTable(ctx, conn, s.dir, KindUser)
	if err != nil {
		return err
	}
	anime, err := loadTable(ctx, conn, s.dir, KindAnime)
	if err != nil {
		return err
	}

	for _, t := range []*Table{users, anime} {
		violations := t.NormViolations(s.tolerance)
		metrics.EmbeddingNormViolations.WithLabelValues(string(t.Kind())).Set(float64(violations))
		metrics.SnapshotRows.WithLabelValues(string(t.Kind()) + "_embeddings").Set(float64(t.Len()))
		if violations > 0 {
			s.logger.Warn().
				Str("kind", string(t.Kind())).
				Int("rows", violations).
				Float64("tolerance", s.tolerance).
				Msg("Embedding rows are not unit-normalized; similarities are not cosine")
		}
	}

	s.current.Store(&Snapshot{
		Users:       users,
		Anime:       anime,
		LoadedAt:    time.Now(),
		fingerprint: fp,
	})

	s.logger.Info().
		Int("users", users.Len()).
		Int("user_dim", users.Dim()).
		Int("anime", anime.Len()).
		Int("anime_dim", anime.Dim()).
		Msg("Embedding snapshot loaded")
	return nil
}
