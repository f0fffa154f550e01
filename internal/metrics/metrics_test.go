// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("GET", "/api/v1/titles", "200")
	before := testutil.ToFloat64(counter)

	RecordAPIRequest("GET", "/api/v1/titles", "200", 15*time.Millisecond)

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 2 {
		t.Errorf("active delta after two increments = %v, want 2", got)
	}

	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 0 {
		t.Errorf("active delta after decrements = %v, want 0", got)
	}
}

func TestRecordRecommendation(t *testing.T) {
	before := testutil.CollectAndCount(RecommendationDuration)

	RecordRecommendation(ModeColdStart, 120*time.Millisecond, 3)

	if got := testutil.CollectAndCount(RecommendationDuration); got < before {
		t.Errorf("recommendation_duration series = %d, want >= %d", got, before)
	}
}

func TestRecordRecommendationError(t *testing.T) {
	counter := RecommendationErrors.WithLabelValues(ModeHybrid, "unknown_user")
	before := testutil.ToFloat64(counter)

	RecordRecommendationError(ModeHybrid, "unknown_user")

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("recommendation_errors_total delta = %v, want 1", got)
	}
}

func TestRecordCacheAccess(t *testing.T) {
	hits := CacheHits.WithLabelValues("poster")
	misses := CacheMisses.WithLabelValues("poster")
	h0, m0 := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	RecordCacheAccess("poster", true)
	RecordCacheAccess("poster", false)
	RecordCacheAccess("poster", false)

	if got := testutil.ToFloat64(hits) - h0; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(misses) - m0; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}

func TestRecordSnapshotReload(t *testing.T) {
	ok := SnapshotReloads.WithLabelValues("embeddings", "success")
	fail := SnapshotReloads.WithLabelValues("embeddings", "failure")
	ok0, fail0 := testutil.ToFloat64(ok), testutil.ToFloat64(fail)

	RecordSnapshotReload("embeddings", nil)
	RecordSnapshotReload("embeddings", errors.New("corrupt map"))

	if got := testutil.ToFloat64(ok) - ok0; got != 1 {
		t.Errorf("success delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(fail) - fail0; got != 1 {
		t.Errorf("failure delta = %v, want 1", got)
	}
}

func TestRecordSkippedAndPosterLookup(t *testing.T) {
	skipped := RecommendationSkipped.WithLabelValues("title_not_found")
	lookups := PosterLookups.WithLabelValues("placeholder")
	s0, l0 := testutil.ToFloat64(skipped), testutil.ToFloat64(lookups)

	RecordSkipped("title_not_found")
	RecordPosterLookup("placeholder")

	if got := testutil.ToFloat64(skipped) - s0; got != 1 {
		t.Errorf("skipped delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(lookups) - l0; got != 1 {
		t.Errorf("lookups delta = %v, want 1", got)
	}
}
