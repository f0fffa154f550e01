// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import "net/http"

// HealthStatus is the payload of the health endpoints.
type HealthStatus struct {
	Status     string          `json:"status"`
	Components map[string]bool `json:"components,omitempty"`
}

// HealthLive reports that the process is serving requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(HealthStatus{Status: "alive"})
}

// HealthReady reports whether every readiness check passes.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	components := make(map[string]bool, len(h.checks))
	ready := true
	for _, c := range h.checks {
		ok := c.Ready()
		components[c.Name] = ok
		ready = ready && ok
	}

	rw := NewResponseWriter(w, r)
	if !ready {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Service not ready", components)
		return
	}
	rw.Success(HealthStatus{Status: "ready", Components: components})
}
