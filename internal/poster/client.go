// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package poster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/animerec/internal/metrics"
	"github.com/tomtom215/animerec/internal/models"
)

// ServiceName labels errors and breaker metrics for the poster API.
const ServiceName = "jikan"

// ErrNoImage is returned when the API answers without an image URL.
var ErrNoImage = errors.New("response has no image url")

// Fetcher retrieves a poster URL from upstream.
type Fetcher interface {
	Fetch(ctx context.Context, animeID int64) (string, error)
}

// JikanClient fetches poster URLs from GET {base}/anime/{id}.
type JikanClient struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// jikanResponse is the subset of the anime endpoint we read.
type jikanResponse struct {
	Data struct {
		Images struct {
			JPG struct {
				ImageURL string `json:"image_url"`
			} `json:"jpg"`
		} `json:"images"`
	} `json:"data"`
}

// NewJikanClient creates a client that issues at most ratePerSecond
// requests per second with the given burst.
func NewJikanClient(baseURL string, timeout time.Duration, ratePerSecond float64, burst int) *JikanClient {
	return &JikanClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

// Fetch returns data.images.jpg.image_url for the anime. All failures are
// returned as *models.ExternalServiceError.
func (c *JikanClient) Fetch(ctx context.Context, animeID int64) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", external(fmt.Errorf("rate limiter: %w", err))
	}

	start := time.Now()
	defer func() {
		metrics.PosterLookupDuration.Observe(time.Since(start).Seconds())
	}()

	url := c.baseURL + "/anime/" + strconv.FormatInt(animeID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", external(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", external(fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck // drain for connection reuse
		return "", external(fmt.Errorf("anime %d: status %d", animeID, resp.StatusCode))
	}

	var body jikanResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", external(fmt.Errorf("failed to decode response: %w", err))
	}
	imageURL := body.Data.Images.JPG.ImageURL
	if imageURL == "" {
		return "", external(fmt.Errorf("anime %d: %w", animeID, ErrNoImage))
	}
	return imageURL, nil
}

func external(err error) error {
	var ext *models.ExternalServiceError
	if errors.As(err, &ext) {
		return err
	}
	return &models.ExternalServiceError{Service: ServiceName, Err: err}
}
