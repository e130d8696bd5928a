// Package geocode wraps a reverse-geocoding HTTP service. Lookups are
// bounded by a timeout and degrade to a placeholder; they never abort or
// block the caller's request.
package geocode

import (
	"context"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Unavailable is the fallback display value on timeout or lookup failure.
const Unavailable = "address unavailable"

// DefaultTimeout bounds a single lookup.
const DefaultTimeout = 10 * time.Second

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// Client calls a Nominatim-style /reverse endpoint.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: client, logger: logger}
}

// ReverseLookup resolves (lat, lon) to a display address. Any failure is
// logged and swallowed into the Unavailable sentinel.
func (c *Client) ReverseLookup(ctx context.Context, lat, lon float64) string {
	var out reverseResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("format", "jsonv2").
		SetQueryParam("lat", formatCoord(lat)).
		SetQueryParam("lon", formatCoord(lon)).
		SetResult(&out).
		Get("/reverse")
	if err != nil {
		c.logger.Warn("reverse geocode failed", zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		return Unavailable
	}
	if resp.IsError() || out.Error != "" || out.DisplayName == "" {
		c.logger.Warn("reverse geocode returned no address",
			zap.Float64("lat", lat), zap.Float64("lon", lon),
			zap.Int("status", resp.StatusCode()), zap.String("api_error", out.Error))
		return Unavailable
	}
	return out.DisplayName
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
