package source

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/Realchup/smart-traffic-backend/pkg/geo"
)

// ErrNoFallback is returned when no fallback routing service is
// configured.
var ErrNoFallback = errors.New("no fallback routing service configured")

// FallbackRoute is the normalized shape of an externally computed route,
// substituted when the core reports no usable path.
type FallbackRoute struct {
	Path      []geo.Point `json:"path"`
	DistanceM float64     `json:"distance_m"`
	Method    string      `json:"method"`
}

// Fallbacker requests a route from an external routing service.
type Fallbacker interface {
	Route(ctx context.Context, src, dst geo.Point) (FallbackRoute, error)
}

// FallbackClient calls an external road-routing HTTP service.
type FallbackClient struct {
	URL    string // endpoint; src/dst are appended as query parameters
	Client *http.Client
}

func (c *FallbackClient) Route(ctx context.Context, src, dst geo.Point) (FallbackRoute, error) {
	if c == nil || c.URL == "" {
		return FallbackRoute{}, ErrNoFallback
	}

	u, err := url.Parse(c.URL)
	if err != nil {
		return FallbackRoute{}, errors.Wrap(err, "fallback url")
	}
	q := u.Query()
	q.Set("src_lat", formatCoord(src.Lat))
	q.Set("src_lng", formatCoord(src.Lng))
	q.Set("dst_lat", formatCoord(dst.Lat))
	q.Set("dst_lng", formatCoord(dst.Lng))
	u.RawQuery = q.Encode()

	var route FallbackRoute
	if err := getJSON(ctx, c.Client, u.String(), &route); err != nil {
		return FallbackRoute{}, errors.Wrap(err, "fallback routing")
	}
	if route.Method == "" {
		route.Method = "fallback"
	}
	return route, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
