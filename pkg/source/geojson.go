package source

import (
	"context"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"github.com/Realchup/smart-traffic-backend/pkg/geo"
	"github.com/Realchup/smart-traffic-backend/pkg/graph"
)

// GeoJSONFloods reads flood zones from a GeoJSON FeatureCollection of
// Polygon/MultiPolygon features. Severity comes from a numeric
// "severity" property; absent or non-positive values default downstream.
type GeoJSONFloods struct {
	Path string
}

func (s GeoJSONFloods) Floods(context.Context) ([]graph.FloodZone, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrap(err, "flood geojson")
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "decode flood geojson")
	}

	var zones []graph.FloodZone
	for _, f := range fc.Features {
		severity := f.Properties.MustFloat64("severity", 0)
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			if len(g) > 0 {
				zones = append(zones, zoneFromRing(g[0], severity))
			}
		case orb.MultiPolygon:
			for _, poly := range g {
				if len(poly) > 0 {
					zones = append(zones, zoneFromRing(poly[0], severity))
				}
			}
		}
	}
	return zones, nil
}

// zoneFromRing converts an outer ring to a flood zone. Interior rings are
// ignored: flood penalties test only the edge midpoint, and treating a
// holed zone as solid errs toward caution.
func zoneFromRing(ring orb.Ring, severity float64) graph.FloodZone {
	pts := make([]geo.Point, 0, len(ring))
	for _, c := range ring {
		pts = append(pts, geo.Point{Lat: c.Lat(), Lng: c.Lon()})
	}
	// GeoJSON rings repeat the first vertex at the end; drop it.
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	return graph.FloodZone{Polygon: pts, Severity: severity}
}
