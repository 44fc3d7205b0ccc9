// Package source implements the collaborators that feed route
// computation: road-network, traffic, and flood-zone snapshots, the
// external fallback router, and the request log. Every implementation
// returns a fresh snapshot per call; the routing core never sees shared
// mutable state.
package source

import (
	"context"

	"github.com/Realchup/smart-traffic-backend/pkg/graph"
)

// RoadSource provides the road nodes for one route computation.
type RoadSource interface {
	Roads(ctx context.Context) ([]graph.RoadNode, error)
}

// TrafficSource provides congestion records for one route computation.
type TrafficSource interface {
	Traffic(ctx context.Context) ([]graph.TrafficRecord, error)
}

// FloodSource provides flood zones for one route computation.
type FloodSource interface {
	Floods(ctx context.Context) ([]graph.FloodZone, error)
}

// StaticRoads serves a fixed in-memory snapshot. Used in tests and for
// deployments without a live road feed.
type StaticRoads []graph.RoadNode

func (s StaticRoads) Roads(context.Context) ([]graph.RoadNode, error) {
	return s, nil
}

// StaticTraffic serves a fixed traffic snapshot; the zero value means no
// congestion data.
type StaticTraffic []graph.TrafficRecord

func (s StaticTraffic) Traffic(context.Context) ([]graph.TrafficRecord, error) {
	return s, nil
}

// StaticFloods serves a fixed flood-zone snapshot; the zero value means
// no flood data.
type StaticFloods []graph.FloodZone

func (s StaticFloods) Floods(context.Context) ([]graph.FloodZone, error) {
	return s, nil
}
