// Package routing computes congestion- and flood-aware routes over a
// small road-segment graph.
package routing

import (
	"math"

	"github.com/Realchup/smart-traffic-backend/pkg/geo"
	"github.com/Realchup/smart-traffic-backend/pkg/graph"
)

// PathPoint is one resolved node on a computed path.
type PathPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
	ID  string  `json:"id"`
}

// RouteResult is the outcome of one route computation.
//
// Empty StartID and EndID mean the road snapshot had no nodes at all.
// Populated ids with an empty Path mean the snapped endpoints are not
// connected. In both cases the caller is expected to fall back to an
// external routing service.
type RouteResult struct {
	StartID        string
	EndID          string
	DistanceMeters float64
	Path           []PathPoint
}

// Resolved reports whether the computation produced a usable path.
func (r RouteResult) Resolved() bool {
	return len(r.Path) > 0
}

// ComputeSafeRoute snaps src and dst to their nearest road nodes and runs
// a weighted shortest-path search that penalizes congested edges and
// edges crossing flood zones.
//
// The function is a pure function of its inputs: it builds all lookup
// structures from the supplied snapshot, holds no state across calls, and
// is safe to invoke concurrently with independent snapshots.
func ComputeSafeRoute(roads []graph.RoadNode, traffic []graph.TrafficRecord, zones []graph.FloodZone, src, dst geo.Point) RouteResult {
	g := graph.Build(roads)
	if g.NumNodes() == 0 {
		return RouteResult{}
	}

	snapper := NewSnapper(g)
	start, _ := snapper.Nearest(src)
	end, _ := snapper.Nearest(dst)

	result := RouteResult{
		StartID: g.Nodes[start].ID,
		EndID:   g.Nodes[end].ID,
	}

	if start == end {
		result.Path = []PathPoint{pathPoint(g, start)}
		return result
	}

	model := &CostModel{
		Graph:   g,
		Traffic: graph.BuildTrafficIndex(traffic),
		Zones:   graph.NormalizeZones(zones),
	}
	st := shortestPath(g, model.EdgeCost, start, end)

	if math.IsInf(st.dist[end], 1) {
		return result // unreachable: ids reported, path empty
	}

	result.DistanceMeters = st.dist[end]
	result.Path = reconstruct(g, st.pred, end)
	return result
}

// reconstruct walks predecessor links backward from end and returns the
// path in start→end order.
func reconstruct(g *graph.Graph, pred []int32, end int32) []PathPoint {
	var rev []int32
	for n := end; n != graph.NoNode; n = pred[n] {
		rev = append(rev, n)
	}

	path := make([]PathPoint, len(rev))
	for i, n := range rev {
		path[len(rev)-1-i] = pathPoint(g, n)
	}
	return path
}

func pathPoint(g *graph.Graph, n int32) PathPoint {
	node := g.Nodes[n]
	return PathPoint{Lat: node.Pos.Lat, Lng: node.Pos.Lng, ID: node.ID}
}
