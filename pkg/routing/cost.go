package routing

import (
	"math"

	"github.com/Realchup/smart-traffic-backend/pkg/geo"
	"github.com/Realchup/smart-traffic-backend/pkg/graph"
)

// Penalty factors applied on top of the base haversine distance.
const (
	congestionFactor = 2.0
	floodFactor      = 5.0
)

// CostModel computes weighted traversal costs for directed edges. Costs
// are evaluated lazily during search because traffic and flood context is
// a per-request snapshot.
type CostModel struct {
	Graph   *graph.Graph
	Traffic graph.TrafficIndex
	Zones   []graph.FloodZone
}

// EdgeCost returns the weighted cost in meters of traversing the edge
// u→v. An endpoint outside the node arena makes the edge impassable
// (+Inf). Congestion scales the base distance by 1+2·score; every flood
// zone containing the edge midpoint compounds a further 1+5·severity
// multiplier in input order.
func (m *CostModel) EdgeCost(u, v int32) float64 {
	g := m.Graph
	if u < 0 || v < 0 || int(u) >= len(g.Nodes) || int(v) >= len(g.Nodes) {
		return math.Inf(1)
	}

	a := g.Nodes[u]
	b := g.Nodes[v]
	cost := geo.Distance(a.Pos, b.Pos)

	if score, ok := m.Traffic[graph.EdgeKey(a.ID, b.ID)]; ok {
		cost *= 1 + congestionFactor*score
	}

	mid := geo.Midpoint(a.Pos, b.Pos)
	for _, zone := range m.Zones {
		if geo.PointInPolygon(mid, zone.Polygon) {
			cost *= 1 + floodFactor*zone.Severity
		}
	}

	return cost
}
