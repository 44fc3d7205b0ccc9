package routing

import (
	"math"

	"github.com/tidwall/rtree"

	"github.com/Realchup/smart-traffic-backend/pkg/geo"
	"github.com/Realchup/smart-traffic-backend/pkg/graph"
)

// Snapper finds the graph node nearest an arbitrary query coordinate
// using an R-tree point index over the node arena.
type Snapper struct {
	g  *graph.Graph
	tr rtree.RTreeG[int32]
}

// NewSnapper builds the spatial index from the graph's nodes.
func NewSnapper(g *graph.Graph) *Snapper {
	s := &Snapper{g: g}
	for i := range g.Nodes {
		p := [2]float64{g.Nodes[i].Pos.Lng, g.Nodes[i].Pos.Lat}
		s.tr.Insert(p, p, int32(i))
	}
	return s
}

// Nearest returns the index of the node closest to p, or false if the
// graph has no nodes. Candidate ordering uses an equirectangular metric
// scaled at the query latitude; over road-network extents this agrees
// with haversine ordering while skipping the trig on every comparison.
func (s *Snapper) Nearest(p geo.Point) (int32, bool) {
	best := graph.NoNode
	cosLat := math.Cos(p.Lat * math.Pi / 180)

	s.tr.Nearby(
		func(min, max [2]float64, _ int32, _ bool) float64 {
			dx := axisDist(p.Lng, min[0], max[0]) * cosLat
			dy := axisDist(p.Lat, min[1], max[1])
			return dx*dx + dy*dy
		},
		func(_, _ [2]float64, data int32, _ float64) bool {
			best = data
			return false // first item popped is the nearest
		},
	)

	return best, best != graph.NoNode
}

// axisDist returns the distance from k to the interval [min, max] along
// one axis; zero when k lies inside it.
func axisDist(k, min, max float64) float64 {
	if k < min {
		return min - k
	}
	if k > max {
		return k - max
	}
	return 0
}
