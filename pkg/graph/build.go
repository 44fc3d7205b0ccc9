package graph

import (
	"math"
	"strings"

	"github.com/Realchup/smart-traffic-backend/pkg/geo"
)

// Build creates a Graph from raw road records.
//
// Node ids are remapped to dense int32 indices (first occurrence of a
// duplicate id wins). Neighbor references are reduced to indices in input
// order; duplicates and references to unknown ids are dropped — an unknown
// reference is a dead edge and can never be traversed.
func Build(roads []RoadNode) *Graph {
	g := &Graph{
		index: make(map[string]int32, len(roads)),
	}

	// Pass 1: register nodes so forward neighbor references resolve.
	for _, r := range roads {
		if r.ID == "" {
			continue
		}
		if _, ok := g.index[r.ID]; ok {
			continue
		}
		g.index[r.ID] = int32(len(g.Nodes))
		g.Nodes = append(g.Nodes, Node{
			ID:  r.ID,
			Pos: geo.Point{Lat: r.Lat, Lng: r.Lng},
		})
	}

	// Pass 2: resolve adjacency.
	g.Adj = make([][]int32, len(g.Nodes))
	seen := make(map[int32]struct{})
	for _, r := range roads {
		u, ok := g.index[r.ID]
		if !ok || g.Adj[u] != nil {
			continue
		}
		clear(seen)
		adj := make([]int32, 0, len(r.Neighbors))
		for _, ref := range r.Neighbors {
			v, ok := g.index[ref.ID]
			if !ok || v == u {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			adj = append(adj, v)
		}
		g.Adj[u] = adj
	}

	return g
}

// TrafficIndex maps canonical undirected edge keys to congestion scores
// in [0, 1].
type TrafficIndex map[string]float64

// EdgeKey returns the canonical undirected key for an edge between two
// node ids: the lexicographically smaller id comes first. Normalizing once
// here means cost lookups never have to try both orderings.
func EdgeKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "_" + b
}

// BuildTrafficIndex normalizes raw traffic records into a canonical-keyed
// index. Scores are clamped to [0, 1] (missing, NaN, and negative values
// become 0); the last record wins when duplicate edge keys appear.
func BuildTrafficIndex(records []TrafficRecord) TrafficIndex {
	idx := make(TrafficIndex, len(records))
	for _, rec := range records {
		a, b, ok := strings.Cut(rec.EdgeID, "_")
		if !ok || a == "" || b == "" {
			continue
		}
		c := rec.Congestion
		if math.IsNaN(c) || c < 0 {
			c = 0
		} else if c > 1 {
			c = 1
		}
		idx[EdgeKey(a, b)] = c
	}
	return idx
}

// NormalizeZones returns flood zones with severity defaulted to 1 where it
// is absent, NaN, or non-positive. Polygons are kept as-is; containment
// tests reject polygons with fewer than 3 vertices.
func NormalizeZones(zones []FloodZone) []FloodZone {
	out := make([]FloodZone, len(zones))
	for i, z := range zones {
		if math.IsNaN(z.Severity) || z.Severity <= 0 {
			z.Severity = 1
		}
		out[i] = z
	}
	return out
}
