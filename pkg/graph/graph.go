package graph

import (
	"encoding/json"

	"github.com/Realchup/smart-traffic-backend/pkg/geo"
)

// NoNode is the sentinel index for "no node".
const NoNode = int32(-1)

// RoadNode is one raw road record as supplied by a road-network
// collaborator. Neighbor references may arrive as plain id strings or as
// nested objects exposing an id field.
type RoadNode struct {
	ID        string        `json:"id"`
	Lat       float64       `json:"lat"`
	Lng       float64       `json:"lng"`
	Neighbors []NeighborRef `json:"neighbors"`
}

// NeighborRef is a reference to another road node. It decodes from either
// a JSON string ("n2") or an object with an id field ({"id":"n2"}).
type NeighborRef struct {
	ID string
}

func (r *NeighborRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.ID = obj.ID
	return nil
}

func (r NeighborRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// TrafficRecord is one raw congestion reading for an edge. EdgeID uses the
// "<nodeA>_<nodeB>" format in either direction.
type TrafficRecord struct {
	EdgeID     string  `json:"edge_id"`
	Congestion float64 `json:"congestion"`
}

// FloodZone is a polygon with a severity scalar representing route risk.
type FloodZone struct {
	Polygon  []geo.Point `json:"polygon"`
	Severity float64     `json:"severity"`
}

// Node is a normalized road node in the built graph.
type Node struct {
	ID  string
	Pos geo.Point
}

// Graph is the adjacency structure built from raw road records. Nodes live
// in a flat arena indexed by int32; Adj holds resolved neighbor indices in
// input order. Read-only after Build.
type Graph struct {
	Nodes []Node
	Adj   [][]int32

	index map[string]int32
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int {
	return len(g.Nodes)
}

// NumEdges returns the number of directed edges (resolved neighbor refs).
func (g *Graph) NumEdges() int {
	total := 0
	for _, adj := range g.Adj {
		total += len(adj)
	}
	return total
}

// IndexOf returns the arena index of the node with the given id.
func (g *Graph) IndexOf(id string) (int32, bool) {
	idx, ok := g.index[id]
	return idx, ok
}
