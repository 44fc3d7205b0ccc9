package graph

import (
	"encoding/json"
	"testing"
)

func TestBuild(t *testing.T) {
	roads := []RoadNode{
		{ID: "a", Lat: 1.30, Lng: 103.80, Neighbors: []NeighborRef{{ID: "b"}}},
		{ID: "b", Lat: 1.31, Lng: 103.81, Neighbors: []NeighborRef{{ID: "a"}, {ID: "c"}}},
		{ID: "c", Lat: 1.32, Lng: 103.82, Neighbors: []NeighborRef{{ID: "b"}}},
	}

	g := Build(roads)

	if g.NumNodes() != 3 {
		t.Fatalf("NumNodes = %d, want 3", g.NumNodes())
	}
	if g.NumEdges() != 4 {
		t.Errorf("NumEdges = %d, want 4", g.NumEdges())
	}

	b, ok := g.IndexOf("b")
	if !ok {
		t.Fatal("IndexOf(b) not found")
	}
	if len(g.Adj[b]) != 2 {
		t.Errorf("node b has %d neighbors, want 2", len(g.Adj[b]))
	}
	if g.Nodes[b].Pos.Lat != 1.31 || g.Nodes[b].Pos.Lng != 103.81 {
		t.Errorf("node b position = %+v", g.Nodes[b].Pos)
	}
}

func TestBuildDropsDeadAndDuplicateRefs(t *testing.T) {
	roads := []RoadNode{
		{ID: "a", Neighbors: []NeighborRef{{ID: "ghost"}, {ID: "b"}, {ID: "b"}, {ID: "a"}}},
		{ID: "b"},
	}

	g := Build(roads)

	a, _ := g.IndexOf("a")
	if len(g.Adj[a]) != 1 {
		t.Fatalf("node a has %d neighbors, want 1 (dead, duplicate and self refs dropped)", len(g.Adj[a]))
	}
	b, _ := g.IndexOf("b")
	if g.Adj[a][0] != b {
		t.Errorf("node a neighbor = %d, want index of b (%d)", g.Adj[a][0], b)
	}
}

func TestBuildEmpty(t *testing.T) {
	g := Build(nil)
	if g.NumNodes() != 0 {
		t.Errorf("NumNodes = %d, want 0", g.NumNodes())
	}
	if _, ok := g.IndexOf("a"); ok {
		t.Error("IndexOf on empty graph reported a hit")
	}
}

func TestBuildDuplicateNodeIDFirstWins(t *testing.T) {
	roads := []RoadNode{
		{ID: "a", Lat: 1.0},
		{ID: "a", Lat: 2.0},
	}

	g := Build(roads)
	if g.NumNodes() != 1 {
		t.Fatalf("NumNodes = %d, want 1", g.NumNodes())
	}
	if g.Nodes[0].Pos.Lat != 1.0 {
		t.Errorf("duplicate id overwrote first record: lat = %f", g.Nodes[0].Pos.Lat)
	}
}

func TestNeighborRefUnmarshal(t *testing.T) {
	var node RoadNode
	raw := `{"id":"n1","lat":1.3,"lng":103.8,"neighbors":["n2",{"id":"n3"}]}`
	if err := json.Unmarshal([]byte(raw), &node); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(node.Neighbors) != 2 {
		t.Fatalf("neighbors = %d, want 2", len(node.Neighbors))
	}
	if node.Neighbors[0].ID != "n2" || node.Neighbors[1].ID != "n3" {
		t.Errorf("neighbors = %+v, want n2, n3", node.Neighbors)
	}
}

func TestEdgeKey(t *testing.T) {
	if EdgeKey("a", "b") != EdgeKey("b", "a") {
		t.Error("EdgeKey not direction-independent")
	}
	if EdgeKey("a", "b") != "a_b" {
		t.Errorf("EdgeKey = %q, want a_b", EdgeKey("a", "b"))
	}
}

func TestBuildTrafficIndex(t *testing.T) {
	idx := BuildTrafficIndex([]TrafficRecord{
		{EdgeID: "b_a", Congestion: 0.4},
		{EdgeID: "a_b", Congestion: 0.6}, // same edge, reversed; last write wins
		{EdgeID: "c_d", Congestion: -3},  // negative → 0
		{EdgeID: "d_e", Congestion: 7},   // clamped → 1
		{EdgeID: "nounderscorehere", Congestion: 0.5},
		{EdgeID: "_x", Congestion: 0.5},
	})

	if len(idx) != 3 {
		t.Fatalf("index has %d entries, want 3", len(idx))
	}
	if got := idx[EdgeKey("a", "b")]; got != 0.6 {
		t.Errorf("a_b = %f, want 0.6 (last write wins)", got)
	}
	if got := idx[EdgeKey("c", "d")]; got != 0 {
		t.Errorf("c_d = %f, want 0", got)
	}
	if got := idx[EdgeKey("d", "e")]; got != 1 {
		t.Errorf("d_e = %f, want 1", got)
	}
}

func TestNormalizeZones(t *testing.T) {
	zones := NormalizeZones([]FloodZone{
		{Severity: 0},
		{Severity: -2},
		{Severity: 0.5},
	})

	if zones[0].Severity != 1 || zones[1].Severity != 1 {
		t.Errorf("non-positive severities not defaulted: %f, %f", zones[0].Severity, zones[1].Severity)
	}
	if zones[2].Severity != 0.5 {
		t.Errorf("valid severity changed: %f", zones[2].Severity)
	}
}
