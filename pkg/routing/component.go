package routing

import "github.com/Realchup/smart-traffic-backend/pkg/graph"

// unionFind implements a disjoint-set data structure with path halving
// and union by rank.
type unionFind struct {
	parent []int32
	rank   []byte // byte is sufficient — max rank ~30 for realistic graphs
	size   []int32
}

func newUnionFind(n int) *unionFind {
	parent := make([]int32, n)
	size := make([]int32, n)
	for i := range parent {
		parent[i] = int32(i)
		size[i] = 1
	}
	return &unionFind{
		parent: parent,
		rank:   make([]byte, n),
		size:   size,
	}
}

func (uf *unionFind) find(x int32) int32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]] // path halving
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(x, y int32) bool {
	rx := uf.find(x)
	ry := uf.find(y)
	if rx == ry {
		return false
	}

	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	return true
}

// ComponentStats summarizes the weak connectivity of a road graph.
// A component count above 1 explains unreachable route results: the
// snapped endpoints landed in different islands.
type ComponentStats struct {
	Count       int
	LargestSize int
}

// Components labels weakly connected components, treating every neighbor
// reference as undirected.
func Components(g *graph.Graph) ComponentStats {
	n := g.NumNodes()
	if n == 0 {
		return ComponentStats{}
	}

	uf := newUnionFind(n)
	for u := range g.Adj {
		for _, v := range g.Adj[u] {
			uf.union(int32(u), v)
		}
	}

	count := 0
	largest := int32(0)
	for i := 0; i < n; i++ {
		root := uf.find(int32(i))
		if root == int32(i) {
			count++
			if uf.size[root] > largest {
				largest = uf.size[root]
			}
		}
	}

	return ComponentStats{Count: count, LargestSize: int(largest)}
}
