package routing

import (
	"math"

	"github.com/Realchup/smart-traffic-backend/pkg/graph"
)

// minHeap is a concrete-typed min-heap for the Dijkstra priority queue.
// Avoids interface boxing overhead of container/heap.
type minHeap struct {
	items []pqItem
}

// pqItem is a priority queue entry.
type pqItem struct {
	node int32
	dist float64
}

func (h *minHeap) Len() int { return len(h.items) }

func (h *minHeap) Push(node int32, dist float64) {
	h.items = append(h.items, pqItem{node, dist})
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap) Pop() pqItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *minHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].dist >= h.items[parent].dist {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *minHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && h.items[left].dist < h.items[smallest].dist {
			smallest = left
		}
		if right < n && h.items[right].dist < h.items[smallest].dist {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

// searchState holds the per-search tentative distances and predecessor
// links for every node in the arena.
type searchState struct {
	dist []float64
	pred []int32
}

// shortestPath runs Dijkstra from start, stopping once goal is finalized
// or the frontier is exhausted. Edge costs are computed on demand per
// traversal via cost; an infinite cost edge is never relaxed. When several
// frontier nodes share the minimum tentative distance the heap order
// decides. That is deterministic for identical inputs, but which of
// several equal-length shortest paths wins is not part of the contract.
func shortestPath(g *graph.Graph, cost func(u, v int32) float64, start, goal int32) searchState {
	n := g.NumNodes()
	st := searchState{
		dist: make([]float64, n),
		pred: make([]int32, n),
	}
	for i := range st.dist {
		st.dist[i] = math.Inf(1)
		st.pred[i] = graph.NoNode
	}
	st.dist[start] = 0

	h := minHeap{items: make([]pqItem, 0, 64)}
	h.Push(start, 0)

	for h.Len() > 0 {
		item := h.Pop()
		u := item.node

		if item.dist > st.dist[u] {
			continue // stale entry
		}
		if u == goal {
			break
		}

		for _, v := range g.Adj[u] {
			newDist := item.dist + cost(u, v)
			if newDist < st.dist[v] {
				st.dist[v] = newDist
				st.pred[v] = u
				h.Push(v, newDist)
			}
		}
	}

	return st
}
