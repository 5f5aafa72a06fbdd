package graph

import (
	"container/heap"
	"fmt"
)

type queueItem struct {
	node NodeID
	dist float64
	idx  int
}

type priorityQueue []*queueItem

func (pq priorityQueue) Len() int           { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool { return pq[i].dist < pq[j].dist }

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].idx = i
	pq[j].idx = j
}

func (pq *priorityQueue) Push(x any) {
	it := x.(*queueItem)
	it.idx = len(*pq)
	*pq = append(*pq, it)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return it
}

// ShortestPath runs Dijkstra over the edge weights (known lengths, haversine
// otherwise) and returns the ordered node sequence from `from` to `to`,
// both endpoints included. Fails with ErrNoPath when `to` is unreachable.
func (g *MemoryGraph) ShortestPath(from, to NodeID) ([]NodeID, error) {
	if _, ok := g.coords[from]; !ok {
		return nil, fmt.Errorf("origin %d: %w", from, ErrUnknownNode)
	}
	if _, ok := g.coords[to]; !ok {
		return nil, fmt.Errorf("destination %d: %w", to, ErrUnknownNode)
	}

	dist := map[NodeID]float64{from: 0}
	prev := map[NodeID]NodeID{}
	settled := map[NodeID]bool{}

	pq := priorityQueue{{node: from, dist: 0}}
	heap.Init(&pq)

	for pq.Len() > 0 {
		cur := heap.Pop(&pq).(*queueItem)
		if settled[cur.node] {
			continue
		}
		settled[cur.node] = true
		if cur.node == to {
			break
		}
		for _, next := range g.adj[cur.node] {
			if settled[next.to] {
				continue
			}
			alt := cur.dist + next.weight
			if best, ok := dist[next.to]; !ok || alt < best {
				dist[next.to] = alt
				prev[next.to] = cur.node
				heap.Push(&pq, &queueItem{node: next.to, dist: alt})
			}
		}
	}

	if !settled[to] {
		return nil, fmt.Errorf("from %d to %d: %w", from, to, ErrNoPath)
	}

	var path []NodeID
	for at := to; ; {
		path = append(path, at)
		if at == from {
			break
		}
		at = prev[at]
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
