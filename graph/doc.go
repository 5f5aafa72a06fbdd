// Package graph defines the read-only street network view consumed by the
// routing and guidance layers, plus an in-memory implementation with
// nearest-edge lookup and Dijkstra shortest paths.
//
// GraphView is deliberately narrow: coordinate lookup, edge attributes and a
// nearest-edge query are the only operations the rest of the system needs,
// so nothing else of the underlying network is exposed.
//
// A loaded graph is immutable and safe to share across concurrent sessions.
package graph
