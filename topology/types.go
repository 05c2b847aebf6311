// Package topology defines the substrate's topology graph: an undirected,
// labeled multi-attribute graph whose nodes are hosts, VMs, and users, and
// whose edges carry the attribute bundle routing and visualization need.
//
// Graph is adapted from github.com/katalvlaran/lvlath's graph/core package:
// the same AddVertex/AddEdge/Neighbors shape, generalized from a pure
// (From, To, Weight int64) edge to the richer EdgeAttrs bundle this
// simulator's router needs, and from *Vertex pointer edges to plain string
// ids so substrate, catalog and router can all address nodes without
// importing each other's vertex types.
//
// Edge bandwidth is deliberately NOT stored here. Earlier simulator designs
// kept bandwidth on both the graph edge and the resource.Link, which can
// drift out of sync; this graph stores only the owning Link's id, and
// callers resolve residual bandwidth through the substrate's resource
// primitives. See resource.Link.
package topology

import (
	"errors"
	"sync"
)

// NodeKind tags what kind of substrate entity a graph node represents.
type NodeKind int

const (
	// NodeHost is a physical compute host.
	NodeHost NodeKind = iota
	// NodeVM is a running service instance pinned to a host.
	NodeVM
	// NodeUser is a traffic-generating endpoint.
	NodeUser
)

// String renders the NodeKind's original VNFnet shape marker ("o" host,
// "^" VM, "v" user).
func (k NodeKind) String() string {
	switch k {
	case NodeHost:
		return "o"
	case NodeVM:
		return "^"
	case NodeUser:
		return "v"
	default:
		return "?"
	}
}

// Node is a vertex in the topology graph.
type Node struct {
	ID   string
	Kind NodeKind
}

// EdgeAttrs is the attribute bundle carried by every topology edge.
//
// LinkID names the resource.Link this edge draws residual bandwidth from.
// It is empty for "pin" edges (VM attached to its host) and other purely
// virtual edges, which never carry traffic and are excluded from routing
// by their Delay sentinel (DelayNoRoute).
type EdgeAttrs struct {
	LinkID string
	Delay  float64
	Loss   float64
	Color  string
	Style  string
	Weight float64
}

// DelayNoRoute marks a virtual (pin) edge that must never be chosen as a
// routing hop, mirroring vnfnet.py's VM pin edges (delay=99999, bandwidth=0).
const DelayNoRoute = 99999.0

// Sentinel errors.
var (
	ErrNodeNotFound = errors.New("topology: node not found")
	ErrEdgeNotFound = errors.New("topology: edge not found")
	ErrNodeExists   = errors.New("topology: node already exists")
)

// edge is the internal directed half of an undirected topology edge.
type edge struct {
	to    string
	attrs EdgeAttrs
}

// Graph is the topology graph owned exclusively by a substrate.Substrate.
//
// muNode guards nodes; muEdge guards adjacency, mirroring the split-lock
// discipline documented (but not applied) by the teacher library's flat
// core/types.go generation — here the split actually matters because
// Suspend/Restore mutate adjacency on every router retry while node
// membership stays stable across a whole routing attempt.
type Graph struct {
	muNode sync.RWMutex
	muEdge sync.RWMutex

	nodes     map[string]Node
	adjacency map[string]map[string]edge // from -> to -> edge
}

// NewGraph returns an empty topology graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:     make(map[string]Node),
		adjacency: make(map[string]map[string]edge),
	}
}
