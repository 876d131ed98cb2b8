package graph

import (
	"errors"
	"fmt"

	"github.com/citybike/go-planner/geo"
	"golang.org/x/exp/slices"
)

// Sentinel errors for graph operations. All of them signal caller misuse
// and are never retried.
var (
	// ErrUnknownNode indicates a reference to a node id that is not in the graph.
	ErrUnknownNode = errors.New("graph: unknown node")

	// ErrDuplicateNode indicates an attempt to insert an already present node id.
	ErrDuplicateNode = errors.New("graph: duplicate node")

	// ErrInvalidParameter indicates an out-of-range argument (non-positive
	// distance or time, traffic below 1.0, non-positive k or radius).
	ErrInvalidParameter = errors.New("graph: invalid parameter")
)

//*******************************************
// graph structs
//*******************************************

// Node is a location in the city network. It carries static identity only;
// demand lives in the graph's demand store.
type Node struct {
	ID        string
	Name      string
	Lat       float64
	Lon       float64
	IsStation bool
	Capacity  int
}

func (self *Node) Coord() geo.Coord {
	return geo.Coord{Lat: self.Lat, Lon: self.Lon}
}

// Edge is a directed weighted connection. A bidirectional connection is
// stored as two independent Edge values.
type Edge struct {
	Source      string
	Destination string
	Distance    float64 // kilometers
	Time        float64 // minutes
	Traffic     float64 // multiplicative factor, 1.0 = free flow
}

//*******************************************
// city graph
//*******************************************

// CityGraph holds the node set, the adjacency lists and the per-node demand
// store. Adjacency lists keep insertion order; id-level iteration uses
// lexical order via NodeIDs so every traversal is reproducible.
//
// Topology is read-only after loading. Demand is the only mutable state and
// has no internal locking: callers must serialize SetDemand against
// concurrent readers.
type CityGraph struct {
	nodes  map[string]*Node
	edges  map[string][]Edge
	demand map[string]float64
}

func NewCityGraph() *CityGraph {
	return &CityGraph{
		nodes:  make(map[string]*Node, 100),
		edges:  make(map[string][]Edge, 100),
		demand: make(map[string]float64, 100),
	}
}

// AddNode inserts a copy of node. Fails with ErrDuplicateNode if the id is
// already present.
func (self *CityGraph) AddNode(node Node) error {
	if _, ok := self.nodes[node.ID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, node.ID)
	}
	n := node
	self.nodes[node.ID] = &n
	self.edges[node.ID] = nil
	self.demand[node.ID] = 0
	return nil
}

// AddEdge appends a directed edge from source to destination and, if
// bidirectional, a mirrored edge with the same weights. Both endpoints must
// already exist.
func (self *CityGraph) AddEdge(source, destination string, distance, time, traffic float64, bidirectional bool) error {
	if _, ok := self.nodes[source]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, source)
	}
	if _, ok := self.nodes[destination]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, destination)
	}
	if distance <= 0 {
		return fmt.Errorf("%w: distance %v", ErrInvalidParameter, distance)
	}
	if time <= 0 {
		return fmt.Errorf("%w: time %v", ErrInvalidParameter, time)
	}
	if traffic < 1.0 {
		return fmt.Errorf("%w: traffic %v", ErrInvalidParameter, traffic)
	}
	self.edges[source] = append(self.edges[source], Edge{
		Source:      source,
		Destination: destination,
		Distance:    distance,
		Time:        time,
		Traffic:     traffic,
	})
	if bidirectional {
		self.edges[destination] = append(self.edges[destination], Edge{
			Source:      destination,
			Destination: source,
			Distance:    distance,
			Time:        time,
			Traffic:     traffic,
		})
	}
	return nil
}

func (self *CityGraph) GetNode(id string) (*Node, error) {
	node, ok := self.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	return node, nil
}

// GetNeighbors returns the outgoing edges of id in insertion order. The
// returned slice is the graph's own storage and must not be mutated.
func (self *CityGraph) GetNeighbors(id string) ([]Edge, error) {
	if _, ok := self.nodes[id]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	return self.edges[id], nil
}

// GetStations returns all station nodes in lexical id order.
func (self *CityGraph) GetStations() []*Node {
	stations := make([]*Node, 0, len(self.nodes))
	for _, id := range self.NodeIDs() {
		if self.nodes[id].IsStation {
			stations = append(stations, self.nodes[id])
		}
	}
	return stations
}

// NodeIDs returns all node ids in lexical order, the canonical iteration
// order for every deterministic tie-break in the optimizer.
func (self *CityGraph) NodeIDs() []string {
	ids := make([]string, 0, len(self.nodes))
	for id := range self.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (self *CityGraph) NodeCount() int {
	return len(self.nodes)
}

func (self *CityGraph) EdgeCount() int {
	count := 0
	for _, edges := range self.edges {
		count += len(edges)
	}
	return count
}

// CalculateDistance returns the haversine distance in kilometers between the
// two nodes' coordinates.
func (self *CityGraph) CalculateDistance(id1, id2 string) (float64, error) {
	node1, err := self.GetNode(id1)
	if err != nil {
		return 0, err
	}
	node2, err := self.GetNode(id2)
	if err != nil {
		return 0, err
	}
	return geo.HaversineDistance(node1.Coord(), node2.Coord()), nil
}

//*******************************************
// demand store
//*******************************************

// Demand returns the stored demand for id, in [0,1].
func (self *CityGraph) Demand(id string) (float64, error) {
	if _, ok := self.nodes[id]; !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	return self.demand[id], nil
}

// SetDemand stores a demand value for id, clamped to [0,1]. Single-writer:
// callers must not run SetDemand concurrently with demand readers.
func (self *CityGraph) SetDemand(id string, value float64) error {
	if _, ok := self.nodes[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	if value < 0 {
		value = 0
	} else if value > 1 {
		value = 1
	}
	self.demand[id] = value
	return nil
}
