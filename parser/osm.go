package parser

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"golang.org/x/exp/slog"

	"github.com/citybike/go-planner/geo"
	"github.com/citybike/go-planner/graph"
)

// CyclingSpeedKmh is the reference speed used to derive edge travel times
// when the source data carries no timing information.
const CyclingSpeedKmh = 15.0

var cycling_highways = map[string]bool{
	"cycleway": true, "residential": true, "living_street": true,
	"tertiary": true, "tertiary_link": true, "secondary": true, "secondary_link": true,
	"unclassified": true, "service": true, "track": true, "path": true, "road": true,
}

type _TempNode struct {
	point geo.Coord
	count int
}

//*******************************************
// osm pbf loading
//*******************************************

// BuildFromOSM extracts a cycleable network from an OSM PBF file. Three
// scans: ways mark which nodes are used and which are junctions, nodes
// contribute coordinates, ways are then split at junctions into edges.
// Junction nodes become graph nodes (id "osm-<ref>"); bicycle_rental
// amenities become stations. Edge distance is accumulated haversine
// length, time derives from CyclingSpeedKmh, traffic starts at 1.0.
func BuildFromOSM(file string) (*graph.CityGraph, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("parser: opening pbf file: %w", err)
	}
	defer f.Close()

	used := make(map[int64]*_TempNode, 10000)

	// pass 1: ways
	scanner := osmpbf.New(context.Background(), f, runtime.GOMAXPROCS(-1))
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if !_IsCycleway(way.TagMap()) {
			continue
		}
		refs := way.Nodes.NodeIDs()
		if len(refs) < 2 {
			continue
		}
		for _, ref := range refs {
			id := ref.FeatureID().Ref()
			if node, ok := used[id]; ok {
				node.count += 1
			} else {
				used[id] = &_TempNode{count: 1}
			}
		}
		// way endpoints always become junctions
		used[refs[0].FeatureID().Ref()].count += 1
		used[refs[len(refs)-1].FeatureID().Ref()].count += 1
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("parser: scanning ways: %w", err)
	}
	scanner.Close()

	// pass 2: node coordinates and junction nodes
	f.Seek(0, 0)
	g := graph.NewCityGraph()
	scanner = osmpbf.New(context.Background(), f, runtime.GOMAXPROCS(-1))
	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		id := node.FeatureID().Ref()
		temp, ok := used[id]
		if !ok {
			continue
		}
		temp.point = geo.Coord{Lat: node.Lat, Lon: node.Lon}
		if temp.count > 1 {
			tags := node.TagMap()
			capacity, _ := strconv.Atoi(tags["capacity"])
			g.AddNode(graph.Node{
				ID:        _OSMNodeID(id),
				Name:      tags["name"],
				Lat:       node.Lat,
				Lon:       node.Lon,
				IsStation: tags["amenity"] == "bicycle_rental",
				Capacity:  capacity,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("parser: scanning nodes: %w", err)
	}
	scanner.Close()

	// pass 3: split ways at junctions into edges
	f.Seek(0, 0)
	scanner = osmpbf.New(context.Background(), f, runtime.GOMAXPROCS(-1))
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		tags := way.TagMap()
		if !_IsCycleway(tags) {
			continue
		}
		refs := way.Nodes.NodeIDs()
		if len(refs) < 2 {
			continue
		}
		oneway := tags["oneway"] == "yes"
		segment_start := refs[0].FeatureID().Ref()
		length := 0.0
		for i := 1; i < len(refs); i++ {
			prev := used[refs[i-1].FeatureID().Ref()]
			curr_ref := refs[i].FeatureID().Ref()
			curr := used[curr_ref]
			length += geo.HaversineDistance(prev.point, curr.point)
			if curr.count <= 1 {
				continue
			}
			if length > 0 {
				time := length / CyclingSpeedKmh * 60
				g.AddEdge(_OSMNodeID(segment_start), _OSMNodeID(curr_ref), length, time, 1.0, !oneway)
			}
			segment_start = curr_ref
			length = 0
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("parser: scanning edges: %w", err)
	}
	scanner.Close()

	slog.Info(fmt.Sprintf("parsed osm network: %v nodes, %v edges", g.NodeCount(), g.EdgeCount()))
	return g, nil
}

func _IsCycleway(tags map[string]string) bool {
	highway, ok := tags["highway"]
	if !ok {
		return false
	}
	if tags["bicycle"] == "no" {
		return false
	}
	return cycling_highways[highway]
}

func _OSMNodeID(ref int64) string {
	return "osm-" + strconv.FormatInt(ref, 10)
}
