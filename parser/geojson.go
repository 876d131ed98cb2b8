package parser

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/citybike/go-planner/geo"
	"github.com/citybike/go-planner/graph"
)

//*******************************************
// geojson loading
//*******************************************

// BuildFromGeoJSON builds a CityGraph from a GeoJSON feature collection.
// Point features become nodes (properties: id, name, station, capacity,
// demand); LineString features become edges (properties: source,
// destination, distance, time, traffic, oneway). Missing distance is
// measured along the line geometry, missing time is derived from the
// cycling reference speed.
func BuildFromGeoJSON(data []byte) (*graph.CityGraph, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parser: decoding geojson: %w", err)
	}

	g := graph.NewCityGraph()
	for _, feature := range fc.Features {
		point, ok := feature.Geometry.(orb.Point)
		if !ok {
			continue
		}
		props := feature.Properties
		id := props.MustString("id", "")
		if id == "" {
			return nil, fmt.Errorf("parser: point feature without id property")
		}
		node := graph.Node{
			ID:        id,
			Name:      props.MustString("name", id),
			Lat:       point.Lat(),
			Lon:       point.Lon(),
			IsStation: props.MustBool("station", false),
			Capacity:  props.MustInt("capacity", 0),
		}
		if err := g.AddNode(node); err != nil {
			return nil, err
		}
		if demand := props.MustFloat64("demand", 0); demand != 0 {
			g.SetDemand(id, demand)
		}
	}

	for _, feature := range fc.Features {
		line, ok := feature.Geometry.(orb.LineString)
		if !ok {
			continue
		}
		props := feature.Properties
		source := props.MustString("source", "")
		destination := props.MustString("destination", "")
		distance := props.MustFloat64("distance", 0)
		if distance == 0 {
			distance = _LineLengthKm(line)
		}
		time := props.MustFloat64("time", 0)
		if time == 0 {
			time = distance / CyclingSpeedKmh * 60
		}
		traffic := props.MustFloat64("traffic", 1.0)
		oneway := props.MustBool("oneway", false)
		if err := g.AddEdge(source, destination, distance, time, traffic, !oneway); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func LoadGeoJSON(file string) (*graph.CityGraph, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("parser: reading geojson file: %w", err)
	}
	return BuildFromGeoJSON(data)
}

func _LineLengthKm(line orb.LineString) float64 {
	length := 0.0
	for i := 1; i < len(line); i++ {
		a := geo.Coord{Lat: line[i-1].Lat(), Lon: line[i-1].Lon()}
		b := geo.Coord{Lat: line[i].Lat(), Lon: line[i].Lon()}
		length += geo.HaversineDistance(a, b)
	}
	return length
}
