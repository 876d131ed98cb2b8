package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/citybike/go-planner/graph"
)

var test_scenario = []byte(`
nodes:
  - id: hub
    name: Central Hub
    lat: 40.7589
    lon: -73.9851
    station: true
    capacity: 20
    demand: 0.9
  - id: park
    name: Park Entrance
    lat: 40.7680
    lon: -73.9819
  - id: pier
    name: Riverside Pier
    lat: 40.7420
    lon: -74.0080
edges:
  - source: hub
    destination: park
    distance: 1.2
    time: 6
  - source: park
    destination: pier
    distance: 3.4
    time: 15
    traffic: 1.4
    oneway: true
density-areas:
  - lat: 40.7589
    lon: -73.9851
    weight: 0.8
`)

func TestBuildScenarioGraph(t *testing.T) {
	var scenario Scenario
	require.NoError(t, yaml.Unmarshal(test_scenario, &scenario))

	g, err := BuildScenarioGraph(scenario)
	require.NoError(t, err)

	assert.Equal(t, 3, g.NodeCount())
	// one bidirectional pair plus one oneway edge
	assert.Equal(t, 3, g.EdgeCount())

	hub, err := g.GetNode("hub")
	require.NoError(t, err)
	assert.Equal(t, "Central Hub", hub.Name)
	assert.True(t, hub.IsStation)
	assert.Equal(t, 20, hub.Capacity)

	d, err := g.Demand("hub")
	require.NoError(t, err)
	assert.Equal(t, 0.9, d)

	// missing traffic defaults to free flow
	edges, err := g.GetNeighbors("hub")
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, 1.0, edges[0].Traffic)

	// the oneway edge has no mirrored counterpart
	edges, err = g.GetNeighbors("pier")
	require.NoError(t, err)
	assert.Empty(t, edges)
	edges, _ = g.GetNeighbors("park")
	require.Len(t, edges, 2)
	assert.Equal(t, 1.4, edges[1].Traffic)
}

func TestBuildScenarioGraphDanglingEdge(t *testing.T) {
	scenario := Scenario{
		Nodes: []ScenarioNode{{ID: "a"}},
		Edges: []ScenarioEdge{{Source: "a", Destination: "ghost", Distance: 1, Time: 5}},
	}
	_, err := BuildScenarioGraph(scenario)
	require.ErrorIs(t, err, graph.ErrUnknownNode)
}

func TestBuildScenarioGraphDuplicateNode(t *testing.T) {
	scenario := Scenario{
		Nodes: []ScenarioNode{{ID: "a"}, {ID: "a"}},
	}
	_, err := BuildScenarioGraph(scenario)
	require.ErrorIs(t, err, graph.ErrDuplicateNode)
}

func TestReadScenario(t *testing.T) {
	file := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(file, test_scenario, 0644))

	scenario, err := ReadScenario(file)
	require.NoError(t, err)
	assert.Len(t, scenario.Nodes, 3)
	assert.Len(t, scenario.Edges, 2)

	areas := scenario.PlacementAreas()
	require.Len(t, areas, 1)
	assert.Equal(t, 0.8, areas[0].Weight)

	_, err = ReadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

var test_geojson = []byte(`{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [0, 0]},
      "properties": {"id": "west", "station": true, "capacity": 12}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [0.01, 0]},
      "properties": {"id": "east", "demand": 0.6}
    },
    {
      "type": "Feature",
      "geometry": {"type": "LineString", "coordinates": [[0, 0], [0.01, 0]]},
      "properties": {"source": "west", "destination": "east"}
    }
  ]
}`)

func TestBuildFromGeoJSON(t *testing.T) {
	g, err := BuildFromGeoJSON(test_geojson)
	require.NoError(t, err)

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())

	west, err := g.GetNode("west")
	require.NoError(t, err)
	assert.True(t, west.IsStation)
	assert.Equal(t, 12, west.Capacity)
	// name falls back to the id
	assert.Equal(t, "west", west.Name)

	d, err := g.Demand("east")
	require.NoError(t, err)
	assert.Equal(t, 0.6, d)

	// distance is measured along the geometry, time derived from it
	edges, err := g.GetNeighbors("west")
	require.NoError(t, err)
	require.Len(t, edges, 1)
	straight, err := g.CalculateDistance("west", "east")
	require.NoError(t, err)
	assert.InDelta(t, straight, edges[0].Distance, 1e-9)
	assert.InDelta(t, straight/CyclingSpeedKmh*60, edges[0].Time, 1e-9)
	assert.Equal(t, 1.0, edges[0].Traffic)
}

func TestBuildFromGeoJSONMissingID(t *testing.T) {
	data := []byte(`{
	  "type": "FeatureCollection",
	  "features": [
	    {
	      "type": "Feature",
	      "geometry": {"type": "Point", "coordinates": [0, 0]},
	      "properties": {"name": "anonymous"}
	    }
	  ]
	}`)
	_, err := BuildFromGeoJSON(data)
	require.Error(t, err)
}

func TestBuildFromGeoJSONInvalid(t *testing.T) {
	_, err := BuildFromGeoJSON([]byte(`{"type": "not geojson"`))
	require.Error(t, err)
}
