package parser

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/citybike/go-planner/graph"
	"github.com/citybike/go-planner/placement"
)

//*******************************************
// scenario files
//*******************************************

// Scenario is the YAML description of a city network: node and edge
// descriptors plus the density areas used to seed demand.
type Scenario struct {
	Nodes        []ScenarioNode `yaml:"nodes"`
	Edges        []ScenarioEdge `yaml:"edges"`
	DensityAreas []ScenarioArea `yaml:"density-areas"`
}

type ScenarioNode struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Lat       float64 `yaml:"lat"`
	Lon       float64 `yaml:"lon"`
	IsStation bool    `yaml:"station"`
	Capacity  int     `yaml:"capacity"`
	Demand    float64 `yaml:"demand"`
}

type ScenarioEdge struct {
	Source      string  `yaml:"source"`
	Destination string  `yaml:"destination"`
	Distance    float64 `yaml:"distance"` // kilometers
	Time        float64 `yaml:"time"`     // minutes
	Traffic     float64 `yaml:"traffic"`  // defaults to 1.0
	Oneway      bool    `yaml:"oneway"`   // default is a bidirectional pair
}

type ScenarioArea struct {
	Lat    float64 `yaml:"lat"`
	Lon    float64 `yaml:"lon"`
	Weight float64 `yaml:"weight"`
}

func ReadScenario(file string) (Scenario, error) {
	var scenario Scenario
	data, err := os.ReadFile(file)
	if err != nil {
		return scenario, fmt.Errorf("parser: reading scenario file: %w", err)
	}
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return scenario, fmt.Errorf("parser: decoding scenario file: %w", err)
	}
	return scenario, nil
}

// BuildScenarioGraph materializes a scenario into a CityGraph. All graph
// invariants are enforced by the graph constructors, so a scenario with
// duplicate ids, dangling edge endpoints or out-of-range weights fails here.
func BuildScenarioGraph(scenario Scenario) (*graph.CityGraph, error) {
	g := graph.NewCityGraph()
	for _, n := range scenario.Nodes {
		node := graph.Node{
			ID:        n.ID,
			Name:      n.Name,
			Lat:       n.Lat,
			Lon:       n.Lon,
			IsStation: n.IsStation,
			Capacity:  n.Capacity,
		}
		if err := g.AddNode(node); err != nil {
			return nil, err
		}
		if n.Demand != 0 {
			if err := g.SetDemand(n.ID, n.Demand); err != nil {
				return nil, err
			}
		}
	}
	for _, e := range scenario.Edges {
		traffic := e.Traffic
		if traffic == 0 {
			traffic = 1.0
		}
		if err := g.AddEdge(e.Source, e.Destination, e.Distance, e.Time, traffic, !e.Oneway); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// PlacementAreas converts the scenario's density areas for the optimizer.
func (self Scenario) PlacementAreas() []placement.DensityArea {
	areas := make([]placement.DensityArea, len(self.DensityAreas))
	for i, a := range self.DensityAreas {
		areas[i] = placement.DensityArea{Lat: a.Lat, Lon: a.Lon, Weight: a.Weight}
	}
	return areas
}
