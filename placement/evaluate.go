package placement

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/citybike/go-planner/graph"
)

// DefaultCoverageRadius is the walking distance (km) used by
// EvaluatePlacement.
const DefaultCoverageRadius = 0.5

// PlacementMetrics summarizes the quality of a station set.
type PlacementMetrics struct {
	Coverage           float64 `json:"coverage"`
	AvgStationDistance float64 `json:"avg_station_distance"`
	MinStationDistance float64 `json:"min_station_distance"`
	MaxStationDistance float64 `json:"max_station_distance"`
	AvgStationDegree   float64 `json:"avg_station_degree"`
}

//*******************************************
// coverage
//*******************************************

// CalculateCoverage returns the fraction of graph nodes with at least one
// station within radius, in [0,1].
func (self *Optimizer) CalculateCoverage(stations []string, radius float64) (float64, error) {
	if radius <= 0 {
		return 0, fmt.Errorf("%w: radius %v", graph.ErrInvalidParameter, radius)
	}
	for _, id := range stations {
		if _, err := self.g.GetNode(id); err != nil {
			return 0, err
		}
	}
	total := self.g.NodeCount()
	if total == 0 {
		return 0, nil
	}
	covered := 0
	for _, id := range self.g.NodeIDs() {
		for _, station := range stations {
			d, _ := self.g.CalculateDistance(id, station)
			if d <= radius {
				covered += 1
				break
			}
		}
	}
	return float64(covered) / float64(total), nil
}

//*******************************************
// evaluation
//*******************************************

// EvaluatePlacement computes coverage at DefaultCoverageRadius, pairwise
// station spacing and the average outgoing degree of the selected
// stations. Read-only; graph state is never touched.
func (self *Optimizer) EvaluatePlacement(stations []string) (PlacementMetrics, error) {
	if len(stations) == 0 {
		return PlacementMetrics{}, fmt.Errorf("%w: empty station set", graph.ErrInvalidParameter)
	}
	coverage, err := self.CalculateCoverage(stations, DefaultCoverageRadius)
	if err != nil {
		return PlacementMetrics{}, err
	}

	metrics := PlacementMetrics{Coverage: coverage}
	if len(stations) > 1 {
		sum := 0.0
		count := 0
		for i := 0; i < len(stations); i++ {
			for j := i + 1; j < len(stations); j++ {
				d, _ := self.g.CalculateDistance(stations[i], stations[j])
				sum += d
				count += 1
				if count == 1 || d < metrics.MinStationDistance {
					metrics.MinStationDistance = d
				}
				if d > metrics.MaxStationDistance {
					metrics.MaxStationDistance = d
				}
			}
		}
		metrics.AvgStationDistance = sum / float64(count)
	}

	total_degree := 0
	for _, id := range stations {
		neighbors, _ := self.g.GetNeighbors(id)
		total_degree += len(neighbors)
	}
	metrics.AvgStationDegree = float64(total_degree) / float64(len(stations))
	return metrics, nil
}

//*******************************************
// connectivity suggestions
//*******************************************

// SuggestConnectivity proposes edges so that every selected station is
// linked to at least minConnections other selected stations, preferring
// the nearest unconnected ones. Read-only; the caller decides whether to
// apply the suggestions.
func (self *Optimizer) SuggestConnectivity(stations []string, minConnections int) ([][2]string, error) {
	if minConnections <= 0 {
		return nil, fmt.Errorf("%w: min connections %v", graph.ErrInvalidParameter, minConnections)
	}
	in_set := make(map[string]bool, len(stations))
	for _, id := range stations {
		if _, err := self.g.GetNode(id); err != nil {
			return nil, err
		}
		in_set[id] = true
	}

	suggested := make([][2]string, 0)
	for _, station := range stations {
		neighbors, _ := self.g.GetNeighbors(station)
		connected := make(map[string]bool, len(neighbors))
		count := 0
		for _, edge := range neighbors {
			if in_set[edge.Destination] && edge.Destination != station {
				if !connected[edge.Destination] {
					count += 1
				}
				connected[edge.Destination] = true
			}
		}
		if count >= minConnections {
			continue
		}

		type candidate struct {
			id   string
			dist float64
		}
		candidates := make([]candidate, 0, len(stations))
		for _, other := range stations {
			if other == station || connected[other] {
				continue
			}
			d, _ := self.g.CalculateDistance(station, other)
			candidates = append(candidates, candidate{id: other, dist: d})
		}
		slices.SortStableFunc(candidates, func(a, b candidate) int {
			if a.dist != b.dist {
				if a.dist < b.dist {
					return -1
				}
				return 1
			}
			if a.id < b.id {
				return -1
			}
			if a.id > b.id {
				return 1
			}
			return 0
		})

		needed := minConnections - count
		if needed > len(candidates) {
			needed = len(candidates)
		}
		for i := 0; i < needed; i++ {
			suggested = append(suggested, [2]string{station, candidates[i].id})
		}
	}
	return suggested, nil
}
