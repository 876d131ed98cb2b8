package placement

import (
	"errors"
	"fmt"

	"github.com/citybike/go-planner/geo"
	"github.com/citybike/go-planner/graph"
	"golang.org/x/exp/slices"
)

// ErrInsufficientNodes indicates a request for more stations than there are
// candidate nodes left in the graph.
var ErrInsufficientNodes = errors.New("placement: insufficient nodes")

//*******************************************
// optimizer
//*******************************************

// Optimizer selects station locations on a CityGraph. All strategies are
// deterministic: candidates are visited in lexical id order and every tie
// is broken toward the lowest id.
type Optimizer struct {
	g *graph.CityGraph
}

func NewOptimizer(g *graph.CityGraph) *Optimizer {
	return &Optimizer{g: g}
}

//*******************************************
// greedy max-coverage
//*******************************************

// GreedyPlacement picks k additional stations one round at a time, each
// round taking the candidate with the largest marginal gain in nodes newly
// covered within coverageRadius of any selected station. Coverage is a
// monotone submodular objective, so this greedy carries the usual (1-1/e)
// approximation bound. Returns existing followed by the k picks in
// selection order. O(k*n^2).
func (self *Optimizer) GreedyPlacement(k int, coverageRadius float64, existing []string) ([]string, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k %v", graph.ErrInvalidParameter, k)
	}
	if coverageRadius <= 0 {
		return nil, fmt.Errorf("%w: coverage radius %v", graph.ErrInvalidParameter, coverageRadius)
	}
	selected := make(map[string]bool, len(existing)+k)
	for _, id := range existing {
		if _, err := self.g.GetNode(id); err != nil {
			return nil, err
		}
		selected[id] = true
	}
	ids := self.g.NodeIDs()
	if k > len(ids)-len(selected) {
		return nil, fmt.Errorf("%w: k %v exceeds %v unselected nodes", ErrInsufficientNodes, k, len(ids)-len(selected))
	}

	// nodes already covered by the existing stations
	covered := make(map[string]bool, len(ids))
	for _, id := range ids {
		for station := range selected {
			d, _ := self.g.CalculateDistance(id, station)
			if d <= coverageRadius {
				covered[id] = true
				break
			}
		}
	}

	result := append([]string{}, existing...)
	for round := 0; round < k; round++ {
		best := ""
		best_gain := -1
		for _, candidate := range ids {
			if selected[candidate] {
				continue
			}
			gain := 0
			for _, id := range ids {
				if covered[id] {
					continue
				}
				d, _ := self.g.CalculateDistance(candidate, id)
				if d <= coverageRadius {
					gain += 1
				}
			}
			// strict improvement keeps the lexically first candidate on ties
			if gain > best_gain {
				best_gain = gain
				best = candidate
			}
		}
		selected[best] = true
		result = append(result, best)
		for _, id := range ids {
			if covered[id] {
				continue
			}
			d, _ := self.g.CalculateDistance(best, id)
			if d <= coverageRadius {
				covered[id] = true
			}
		}
	}
	return result, nil
}

//*******************************************
// k-means clustering
//*******************************************

// KMeansPlacement runs Lloyd's algorithm in (lat, lon) space. Centroids are
// seeded from the first k node coordinates in lexical id order, so repeated
// runs produce identical results. Iteration stops when the largest centroid
// displacement falls below tolerance (km) or after maxIterations rounds.
// Each final centroid is snapped to the nearest real graph node.
func (self *Optimizer) KMeansPlacement(k, maxIterations int, tolerance float64) ([]string, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k %v", graph.ErrInvalidParameter, k)
	}
	if maxIterations <= 0 {
		return nil, fmt.Errorf("%w: max iterations %v", graph.ErrInvalidParameter, maxIterations)
	}
	if tolerance < 0 {
		return nil, fmt.Errorf("%w: tolerance %v", graph.ErrInvalidParameter, tolerance)
	}
	ids := self.g.NodeIDs()
	if k > len(ids) {
		return nil, fmt.Errorf("%w: k %v exceeds %v nodes", ErrInsufficientNodes, k, len(ids))
	}

	coords := make([]geo.Coord, len(ids))
	for i, id := range ids {
		node, _ := self.g.GetNode(id)
		coords[i] = node.Coord()
	}

	centroids := make([]geo.Coord, k)
	copy(centroids, coords[:k])

	assignment := make([]int, len(ids))
	for iter := 0; iter < maxIterations; iter++ {
		for i := range ids {
			nearest := 0
			nearest_dist := geo.HaversineDistance(coords[i], centroids[0])
			for c := 1; c < k; c++ {
				d := geo.HaversineDistance(coords[i], centroids[c])
				if d < nearest_dist {
					nearest_dist = d
					nearest = c
				}
			}
			assignment[i] = nearest
		}

		max_shift := 0.0
		for c := 0; c < k; c++ {
			sum_lat, sum_lon := 0.0, 0.0
			count := 0
			for i := range ids {
				if assignment[i] != c {
					continue
				}
				sum_lat += coords[i].Lat
				sum_lon += coords[i].Lon
				count += 1
			}
			if count == 0 {
				// empty cluster keeps its previous centroid
				continue
			}
			updated := geo.Coord{Lat: sum_lat / float64(count), Lon: sum_lon / float64(count)}
			shift := geo.HaversineDistance(centroids[c], updated)
			if shift > max_shift {
				max_shift = shift
			}
			centroids[c] = updated
		}
		if max_shift < tolerance {
			break
		}
	}

	// stations must be real nodes, so snap each centroid to the nearest one
	stations := make([]string, k)
	for c := 0; c < k; c++ {
		nearest := ids[0]
		nearest_dist := geo.HaversineDistance(centroids[c], coords[0])
		for i := 1; i < len(ids); i++ {
			d := geo.HaversineDistance(centroids[c], coords[i])
			if d < nearest_dist {
				nearest_dist = d
				nearest = ids[i]
			}
		}
		stations[c] = nearest
	}
	return stations, nil
}

//*******************************************
// demand ranking
//*******************************************

// DemandPlacement ranks nodes by stored demand (descending, lexical id on
// ties) and selects the top k. Nodes meeting demandThreshold are taken
// first; if fewer than k qualify, the remaining slots are filled by the
// next-highest-demand nodes regardless of threshold.
func (self *Optimizer) DemandPlacement(k int, demandThreshold float64) ([]string, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k %v", graph.ErrInvalidParameter, k)
	}
	ids := self.g.NodeIDs()
	if k > len(ids) {
		return nil, fmt.Errorf("%w: k %v exceeds %v nodes", ErrInsufficientNodes, k, len(ids))
	}

	ranked := append([]string{}, ids...)
	slices.SortStableFunc(ranked, func(a, b string) int {
		da, _ := self.g.Demand(a)
		db, _ := self.g.Demand(b)
		if da != db {
			if da > db {
				return -1
			}
			return 1
		}
		// ids are pre-sorted, stable sort keeps lexical order on ties
		return 0
	})

	selected := make([]string, 0, k)
	for _, id := range ranked {
		if len(selected) == k {
			break
		}
		d, _ := self.g.Demand(id)
		if d >= demandThreshold {
			selected = append(selected, id)
		}
	}
	// fallback: fill remaining slots by descending demand
	for _, id := range ranked {
		if len(selected) == k {
			break
		}
		d, _ := self.g.Demand(id)
		if d < demandThreshold {
			selected = append(selected, id)
		}
	}
	return selected, nil
}
