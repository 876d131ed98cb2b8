package routing

import (
	"github.com/citybike/go-planner/graph"
	"github.com/citybike/go-planner/util"
)

//*******************************************
// shortest path algorithms
//*******************************************

// Dijkstra computes the minimum weighted-cost route from start to end.
// Label-setting: a node's cost is final when it is popped, so the search
// stops as soon as end leaves the frontier. Equal-cost candidates are
// popped in discovery order, which makes results reproducible across runs.
func Dijkstra(g *graph.CityGraph, start, end string, weights CostWeights) (RouteResult, error) {
	return _CalcShortestPath(g, start, end, weights, nil)
}

// AStar computes the same optimal route as Dijkstra, guided by the
// straight-line distance to end. The frontier priority is
// cost + weights.Distance * haversine(node, end).
//
// The heuristic is admissible for every nonnegative weight vector: the
// remaining path's distance component is lower-bounded by the straight-line
// distance, and the time and traffic components only add cost. AStar
// therefore returns the same total cost as Dijkstra, typically exploring
// fewer nodes.
func AStar(g *graph.CityGraph, start, end string, weights CostWeights) (RouteResult, error) {
	heuristic := func(id string) float64 {
		d, _ := g.CalculateDistance(id, end)
		return weights.Distance * d
	}
	return _CalcShortestPath(g, start, end, weights, heuristic)
}

type _SearchLabel struct {
	cost float64
	dist float64
	time float64
	prev string
}

func _CalcShortestPath(g *graph.CityGraph, start, end string, weights CostWeights, heuristic func(string) float64) (RouteResult, error) {
	if _, err := g.GetNode(start); err != nil {
		return RouteResult{}, err
	}
	if _, err := g.GetNode(end); err != nil {
		return RouteResult{}, err
	}
	if err := weights.validate(); err != nil {
		return RouteResult{}, err
	}
	if start == end {
		return RouteResult{Path: []string{start}, Found: true}, nil
	}

	labels := make(map[string]_SearchLabel, g.NodeCount())
	labels[start] = _SearchLabel{}
	settled := make(map[string]bool, g.NodeCount())

	heap := util.NewPriorityQueue[string, float64](g.NodeCount())
	if heuristic != nil {
		heap.Enqueue(start, heuristic(start))
	} else {
		heap.Enqueue(start, 0)
	}

	explored := 0
	for {
		curr, ok := heap.Dequeue()
		if !ok {
			break
		}
		// stale entry from lazy decrease-key
		if settled[curr] {
			continue
		}
		settled[curr] = true
		explored += 1

		if curr == end {
			label := labels[end]
			return RouteResult{
				Path:          _ReconstructPath(labels, start, end),
				TotalDistance: label.dist,
				TotalTime:     label.time,
				TotalCost:     label.cost,
				NodesExplored: explored,
				Found:         true,
			}, nil
		}

		curr_label := labels[curr]
		neighbors, _ := g.GetNeighbors(curr)
		for _, edge := range neighbors {
			next := edge.Destination
			if settled[next] {
				continue
			}
			new_cost := curr_label.cost + weights.EdgeCost(edge)
			old, known := labels[next]
			if known && new_cost >= old.cost {
				continue
			}
			labels[next] = _SearchLabel{
				cost: new_cost,
				dist: curr_label.dist + edge.Distance,
				time: curr_label.time + edge.Time*edge.Traffic,
				prev: curr,
			}
			priority := new_cost
			if heuristic != nil {
				priority += heuristic(next)
			}
			heap.Enqueue(next, priority)
		}
	}

	return RouteResult{NodesExplored: explored}, nil
}

func _ReconstructPath(labels map[string]_SearchLabel, start, end string) []string {
	path := []string{end}
	curr := end
	for curr != start {
		curr = labels[curr].prev
		path = append(path, curr)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
