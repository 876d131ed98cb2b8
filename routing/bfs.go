package routing

import (
	"fmt"

	"github.com/citybike/go-planner/graph"
)

//*******************************************
// reachability
//*******************************************

// FindReachableBFS runs an unweighted level-order traversal from start and
// returns the hop depth of every node reached within maxDepth (start maps
// to 0). Used for network reachability analysis, not for weighted routing.
func FindReachableBFS(g *graph.CityGraph, start string, maxDepth int) (map[string]int, error) {
	if _, err := g.GetNode(start); err != nil {
		return nil, err
	}
	if maxDepth < 0 {
		return nil, fmt.Errorf("%w: max depth %v", graph.ErrInvalidParameter, maxDepth)
	}

	depths := map[string]int{start: 0}
	queue := []string{start}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		if depths[curr] >= maxDepth {
			continue
		}
		neighbors, _ := g.GetNeighbors(curr)
		for _, edge := range neighbors {
			if _, seen := depths[edge.Destination]; seen {
				continue
			}
			depths[edge.Destination] = depths[curr] + 1
			queue = append(queue, edge.Destination)
		}
	}
	return depths, nil
}
