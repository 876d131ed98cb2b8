package routing

import (
	"fmt"

	"github.com/citybike/go-planner/graph"
)

//*******************************************
// cost model
//*******************************************

// CostWeights blends the three edge factors into a single scalar cost.
// Weights must be nonnegative; callers are expected to normalize them to
// sum to 1, but the engine does not enforce that.
type CostWeights struct {
	Distance float64
	Time     float64
	Traffic  float64
}

// DefaultWeights is the balanced profile used by the demo.
func DefaultWeights() CostWeights {
	return CostWeights{Distance: 0.4, Time: 0.4, Traffic: 0.2}
}

// EdgeCost returns the weighted cost of traversing e:
// distance*dw + time*tw + time*traffic*cw.
func (self CostWeights) EdgeCost(e graph.Edge) float64 {
	return self.Distance*e.Distance + self.Time*e.Time + self.Traffic*(e.Time*e.Traffic)
}

func (self CostWeights) validate() error {
	if self.Distance < 0 || self.Time < 0 || self.Traffic < 0 {
		return fmt.Errorf("%w: negative cost weight", graph.ErrInvalidParameter)
	}
	return nil
}

//*******************************************
// route result
//*******************************************

// RouteResult is the outcome of a single shortest-path query. Unreachable
// destinations are reported with Found == false, not with an error.
type RouteResult struct {
	Path          []string `json:"path"`
	TotalDistance float64  `json:"total_distance"` // kilometers
	TotalTime     float64  `json:"total_time"`     // traffic-adjusted minutes
	TotalCost     float64  `json:"total_cost"`
	NodesExplored int      `json:"nodes_explored"`
	Found         bool     `json:"found"`
}
