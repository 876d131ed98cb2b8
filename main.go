package main

import (
	"fmt"
	"os"

	"golang.org/x/exp/slog"

	"github.com/citybike/go-planner/parser"
	"github.com/citybike/go-planner/placement"
	"github.com/citybike/go-planner/routing"
	"github.com/citybike/go-planner/util"
)

// Summary is the JSON result dump written after a demo run.
type Summary struct {
	Dijkstra      routing.RouteResult         `json:"dijkstra"`
	AStar         routing.RouteResult         `json:"a_star"`
	Reachable     map[string]int              `json:"reachable"`
	Greedy        []string                    `json:"greedy_stations"`
	GreedyMetrics placement.PlacementMetrics  `json:"greedy_metrics"`
	KMeans        []string                    `json:"kmeans_stations"`
	KMeansMetrics placement.PlacementMetrics  `json:"kmeans_metrics"`
	Demand        []string                    `json:"demand_stations"`
	DemandMetrics placement.PlacementMetrics  `json:"demand_metrics"`
	Connectivity  [][2]string                 `json:"suggested_connections"`
}

func main() {
	slog.SetDefault(slog.New(NewLogHandler(os.Stdout, nil)))

	config := ReadConfig("./config.yaml")
	scenario, err := parser.ReadScenario(config.Scenario)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	g, err := parser.BuildScenarioGraph(scenario)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	slog.Info(fmt.Sprintf("loaded scenario: %v nodes, %v edges, %v stations",
		g.NodeCount(), g.EdgeCount(), len(g.GetStations())))

	weights := routing.CostWeights{
		Distance: config.Weights.Distance,
		Time:     config.Weights.Time,
		Traffic:  config.Weights.Traffic,
	}
	if weights == (routing.CostWeights{}) {
		weights = routing.DefaultWeights()
	}

	summary := Summary{}

	//**********************************************************
	// routing
	//**********************************************************

	start, end := config.Routing.Start, config.Routing.End
	dijkstra, err := routing.Dijkstra(g, start, end, weights)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	astar, err := routing.AStar(g, start, end, weights)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	if !dijkstra.Found {
		slog.Info(fmt.Sprintf("no route between %v and %v", start, end))
	} else {
		slog.Info(fmt.Sprintf("dijkstra: %v (%.2f km, %.1f min, cost %.2f, %v nodes explored)",
			dijkstra.Path, dijkstra.TotalDistance, dijkstra.TotalTime, dijkstra.TotalCost, dijkstra.NodesExplored))
		slog.Info(fmt.Sprintf("a-star:   %v (cost %.2f, %v nodes explored)",
			astar.Path, astar.TotalCost, astar.NodesExplored))
	}
	summary.Dijkstra = dijkstra
	summary.AStar = astar

	max_depth := config.Routing.MaxDepth
	if max_depth == 0 {
		max_depth = 3
	}
	reachable, err := routing.FindReachableBFS(g, start, max_depth)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	slog.Info(fmt.Sprintf("%v nodes reachable from %v within %v hops", len(reachable), start, max_depth))
	summary.Reachable = reachable

	//**********************************************************
	// station placement
	//**********************************************************

	optimizer := placement.NewOptimizer(g)
	optimizer.SetDemandByDensity(scenario.PlacementAreas())

	k := config.Placement.Stations
	radius := config.Placement.CoverageRadius

	greedy, err := optimizer.GreedyPlacement(k, radius, nil)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	summary.Greedy = greedy
	summary.GreedyMetrics = _Evaluate(optimizer, "greedy", greedy)

	kmeans, err := optimizer.KMeansPlacement(k, config.Placement.MaxIterations, config.Placement.Tolerance)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	summary.KMeans = kmeans
	summary.KMeansMetrics = _Evaluate(optimizer, "kmeans", kmeans)

	demand, err := optimizer.DemandPlacement(k, config.Placement.DemandThreshold)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	summary.Demand = demand
	summary.DemandMetrics = _Evaluate(optimizer, "demand", demand)

	connections, err := optimizer.SuggestConnectivity(greedy, 2)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	slog.Info(fmt.Sprintf("suggested %v connectivity links for the greedy set", len(connections)))
	summary.Connectivity = connections

	if config.Output != "" {
		if err := util.WriteJSONToFile(summary, config.Output); err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
		slog.Info("results written to " + config.Output)
	}
}

func _Evaluate(optimizer *placement.Optimizer, name string, stations []string) placement.PlacementMetrics {
	metrics, err := optimizer.EvaluatePlacement(stations)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	slog.Info(fmt.Sprintf("%v placement %v: coverage %.2f, avg spacing %.2f km, avg degree %.1f",
		name, stations, metrics.Coverage, metrics.AvgStationDistance, metrics.AvgStationDegree))
	return metrics
}
