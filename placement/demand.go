package placement

import (
	"math"

	"github.com/citybike/go-planner/geo"
)

// DemandDecayKm controls how fast area-driven demand fades with distance:
// a node 1 km from an area keeps weight/e of that area's demand.
const DemandDecayKm = 1.0

// DensityArea is a weighted point of attraction (commercial center,
// campus, transit hub) used to seed node demand.
type DensityArea struct {
	Lat    float64
	Lon    float64
	Weight float64
}

// SetDemandByDensity overwrites every node's demand with
// clamp01(max over areas of weight * exp(-distance/DemandDecayKm)).
// Pure function of the node coordinates and the area list; writes go
// through the graph's demand store and follow its single-writer rule.
func (self *Optimizer) SetDemandByDensity(areas []DensityArea) {
	for _, id := range self.g.NodeIDs() {
		node, _ := self.g.GetNode(id)
		demand := 0.0
		for _, area := range areas {
			d := geo.HaversineDistance(node.Coord(), geo.Coord{Lat: area.Lat, Lon: area.Lon})
			local := area.Weight * math.Exp(-d/DemandDecayKm)
			if local > demand {
				demand = local
			}
		}
		self.g.SetDemand(id, demand)
	}
}
