package engine

import (
	"math"

	"github.com/talgya/metropolis/internal/city"
)

// updatePopulation grows (or shrinks) the city by one month of its
// attractiveness- and QoL-adjusted growth rate. Size is derived from
// population but never decreases.
func (e *Engine) updatePopulation(c *city.City) {
	attractivenessMod := (c.Attractiveness - 50) / 100 // −0.5 … +0.5
	qolMod := (c.QualityOfLife - 50) / 200             // −0.25 … +0.25

	effectiveRate := c.PopulationGrowthRate * (1 + attractivenessMod + qolMod)
	change := int64(math.Floor(float64(c.Population) * effectiveRate / 12))
	c.Population += change

	if newSize := citySize(c.Population); newSize > c.Size {
		c.Size = newSize
	}
}
