package benchmarks

import (
	"math"

	"modcell.io/popio/pkg/multiobjective/framework"
)

const (
	Name = "ZDT1"
)

// ZDT1 is a benchmark function used to test the correctness
// of multi-objective algorithms. For more details, check the article below:
// https://datacrayon.com/practical-evolutionary-algorithms/synthetic-objective-functions-and-zdt1/
type ZDT1 struct {
	numVars int
}

func NewZDT1(numVars int) *ZDT1 {
	return &ZDT1{
		numVars,
	}
}

func (p *ZDT1) Name() string {
	return Name
}

// Evaluate returns [f1(x), f2(x)] for a design x in [0,1]^numVars.
func (p *ZDT1) Evaluate(x []float64) framework.ObjectiveSpacePoint {
	g := 1.0
	for i := 1; i < p.numVars; i++ {
		g += 9.0 * x[i] / float64(p.numVars-1)
	}
	return framework.ObjectiveSpacePoint{x[0], g * (1.0 - math.Sqrt(x[0]/g))}
}

// TrueParetoFront generates numPoints points on the true Pareto front for ZDT1
func (p *ZDT1) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		x := 0.0
		if numPoints > 1 {
			x = float64(i) / float64(numPoints-1)
		}
		points[i] = framework.ObjectiveSpacePoint{
			x, 1.0 - math.Sqrt(x),
		}
	}
	return points
}

// DominatedSamples shifts every front point by offset in each objective. With
// a positive offset each sample is strictly dominated by its source point.
func (p *ZDT1) DominatedSamples(front []framework.ObjectiveSpacePoint, offset float64) []framework.ObjectiveSpacePoint {
	samples := make([]framework.ObjectiveSpacePoint, len(front))
	for i, pt := range front {
		s := make(framework.ObjectiveSpacePoint, len(pt))
		for j, v := range pt {
			s[j] = v + offset
		}
		samples[i] = s
	}
	return samples
}
