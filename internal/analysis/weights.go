// Package analysis derives timelines, dependency depth, concurrency,
// complexity scores and per-step risk assessments from a care plan's
// steps and dependency edges. Every function here is a pure computation
// over already-loaded, validated records.
package analysis

import "fmt"

// Weights are the caps of each complexity sub-score. A preset's weights
// sum to 100 so the overall score never exceeds 100.
type Weights struct {
	Name              string
	Steps             float64
	Depth             float64
	Concurrency       float64
	FrequencyVariance float64
}

// Saturation points: a factor at or above these values earns its full weight.
const (
	stepSaturation        = 20.0
	depthSaturation       = 5.0
	concurrencySaturation = 10.0
)

var (
	// FourFactorWeights scores timing-frequency variance alongside the other three factors.
	FourFactorWeights = Weights{Name: "four_factor", Steps: 25, Depth: 30, Concurrency: 25, FrequencyVariance: 20}

	// ThreeFactorWeights ignores frequency variance.
	ThreeFactorWeights = Weights{Name: "three_factor", Steps: 30, Depth: 35, Concurrency: 35}
)

// UsesFrequencyVariance reports whether variance contributes to the score
func (w Weights) UsesFrequencyVariance() bool {
	return w.FrequencyVariance > 0
}

// WeightsByName resolves a preset name
func WeightsByName(name string) (Weights, error) {
	switch name {
	case FourFactorWeights.Name:
		return FourFactorWeights, nil
	case ThreeFactorWeights.Name:
		return ThreeFactorWeights, nil
	}
	return Weights{}, fmt.Errorf("unknown weighting preset %q", name)
}
