// Package scorer aggregates operator answers into component, function and
// overall maturity scores and classifies the result into a band.
package scorer

import (
	"fmt"
	"math"

	"github.com/toyinlola/coreiq/pkg/assessment"
)

// Default component weights used for function scoring.
const (
	DefaultWeightFunctionality   = 0.30
	DefaultWeightFriction        = 0.25
	DefaultWeightDataFitness     = 0.15
	DefaultWeightChangeReadiness = 0.30
)

// weightTolerance absorbs float rounding when checking the weight sum.
const weightTolerance = 1e-9

// Weights maps each dimension to its share of a function score.
type Weights [assessment.NumDimensions]float64

// ComponentScores holds one 0-100 score per dimension.
type ComponentScores [assessment.NumDimensions]float64

// DefaultWeights returns the shipped weight set.
func DefaultWeights() Weights {
	var w Weights
	w[assessment.Functionality] = DefaultWeightFunctionality
	w[assessment.Friction] = DefaultWeightFriction
	w[assessment.DataFitness] = DefaultWeightDataFitness
	w[assessment.ChangeReadiness] = DefaultWeightChangeReadiness
	return w
}

// Weight returns the weight for dimension d.
func (w Weights) Weight(d assessment.Dimension) float64 {
	return w[d]
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	var sum float64
	for _, v := range w {
		sum += v
	}
	return sum
}

// Validate checks that no weight is negative and that the weights sum to 1.0.
func (w Weights) Validate() error {
	for _, d := range assessment.Dimensions() {
		if w[d] < 0 || math.IsNaN(w[d]) {
			return fmt.Errorf("scorer: weight for %s is %v, must be non-negative", d, w[d])
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("scorer: weights sum to %.6f, must sum to 1.0", sum)
	}
	return nil
}

// FunctionScore returns the weighted sum of the four component scores.
func (w Weights) FunctionScore(cs ComponentScores) float64 {
	var score float64
	for _, d := range assessment.Dimensions() {
		score += cs[d] * w[d]
	}
	return score
}
