package scorer

import (
	"fmt"

	"github.com/toyinlola/coreiq/pkg/assessment"
)

// Normalize converts a 0-5 answer to the 0-100 scale. Out-of-range input is
// clamped; an unanswered input stays unanswered.
func Normalize(raw *int) *float64 {
	if raw == nil {
		return nil
	}
	v := float64(min(5, max(0, *raw))) * 20
	return &v
}

// MeanAnswered averages the answered values. With no answered values the
// result is 0, so an unanswered component drags its parent down instead of
// being excused.
func MeanAnswered(values []*float64) float64 {
	var sum float64
	var n int
	for _, v := range values {
		if v == nil {
			continue
		}
		sum += *v
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// ComponentScore is the mean of the normalized answers in one component.
// Every sub-criterion contributes equally.
func ComponentScore(subs []assessment.SubCriterion) float64 {
	values := make([]*float64, len(subs))
	for i, s := range subs {
		values[i] = Normalize(s.Score)
	}
	return MeanAnswered(values)
}

// ComponentScoresFor scores all four components of a function. A missing
// component scores 0.
func ComponentScoresFor(fn *assessment.BusinessFunction) ComponentScores {
	var cs ComponentScores
	for _, d := range assessment.Dimensions() {
		if c := fn.Component(d); c != nil {
			cs[d] = ComponentScore(c.Sub)
		}
	}
	return cs
}

// FunctionScore applies the default weights to a function's component scores.
func FunctionScore(cs ComponentScores) float64 {
	return DefaultWeights().FunctionScore(cs)
}

// OverallScore is the mean of the in-scope function scores, or 0 if none.
func OverallScore(functionScores []float64) float64 {
	values := make([]*float64, len(functionScores))
	for i := range functionScores {
		values[i] = &functionScores[i]
	}
	return MeanAnswered(values)
}

// ComponentRollup averages dimension d across the active functions, one
// equal share per function.
func ComponentRollup(d assessment.Dimension, fns []assessment.BusinessFunction, active assessment.ActiveSet) float64 {
	var values []*float64
	for i := range fns {
		if !active.Contains(fns[i].Name) {
			continue
		}
		var v float64
		if c := fns[i].Component(d); c != nil {
			v = ComponentScore(c.Sub)
		}
		values = append(values, &v)
	}
	return MeanAnswered(values)
}

// FunctionResult is the score of one in-scope business function.
type FunctionResult struct {
	Name       assessment.FunctionName `json:"name"`
	Score      float64                 `json:"score"`
	Band       Band                    `json:"band"`
	Components ComponentScores         `json:"components"`
}

// Scores is the engine's output for one assessment.
type Scores struct {
	PerFunction  []FunctionResult `json:"per_function"`
	PerComponent ComponentScores  `json:"per_component"`
	Overall      float64          `json:"overall"`
	Band         Band             `json:"band"`
}

// Function returns the result for a function, if it was in scope.
func (s *Scores) Function(name assessment.FunctionName) (FunctionResult, bool) {
	for _, r := range s.PerFunction {
		if r.Name == name {
			return r, true
		}
	}
	return FunctionResult{}, false
}

// Calculator computes Scores for assessments.
type Calculator struct {
	weights    Weights
	thresholds Thresholds
	active     assessment.ActiveSet
}

// Option configures the Calculator.
type Option func(*Calculator)

// WithWeights overrides the default component weights.
func WithWeights(w Weights) Option {
	return func(c *Calculator) {
		c.weights = w
	}
}

// WithThresholds overrides the default band thresholds.
func WithThresholds(t Thresholds) Option {
	return func(c *Calculator) {
		c.thresholds = t
	}
}

// WithActiveFunctions sets which business functions participate in scoring.
func WithActiveFunctions(s assessment.ActiveSet) Option {
	return func(c *Calculator) {
		c.active = s
	}
}

// NewCalculator creates a scorer with optional configuration. It fails if
// the resulting weights or thresholds are invalid.
// The default active set is the first DefaultInScopeCount functions.
func NewCalculator(opts ...Option) (*Calculator, error) {
	c := &Calculator{
		weights:    DefaultWeights(),
		thresholds: DefaultThresholds(),
		active:     assessment.FirstN(assessment.DefaultInScopeCount),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.weights.Validate(); err != nil {
		return nil, err
	}
	if err := c.thresholds.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewCalculator is NewCalculator for static configuration known to be valid.
func MustNewCalculator(opts ...Option) *Calculator {
	c, err := NewCalculator(opts...)
	if err != nil {
		panic(fmt.Sprintf("scorer: %v", err))
	}
	return c
}

// Active returns the calculator's active function set.
func (c *Calculator) Active() assessment.ActiveSet {
	return c.active
}

// Band classifies a score with the calculator's thresholds.
func (c *Calculator) Band(score float64) Band {
	return c.thresholds.Classify(score)
}

// Score computes the full score hierarchy for a structurally valid assessment.
// Functions outside the active set are ignored. Score never mutates a and
// keeps no state between calls.
func (c *Calculator) Score(a *assessment.Assessment) *Scores {
	scores := &Scores{}
	var fnScores []float64

	for i := range a.Functions {
		fn := &a.Functions[i]
		if !c.active.Contains(fn.Name) {
			continue
		}
		cs := ComponentScoresFor(fn)
		fs := c.weights.FunctionScore(cs)
		scores.PerFunction = append(scores.PerFunction, FunctionResult{
			Name:       fn.Name,
			Score:      fs,
			Band:       c.thresholds.Classify(fs),
			Components: cs,
		})
		fnScores = append(fnScores, fs)
	}

	for _, d := range assessment.Dimensions() {
		scores.PerComponent[d] = ComponentRollup(d, a.Functions, c.active)
	}

	scores.Overall = OverallScore(fnScores)
	scores.Band = c.thresholds.Classify(scores.Overall)
	return scores
}
