package scorer

import (
	"fmt"
	"strings"
)

// Band is the ordinal maturity classification, lowest first.
type Band int

const (
	BandBaseline Band = iota
	BandCompetent
	BandStrong
	BandPrime
)

func (b Band) String() string {
	switch b {
	case BandBaseline:
		return "Baseline"
	case BandCompetent:
		return "Competent"
	case BandStrong:
		return "Strong"
	case BandPrime:
		return "Prime"
	default:
		return fmt.Sprintf("Band(%d)", int(b))
	}
}

// ParseBand accepts a band name in any letter case.
func ParseBand(s string) (Band, error) {
	for _, b := range []Band{BandBaseline, BandCompetent, BandStrong, BandPrime} {
		if strings.EqualFold(b.String(), s) {
			return b, nil
		}
	}
	return 0, fmt.Errorf("scorer: unknown band %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (b Band) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Band) UnmarshalText(text []byte) error {
	v, err := ParseBand(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Default band thresholds. Each is an inclusive lower bound.
const (
	DefaultPrimeThreshold     = 85.0
	DefaultStrongThreshold    = 70.0
	DefaultCompetentThreshold = 50.0
)

// Thresholds holds the inclusive lower bound of each band above Baseline.
type Thresholds struct {
	Prime     float64
	Strong    float64
	Competent float64
}

// DefaultThresholds returns the shipped band thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Prime:     DefaultPrimeThreshold,
		Strong:    DefaultStrongThreshold,
		Competent: DefaultCompetentThreshold,
	}
}

// Validate checks that thresholds are strictly descending.
func (t Thresholds) Validate() error {
	if !(t.Prime > t.Strong && t.Strong > t.Competent) {
		return fmt.Errorf("scorer: thresholds must descend prime > strong > competent, got %v > %v > %v",
			t.Prime, t.Strong, t.Competent)
	}
	return nil
}

// Classify bands any real score. NaN falls through to Baseline.
// Prime: score >= Prime
// Strong: score >= Strong
// Competent: score >= Competent
// Baseline: otherwise
func (t Thresholds) Classify(score float64) Band {
	switch {
	case score >= t.Prime:
		return BandPrime
	case score >= t.Strong:
		return BandStrong
	case score >= t.Competent:
		return BandCompetent
	default:
		return BandBaseline
	}
}

// BandFor classifies a score with the default thresholds.
func BandFor(score float64) Band {
	return DefaultThresholds().Classify(score)
}
