package assessment

import "fmt"

// DefaultInScopeCount is how many leading functions are scored when no
// explicit active set is configured.
const DefaultInScopeCount = 2

// ActiveSet is the ordered set of business functions that participate in
// aggregation. Functions outside the set are still tracked in the
// assessment but never contribute to any score.
type ActiveSet struct {
	names []FunctionName
}

// NewActiveSet builds an active set, dropping duplicates and invalid names
// while keeping first-seen order.
func NewActiveSet(names ...FunctionName) ActiveSet {
	var seen [NumFunctions]bool
	out := make([]FunctionName, 0, len(names))
	for _, n := range names {
		if !n.Valid() || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return ActiveSet{names: out}
}

// FirstN returns the first n functions in catalog order. n is clamped to
// [0, NumFunctions].
func FirstN(n int) ActiveSet {
	if n < 0 {
		n = 0
	}
	if n > NumFunctions {
		n = NumFunctions
	}
	all := FunctionNames()
	return NewActiveSet(all[:n]...)
}

// ScopeActiveSet returns the functions flagged in the assessment's scope,
// in catalog order.
func ScopeActiveSet(a *Assessment) ActiveSet {
	var flagged [NumFunctions]bool
	for _, n := range a.Scope {
		if n.Valid() {
			flagged[n] = true
		}
	}
	var names []FunctionName
	for _, n := range FunctionNames() {
		if flagged[n] {
			names = append(names, n)
		}
	}
	return NewActiveSet(names...)
}

// ParseActiveSet parses function identifiers such as "OPS" and "CX".
func ParseActiveSet(ids []string) (ActiveSet, error) {
	names := make([]FunctionName, 0, len(ids))
	for _, id := range ids {
		n, err := ParseFunctionName(id)
		if err != nil {
			return ActiveSet{}, fmt.Errorf("active set: %w", err)
		}
		names = append(names, n)
	}
	return NewActiveSet(names...), nil
}

// Names returns a copy of the functions in the set.
func (s ActiveSet) Names() []FunctionName {
	return append([]FunctionName(nil), s.names...)
}

// Len returns the number of active functions.
func (s ActiveSet) Len() int {
	return len(s.names)
}

// Contains reports whether n participates in aggregation.
func (s ActiveSet) Contains(n FunctionName) bool {
	for _, v := range s.names {
		if v == n {
			return true
		}
	}
	return false
}

func (s ActiveSet) String() string {
	return fmt.Sprint(s.names)
}
