package assessment

import (
	"errors"
	"fmt"
)

// Structural violations reported by Validate and the parsers.
var (
	ErrUnknownFunction    = errors.New("assessment: unknown business function")
	ErrUnknownDimension   = errors.New("assessment: unknown dimension")
	ErrUnknownConsent     = errors.New("assessment: unknown consent state")
	ErrDuplicateFunction  = errors.New("assessment: duplicate business function")
	ErrMissingFunction    = errors.New("assessment: missing business function")
	ErrDuplicateDimension = errors.New("assessment: duplicate dimension")
	ErrMissingDimension   = errors.New("assessment: missing dimension")
	ErrDuplicateKey       = errors.New("assessment: duplicate sub-criterion key")
	ErrEmptyKey           = errors.New("assessment: empty sub-criterion key")
	ErrMissingName        = errors.New("assessment: missing function or component name")
)

// Validate checks the structural invariants of the tree: every business
// function appears exactly once, every function has exactly one component
// per dimension, and sub-criterion keys are non-empty and unique within
// their component. All violations are returned joined.
func (a *Assessment) Validate() error {
	if a == nil {
		return errors.New("assessment: nil assessment")
	}

	var errs []error
	if _, err := ParseConsent(string(a.NDA)); err != nil {
		errs = append(errs, err)
	}
	for _, name := range a.Scope {
		if !name.Valid() {
			errs = append(errs, fmt.Errorf("scope: %w: %d", ErrUnknownFunction, int(name)))
		}
	}

	seen := make(map[FunctionName]bool, NumFunctions)
	for i := range a.Functions {
		fn := &a.Functions[i]
		if !fn.Name.Valid() {
			errs = append(errs, fmt.Errorf("functions[%d]: %w: %d", i, ErrUnknownFunction, int(fn.Name)))
			continue
		}
		if seen[fn.Name] {
			errs = append(errs, fmt.Errorf("%s: %w", fn.Name, ErrDuplicateFunction))
			continue
		}
		seen[fn.Name] = true
		errs = append(errs, fn.validate()...)
	}
	for _, name := range FunctionNames() {
		if !seen[name] {
			errs = append(errs, fmt.Errorf("%s: %w", name, ErrMissingFunction))
		}
	}

	return errors.Join(errs...)
}

func (f *BusinessFunction) validate() []error {
	var errs []error
	var seen [NumDimensions]bool
	for i := range f.Components {
		c := &f.Components[i]
		if !c.Name.Valid() {
			errs = append(errs, fmt.Errorf("%s: components[%d]: %w: %d", f.Name, i, ErrUnknownDimension, int(c.Name)))
			continue
		}
		if seen[c.Name] {
			errs = append(errs, fmt.Errorf("%s/%s: %w", f.Name, c.Name, ErrDuplicateDimension))
			continue
		}
		seen[c.Name] = true

		keys := make(map[string]bool, len(c.Sub))
		for _, s := range c.Sub {
			switch {
			case s.Key == "":
				errs = append(errs, fmt.Errorf("%s/%s: %w", f.Name, c.Name, ErrEmptyKey))
			case keys[s.Key]:
				errs = append(errs, fmt.Errorf("%s/%s/%s: %w", f.Name, c.Name, s.Key, ErrDuplicateKey))
			}
			keys[s.Key] = true
		}
	}
	for _, d := range Dimensions() {
		if !seen[d] {
			errs = append(errs, fmt.Errorf("%s/%s: %w", f.Name, d, ErrMissingDimension))
		}
	}
	return errs
}
