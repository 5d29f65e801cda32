// Package assessment defines the maturity-assessment model shared by every
// CoreIQ package: an Assessment owns its business functions, each function
// owns exactly one component per scoring dimension, and each component owns
// the operator's answers to its sub-criteria.
package assessment

import (
	"fmt"
	"time"
)

// Dimension is one of the four fixed, weighted scoring dimensions.
type Dimension int

const (
	Functionality Dimension = iota
	Friction
	DataFitness
	ChangeReadiness
)

// NumDimensions is the size of the closed Dimension set.
const NumDimensions = int(ChangeReadiness) + 1

// Dimensions returns every dimension in the fixed reporting order.
func Dimensions() [NumDimensions]Dimension {
	return [NumDimensions]Dimension{Functionality, Friction, DataFitness, ChangeReadiness}
}

// Valid reports whether d is one of the four known dimensions.
func (d Dimension) Valid() bool {
	return d >= Functionality && d <= ChangeReadiness
}

func (d Dimension) String() string {
	switch d {
	case Functionality:
		return "FUNCTIONALITY"
	case Friction:
		return "FRICTION"
	case DataFitness:
		return "DATA_FITNESS"
	case ChangeReadiness:
		return "CHANGE_READINESS"
	default:
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
}

// Title returns a human-readable label such as "Data Fitness".
func (d Dimension) Title() string {
	switch d {
	case Functionality:
		return "Functionality"
	case Friction:
		return "Friction"
	case DataFitness:
		return "Data Fitness"
	case ChangeReadiness:
		return "Change Readiness"
	default:
		return d.String()
	}
}

// ParseDimension converts an identifier like "DATA_FITNESS" into a Dimension.
func ParseDimension(s string) (Dimension, error) {
	for _, d := range Dimensions() {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDimension, s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Dimension) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDimension, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dimension) UnmarshalText(text []byte) error {
	v, err := ParseDimension(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// FunctionName identifies a scored business area.
type FunctionName int

const (
	Operations FunctionName = iota
	CustomerExperience
	SalesMarketing
	FinanceAdmin
	InternalIntel
)

// NumFunctions is the size of the closed FunctionName set.
const NumFunctions = int(InternalIntel) + 1

// FunctionNames returns every business function in catalog order.
func FunctionNames() [NumFunctions]FunctionName {
	return [NumFunctions]FunctionName{Operations, CustomerExperience, SalesMarketing, FinanceAdmin, InternalIntel}
}

// Valid reports whether n is one of the known business functions.
func (n FunctionName) Valid() bool {
	return n >= Operations && n <= InternalIntel
}

func (n FunctionName) String() string {
	switch n {
	case Operations:
		return "OPS"
	case CustomerExperience:
		return "CX"
	case SalesMarketing:
		return "SALES_MARKETING"
	case FinanceAdmin:
		return "FINANCE_ADMIN"
	case InternalIntel:
		return "INTERNAL_INTEL"
	default:
		return fmt.Sprintf("FunctionName(%d)", int(n))
	}
}

// Title returns a display label, e.g. "Sales / Marketing".
func (n FunctionName) Title() string {
	switch n {
	case Operations:
		return "Operations"
	case CustomerExperience:
		return "Customer Experience"
	case SalesMarketing:
		return "Sales / Marketing"
	case FinanceAdmin:
		return "Finance / Admin"
	case InternalIntel:
		return "Internal Intelligence"
	default:
		return n.String()
	}
}

// ParseFunctionName converts an identifier like "OPS" into a FunctionName.
func ParseFunctionName(s string) (FunctionName, error) {
	for _, n := range FunctionNames() {
		if n.String() == s {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFunction, s)
}

// MarshalText implements encoding.TextMarshaler.
func (n FunctionName) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFunction, int(n))
	}
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *FunctionName) UnmarshalText(text []byte) error {
	v, err := ParseFunctionName(string(text))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// Consent is the NDA state that gates operator edits.
type Consent string

const (
	ConsentSigned  Consent = "SIGNED"
	ConsentSent    Consent = "SENT"
	ConsentNotSent Consent = "NOT_SENT"
)

// ParseConsent validates a consent identifier.
func ParseConsent(s string) (Consent, error) {
	switch c := Consent(s); c {
	case ConsentSigned, ConsentSent, ConsentNotSent:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownConsent, s)
	}
}

// Status values used by the seeded assessment.
const (
	StatusInProgress = "IN_PROGRESS"
	StatusComplete   = "COMPLETE"
)

// SubCriterion is the operator's answer to one catalog question.
// A nil Score means the question has not been answered yet.
type SubCriterion struct {
	Key   string `json:"key" yaml:"key" toml:"key"`
	Score *int   `json:"score,omitempty" yaml:"score,omitempty" toml:"score,omitempty"`
	Note  string `json:"note,omitempty" yaml:"note,omitempty" toml:"note,omitempty"`
}

// Answered reports whether the operator has recorded a score.
func (s SubCriterion) Answered() bool {
	return s.Score != nil
}

// Component holds the answers for one dimension of one business function.
type Component struct {
	Name Dimension      `json:"name" yaml:"name" toml:"name"`
	Sub  []SubCriterion `json:"sub" yaml:"sub" toml:"sub"`
}

// Lookup returns the sub-criterion with the given key, or nil.
func (c *Component) Lookup(key string) *SubCriterion {
	for i := range c.Sub {
		if c.Sub[i].Key == key {
			return &c.Sub[i]
		}
	}
	return nil
}

// BusinessFunction is one scored business area.
type BusinessFunction struct {
	Name       FunctionName `json:"name" yaml:"name" toml:"name"`
	Components []Component  `json:"components" yaml:"components" toml:"components"`
}

// Component returns the component for dimension d, or nil if absent.
func (f *BusinessFunction) Component(d Dimension) *Component {
	for i := range f.Components {
		if f.Components[i].Name == d {
			return &f.Components[i]
		}
	}
	return nil
}

// Assessment is the root of the model tree.
type Assessment struct {
	ID           string             `json:"id" yaml:"id" toml:"id"`
	Client       string             `json:"client" yaml:"client" toml:"client"`
	Title        string             `json:"title" yaml:"title" toml:"title"`
	Status       string             `json:"status" yaml:"status" toml:"status"`
	NDA          Consent            `json:"nda" yaml:"nda" toml:"nda"`
	Industry     string             `json:"industry,omitempty" yaml:"industry,omitempty" toml:"industry,omitempty"`
	ContactName  string             `json:"contact_name,omitempty" yaml:"contact_name,omitempty" toml:"contact_name,omitempty"`
	ContactEmail string             `json:"contact_email,omitempty" yaml:"contact_email,omitempty" toml:"contact_email,omitempty"`
	NDAFileName  string             `json:"nda_file_name,omitempty" yaml:"nda_file_name,omitempty" toml:"nda_file_name,omitempty"`
	Scope        []FunctionName     `json:"scope,omitempty" yaml:"scope,omitempty" toml:"scope,omitempty"`
	Archived     bool               `json:"archived,omitempty" yaml:"archived,omitempty" toml:"archived,omitempty"`
	Functions    []BusinessFunction `json:"functions" yaml:"functions" toml:"functions"`
	UpdatedAt    time.Time          `json:"updated_at" yaml:"updated_at" toml:"updated_at"`
}

// Function returns the business function with the given name, or nil.
func (a *Assessment) Function(name FunctionName) *BusinessFunction {
	for i := range a.Functions {
		if a.Functions[i].Name == name {
			return &a.Functions[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the assessment.
func (a *Assessment) Clone() *Assessment {
	if a == nil {
		return nil
	}
	out := *a
	if a.Scope != nil {
		out.Scope = append([]FunctionName(nil), a.Scope...)
	}
	out.Functions = make([]BusinessFunction, len(a.Functions))
	for i, fn := range a.Functions {
		comps := make([]Component, len(fn.Components))
		for j, c := range fn.Components {
			subs := make([]SubCriterion, len(c.Sub))
			for k, s := range c.Sub {
				if s.Score != nil {
					v := *s.Score
					s.Score = &v
				}
				subs[k] = s
			}
			comps[j] = Component{Name: c.Name, Sub: subs}
		}
		out.Functions[i] = BusinessFunction{Name: fn.Name, Components: comps}
	}
	return &out
}

// New seeds an assessment with every business function and four empty
// components each. OPS and CX are in scope; consent starts as NOT_SENT.
func New(id, client, title string) *Assessment {
	a := &Assessment{
		ID:        id,
		Client:    client,
		Title:     title,
		Status:    StatusInProgress,
		NDA:       ConsentNotSent,
		Scope:     []FunctionName{Operations, CustomerExperience},
		UpdatedAt: time.Now().UTC(),
	}
	for _, name := range FunctionNames() {
		fn := BusinessFunction{Name: name}
		for _, d := range Dimensions() {
			fn.Components = append(fn.Components, Component{Name: d, Sub: []SubCriterion{}})
		}
		a.Functions = append(a.Functions, fn)
	}
	return a
}

// IntPtr returns a pointer to v, for building answered sub-criteria.
func IntPtr(v int) *int {
	return &v
}
