package param

import (
	"fmt"
	"strings"
)

// Code addresses one parameter in a Store.
type Code int

// Type is the declared kind of a parameter. It selects the parser and the
// Store setter used by a widget and never changes after the widget exists.
type Type string

const (
	Int    Type = "int"
	Float  Type = "float"
	Bool   Type = "bool"
	Vec2   Type = "Vec2"
	Vec3   Type = "Vec3"
	Vec4   Type = "Vec4"
	IVec2  Type = "IVec2"
	IVec3  Type = "IVec3"
	IVec4  Type = "IVec4"
	String Type = "string"
)

// DefaultStep is the step of a range control that declares none.
const DefaultStep = 1.0

var allTypes = []Type{Int, Float, Bool, Vec2, Vec3, Vec4, IVec2, IVec3, IVec4, String}

// ParseType maps a tag name onto a Type. Vector tags are case-insensitive.
func ParseType(s string) (Type, error) {
	for _, t := range allTypes {
		if string(t) == s || strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

func (t Type) Valid() bool {
	for _, v := range allTypes {
		if v == t {
			return true
		}
	}
	return false
}

func (t Type) IsVector() bool {
	switch t {
	case Vec2, Vec3, Vec4, IVec2, IVec3, IVec4:
		return true
	}
	return false
}

// IsInteger reports whether values of t are parsed as integers.
func (t Type) IsInteger() bool {
	switch t {
	case Int, IVec2, IVec3, IVec4:
		return true
	}
	return false
}

// IsScalar reports whether t is drawn as a single range control.
func (t Type) IsScalar() bool {
	return t == Int || t == Float
}

// Dim is the component count of a vector type, 1 otherwise.
func (t Type) Dim() int {
	switch t {
	case Vec2, IVec2:
		return 2
	case Vec3, IVec3:
		return 3
	case Vec4, IVec4:
		return 4
	}
	return 1
}

// Spec holds the initial value and bounds of one range control. A zero Step
// means unspecified.
type Spec struct {
	Value float64
	Min   float64
	Max   float64
	Step  float64
}

// StepOrDefault resolves an unspecified step.
func (s Spec) StepOrDefault() float64 {
	if s.Step == 0 {
		return DefaultStep
	}
	return s.Step
}

func (s Spec) validate() error {
	if s.Min > s.Max {
		return fmt.Errorf("%w: min %s > max %s", ErrBounds, FormatNumber(s.Min), FormatNumber(s.Max))
	}
	if s.Step < 0 {
		return fmt.Errorf("%w: negative step %s", ErrBounds, FormatNumber(s.Step))
	}
	return nil
}

// VecSpec holds one entry per component for each of the scalar Spec fields.
// Step may be empty, in which case every component uses DefaultStep.
type VecSpec struct {
	Value []float64
	Min   []float64
	Max   []float64
	Step  []float64
}

// Validate checks that every sequence has exactly t.Dim() entries.
func (v VecSpec) Validate(t Type) error {
	if !t.IsVector() {
		return fmt.Errorf("%w: %s is not a vector type", ErrUnknownType, t)
	}
	n := t.Dim()
	check := func(name string, s []float64) error {
		if len(s) != n {
			return fmt.Errorf("%w: %s has %d entries, %s needs %d", ErrDimensionMismatch, name, len(s), t, n)
		}
		return nil
	}
	if err := check("value", v.Value); err != nil {
		return err
	}
	if err := check("min", v.Min); err != nil {
		return err
	}
	if err := check("max", v.Max); err != nil {
		return err
	}
	if len(v.Step) != 0 {
		if err := check("step", v.Step); err != nil {
			return err
		}
	}
	for i := 0; i < n; i++ {
		if err := v.Component(i).validate(); err != nil {
			return fmt.Errorf("component %d: %w", i, err)
		}
	}
	return nil
}

// Component returns the scalar spec of component i. It assumes Validate passed.
func (v VecSpec) Component(i int) Spec {
	s := Spec{Value: v.Value[i], Min: v.Min[i], Max: v.Max[i]}
	if len(v.Step) > i {
		s.Step = v.Step[i]
	}
	return s
}

// Clone copies the sequences so the caller can mutate the result.
func (v VecSpec) Clone() VecSpec {
	c := func(s []float64) []float64 {
		if s == nil {
			return nil
		}
		out := make([]float64, len(s))
		copy(out, s)
		return out
	}
	return VecSpec{Value: c(v.Value), Min: c(v.Min), Max: c(v.Max), Step: c(v.Step)}
}
