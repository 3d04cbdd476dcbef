package param

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Values is a YAML number or sequence of numbers.
type Values []float64

func (v *Values) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var f float64
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*v = Values{f}
		return nil
	case yaml.SequenceNode:
		var fs []float64
		if err := node.Decode(&fs); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*v = fs
		return nil
	}
	return fmt.Errorf("line %d: expected a number or a list of numbers", node.Line)
}

func (v Values) MarshalYAML() (interface{}, error) {
	if len(v) == 1 {
		return v[0], nil
	}
	return []float64(v), nil
}

// Def declares one parameter of a panel: its code, label, type and the data
// its widget needs.
type Def struct {
	Code    Code   `yaml:"code"`
	Key     string `yaml:"key,omitempty"`
	Label   string `yaml:"label"`
	Type    Type   `yaml:"type"`
	Value   Values `yaml:"value,omitempty"`
	Min     Values `yaml:"min,omitempty"`
	Max     Values `yaml:"max,omitempty"`
	Step    Values `yaml:"step,omitempty"`
	Checked bool   `yaml:"checked,omitempty"`
	Count   int    `yaml:"count,omitempty"`
}

func ScalarDef(code Code, label string, t Type, s Spec) Def {
	d := Def{Code: code, Label: label, Type: t, Value: Values{s.Value}, Min: Values{s.Min}, Max: Values{s.Max}}
	if s.Step != 0 {
		d.Step = Values{s.Step}
	}
	return d
}

func VectorDef(code Code, label string, t Type, vs VecSpec) Def {
	c := vs.Clone()
	return Def{Code: code, Label: label, Type: t, Value: c.Value, Min: c.Min, Max: c.Max, Step: c.Step}
}

func BoolDef(code Code, name string, checked bool) Def {
	return Def{Code: code, Label: name, Type: Bool, Checked: checked}
}

func EntriesDef(code Code, name string, count int) Def {
	return Def{Code: code, Label: name, Type: String, Count: count}
}

// Spec returns the scalar spec. Missing fields read as zero.
func (d Def) Spec() Spec {
	first := func(v Values) float64 {
		if len(v) == 0 {
			return 0
		}
		return v[0]
	}
	return Spec{Value: first(d.Value), Min: first(d.Min), Max: first(d.Max), Step: first(d.Step)}
}

func (d Def) VecSpec() VecSpec {
	return VecSpec{Value: d.Value, Min: d.Min, Max: d.Max, Step: d.Step}.Clone()
}

// ConstName is the enum constant for d: the screaming-snake form of Key, or
// of the label when no key is set.
func (d Def) ConstName() string {
	if d.Key != "" {
		return ScreamingSnake(d.Key)
	}
	return ConstName(d.Label)
}

// Validate reports the first configuration problem of d as a *ConfigError.
func (d Def) Validate() error {
	if err := d.validate(); err != nil {
		return &ConfigError{Code: d.Code, Label: d.Label, Wrapped: err}
	}
	return nil
}

func (d Def) validate() error {
	if !d.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, string(d.Type))
	}
	switch {
	case d.Type.IsScalar():
		names := []string{"value", "min", "max"}
		for i, v := range []Values{d.Value, d.Min, d.Max} {
			if len(v) != 1 {
				return fmt.Errorf("%w: scalar %s needs one entry, has %d", ErrDimensionMismatch, names[i], len(v))
			}
		}
		if len(d.Step) > 1 {
			return fmt.Errorf("%w: scalar step has %d entries", ErrDimensionMismatch, len(d.Step))
		}
		return d.Spec().validate()
	case d.Type.IsVector():
		return d.VecSpec().Validate(d.Type)
	case d.Type == String:
		if d.Count < 1 {
			return ErrEmptyGroup
		}
	}
	return nil
}
