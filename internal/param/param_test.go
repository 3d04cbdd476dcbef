package param

import (
	"errors"
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestTypeProperties(t *testing.T) {
	tests := []struct {
		typ     Type
		dim     int
		vector  bool
		integer bool
	}{
		{Int, 1, false, true},
		{Float, 1, false, false},
		{Bool, 1, false, false},
		{Vec2, 2, true, false},
		{Vec3, 3, true, false},
		{Vec4, 4, true, false},
		{IVec2, 2, true, true},
		{IVec3, 3, true, true},
		{IVec4, 4, true, true},
		{String, 1, false, false},
	}

	for _, tt := range tests {
		if !tt.typ.Valid() {
			t.Errorf("%s: expected valid", tt.typ)
		}
		if tt.typ.Dim() != tt.dim {
			t.Errorf("%s: expected dim %d, got %d", tt.typ, tt.dim, tt.typ.Dim())
		}
		if tt.typ.IsVector() != tt.vector {
			t.Errorf("%s: expected vector=%v", tt.typ, tt.vector)
		}
		if tt.typ.IsInteger() != tt.integer {
			t.Errorf("%s: expected integer=%v", tt.typ, tt.integer)
		}
	}

	if Type("Vec5").Valid() {
		t.Error("Vec5 should not be valid")
	}
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("ivec3")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if typ != IVec3 {
		t.Errorf("expected IVec3, got %s", typ)
	}

	if _, err := ParseType("double"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"42", 42},
		{" 7 ", 7},
		{"-3", -3},
		{"42.9", 42},
		{"-2.5", -2},
	}

	for _, tt := range tests {
		got, err := ParseInt(tt.raw)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %d, got %d", tt.raw, tt.want, got)
		}
	}

	for _, raw := range []string{"", "abc", "NaN", "1e40", "3000000000", "-99999999999", "3000000000.5"} {
		if _, err := ParseInt(raw); !errors.Is(err, ErrParse) {
			t.Errorf("%q: expected ErrParse, got %v", raw, err)
		}
	}

	for _, raw := range []string{"3000000000", "-99999999999", "3000000000.5", "1e40"} {
		_, err := ParseInt(raw)
		if !errors.Is(err, errOutOfRange) || errors.Is(err, errNotFinite) {
			t.Errorf("%q: expected out of range error, got %v", raw, err)
		}
	}
	if _, err := ParseInt("NaN"); !errors.Is(err, errNotFinite) {
		t.Errorf("NaN: expected not finite error, got %v", err)
	}

	for raw, want := range map[string]int{"2147483647": math.MaxInt32, "-2147483648": math.MinInt32, "2147483647.9": math.MaxInt32} {
		if got, err := ParseInt(raw); err != nil || got != want {
			t.Errorf("%q: expected %d, got %d (%v)", raw, want, got, err)
		}
	}
}

func TestParseFloat(t *testing.T) {
	got, err := ParseFloat("3.5")
	if err != nil || got != 3.5 {
		t.Errorf("expected 3.5, got %v (%v)", got, err)
	}

	for _, raw := range []string{"", "x", "NaN", "Inf"} {
		if _, err := ParseFloat(raw); !errors.Is(err, ErrParse) {
			t.Errorf("%q: expected ErrParse, got %v", raw, err)
		}
	}
}

func TestParseBranchesOnType(t *testing.T) {
	v, err := Parse(IVec2, "9.7")
	if err != nil || v != 9 {
		t.Errorf("IVec2: expected 9, got %v (%v)", v, err)
	}

	v, err = Parse(Vec2, "9.7")
	if err != nil || v != 9.7 {
		t.Errorf("Vec2: expected 9.7, got %v (%v)", v, err)
	}

	_, err = Parse(IVec3, "zz")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Type != IVec3 || pe.Raw != "zz" {
		t.Errorf("unexpected parse error fields: %+v", pe)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{42, "42"},
		{3.5, "3.5"},
		{0.001, "0.001"},
		{-0.0001, "-0.0001"},
		{9.81, "9.81"},
		{1e-7, "1e-7"},
		{1.5e21, "1.5e+21"},
		{math.NaN(), "NaN"},
		{math.Inf(-1), "-Infinity"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.v); got != tt.want {
			t.Errorf("FormatNumber(%v): expected %q, got %q", tt.v, tt.want, got)
		}
	}

	if got := FormatVector([]float64{0, 3.5, 0}); got != "0,3.5,0" {
		t.Errorf("expected 0,3.5,0, got %q", got)
	}
}

func TestVecSpecValidate(t *testing.T) {
	ok := VecSpec{
		Value: []float64{0, 0, 0},
		Min:   []float64{-1, -1, -1},
		Max:   []float64{1, 1, 1},
	}
	if err := ok.Validate(Vec3); err != nil {
		t.Errorf("expected valid spec, got %v", err)
	}

	short := ok.Clone()
	short.Max = []float64{1, 1}
	if err := short.Validate(Vec3); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}

	if err := ok.Validate(Vec2); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Vec2 with 3 values: expected ErrDimensionMismatch, got %v", err)
	}

	inverted := ok.Clone()
	inverted.Min[1] = 2
	if err := inverted.Validate(Vec3); !errors.Is(err, ErrBounds) {
		t.Errorf("expected ErrBounds, got %v", err)
	}

	if ok.Component(2).StepOrDefault() != DefaultStep {
		t.Error("expected default step for component without step")
	}
}

func TestDefValidate(t *testing.T) {
	tests := []struct {
		name string
		def  Def
		want error
	}{
		{"scalar", ScalarDef(0, "Steps/frame", Int, Spec{Value: 10, Max: 100}), nil},
		{"bool", BoolDef(16, "Use GPU", true), nil},
		{"entries", EntriesDef(7, "Names", 3), nil},
		{"unknown", Def{Code: 1, Label: "x", Type: "double"}, ErrUnknownType},
		{"empty group", EntriesDef(7, "Names", 0), ErrEmptyGroup},
		{"scalar missing max", Def{Code: 2, Label: "m", Type: Float, Value: Values{1}, Min: Values{0}}, ErrDimensionMismatch},
		{"negative step", ScalarDef(3, "s", Float, Spec{Value: 0, Min: 0, Max: 1, Step: -0.1}), ErrBounds},
		{"vector mismatch", Def{Code: 20, Label: "Origin", Type: Vec3, Value: Values{0, 0, 0}, Min: Values{0, 0}, Max: Values{1, 1, 1}}, ErrDimensionMismatch},
	}

	for _, tt := range tests {
		err := tt.def.Validate()
		if tt.want == nil {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
		var ce *ConfigError
		if !errors.As(err, &ce) || ce.Code != tt.def.Code {
			t.Errorf("%s: expected ConfigError for code %d, got %v", tt.name, tt.def.Code, err)
		}
	}
}

func TestValuesYAML(t *testing.T) {
	var def Def
	src := "code: 7\nlabel: Display\ntype: Vec2\nvalue: [0.5, 0.5]\nmin: [0, 0]\nmax: [1, 1]\n"
	if err := yaml.Unmarshal([]byte(src), &def); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if def.Type != Vec2 || len(def.Value) != 2 || def.Value[1] != 0.5 {
		t.Errorf("unexpected def: %+v", def)
	}

	src = "code: 1\nlabel: Time step (s)\ntype: float\nvalue: 0.001\nmin: -0.01\nmax: 0.01\nstep: 0.0001\n"
	def = Def{}
	if err := yaml.Unmarshal([]byte(src), &def); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if s := def.Spec(); s.Value != 0.001 || s.Step != 0.0001 {
		t.Errorf("unexpected spec: %+v", s)
	}

	out, err := yaml.Marshal(def)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var back Def
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("re-unmarshal failed: %v", err)
	}
	if back.Spec() != def.Spec() {
		t.Errorf("expected %+v, got %+v", def.Spec(), back.Spec())
	}

	if err := yaml.Unmarshal([]byte("value: {a: 1}\n"), &def); err == nil {
		t.Error("expected error for mapping value")
	}
}

func TestNames(t *testing.T) {
	if got := ScreamingSnake("useGPU"); got != "USE_G_P_U" {
		t.Errorf("expected USE_G_P_U, got %s", got)
	}
	if got := ScreamingSnake("minPhi1"); got != "MIN_PHI1" {
		t.Errorf("expected MIN_PHI1, got %s", got)
	}
	if got := Snake("pendulumDisplayWithInitialAngles"); got != "pendulum_display_with_initial_angles" {
		t.Errorf("unexpected snake: %s", got)
	}
	if got := ConstName("Mass 1 (kg)"); got != "MASS_1_KG" {
		t.Errorf("expected MASS_1_KG, got %s", got)
	}
}

type fakeStore struct {
	writes []Write
}

func (f *fakeStore) SetInt(c Code, v int)     { f.writes = append(f.writes, Write{Code: c, Kind: KindInt, Int: v}) }
func (f *fakeStore) SetFloat(c Code, v float64) {
	f.writes = append(f.writes, Write{Code: c, Kind: KindFloat, Float: v})
}
func (f *fakeStore) SetBool(c Code, v bool) { f.writes = append(f.writes, Write{Code: c, Kind: KindBool, Bool: v}) }
func (f *fakeStore) SetVec(c Code, n, i int, v float64) {
	f.writes = append(f.writes, Write{Code: c, Kind: KindVec, N: n, Index: i, Float: v})
}
func (f *fakeStore) SetIVec(c Code, n, i int, v int) {
	f.writes = append(f.writes, Write{Code: c, Kind: KindIVec, N: n, Index: i, Int: v})
}
func (f *fakeStore) SetString(c Code, i int, v string) {
	f.writes = append(f.writes, Write{Code: c, Kind: KindString, Index: i, Str: v})
}

func TestObservedForwards(t *testing.T) {
	inner := &fakeStore{}
	var seen []Write
	s := Observed{Store: inner, Fn: func(w Write) { seen = append(seen, w) }}

	s.SetVec(20, 3, 1, 3.5)
	s.SetString(7, 2, "hello")

	if len(inner.writes) != 2 || len(seen) != 2 {
		t.Fatalf("expected 2 writes each, got %d and %d", len(inner.writes), len(seen))
	}
	if got := inner.writes[0].String(); got != "set_vec_param(20, 3, 1, 3.5)" {
		t.Errorf("unexpected call text: %s", got)
	}
	if got := seen[1].String(); got != `set_string_param(7, 2, "hello")` {
		t.Errorf("unexpected call text: %s", got)
	}
}
