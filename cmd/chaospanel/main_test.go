package main

import (
	"testing"

	"github.com/san-kum/chaospanel/internal/param"
	"github.com/san-kum/chaospanel/internal/pendulum"
)

func TestParsePlotSpec(t *testing.T) {
	tests := []struct {
		in      string
		code    int
		index   int
		wantErr bool
	}{
		{"6", 6, 0, false},
		{"7:1", 7, 1, false},
		{"x", 0, 0, true},
		{"7:y", 0, 0, true},
	}
	for _, tt := range tests {
		code, index, err := parsePlotSpec(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePlotSpec(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && (int(code) != tt.code || index != tt.index) {
			t.Errorf("parsePlotSpec(%q) = %d, %d", tt.in, code, index)
		}
	}
}

func TestPlotCaption(t *testing.T) {
	custom := []param.Def{
		param.ScalarDef(6, "Damping", param.Float, param.Spec{Value: 0.1, Max: 1}),
		param.VectorDef(2, "Offset", param.Vec2, param.VecSpec{
			Value: []float64{0, 0}, Min: []float64{0, 0}, Max: []float64{1, 1},
		}),
	}
	tests := []struct {
		defs  []param.Def
		code  param.Code
		index int
		want  string
	}{
		{pendulum.Definitions(), pendulum.Gravity, 0, "gravity"},
		{pendulum.ExtendedDefinitions(), pendulum.DisplayAngles, 1, "pendulumDisplayWithInitialAngles[1]"},
		{custom, 6, 0, "Damping"},
		{custom, 2, 1, "Offset[1]"},
		{custom, 9, 0, "code 9"},
	}
	for _, tt := range tests {
		if got := plotCaption(tt.defs, tt.code, tt.index); got != tt.want {
			t.Errorf("plotCaption(%d, %d) = %q, want %q", tt.code, tt.index, got, tt.want)
		}
	}
}
