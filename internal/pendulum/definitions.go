// Package pendulum declares the control panel of the double pendulum chaos
// map and provides an in-process parameter table mirroring the
// simulation's SimParams.
package pendulum

import "github.com/san-kum/chaospanel/internal/param"

// Parameter codes, in the simulation's enumeration order.
const (
	StepsPerFrame param.Code = iota
	Dt
	Mass1
	Length1
	Mass2
	Length2
	Gravity
	DisplayAngles
	MinPhi1
	MaxPhi1
	MinPhi2
	MaxPhi2
	GridWidth
	GridHeight
	SubGridWidth
	SubGridHeight
	UseGPU
)

const (
	DefaultStepsPerFrame = 10
	DefaultDt            = 0.001
	DefaultMass          = 1.0
	DefaultLength        = 1.0
	DefaultGravity       = 9.81
	DefaultGridSize      = 128
)

// Definitions is the panel as shipped with the simulation page.
func Definitions() []param.Def {
	return withKeys([]param.Def{
		param.ScalarDef(StepsPerFrame, "Steps/frame", param.Int, param.Spec{Value: DefaultStepsPerFrame, Min: 0, Max: 100}),
		param.ScalarDef(Dt, "Time step (s)", param.Float, param.Spec{Value: DefaultDt, Min: -0.01, Max: 0.01, Step: 0.0001}),
		param.ScalarDef(Mass1, "Mass 1 (kg)", param.Float, param.Spec{Value: DefaultMass, Min: 0.1, Max: 10.0, Step: 0.01}),
		param.ScalarDef(Length1, "Length 1 (m)", param.Float, param.Spec{Value: DefaultLength, Min: 0.1, Max: 2.0, Step: 0.01}),
		param.ScalarDef(Mass2, "Mass 2 (kg)", param.Float, param.Spec{Value: DefaultMass, Min: 0.1, Max: 10.0, Step: 0.01}),
		param.ScalarDef(Length2, "Length 2 (m)", param.Float, param.Spec{Value: DefaultLength, Min: 0.1, Max: 2.0, Step: 0.01}),
		param.ScalarDef(Gravity, "Acceleration due to gravity (m/s²)", param.Float, param.Spec{Value: DefaultGravity, Min: 0.0, Max: 20.0, Step: 0.01}),
		param.ScalarDef(MinPhi1, "Min. initial angle 1 (# of π radians)", param.Float, param.Spec{Value: -1.0, Min: -1.0, Max: 1.0, Step: 0.01}),
		param.ScalarDef(MaxPhi1, "Max. initial angle 1 (# of π radians)", param.Float, param.Spec{Value: 1.0, Min: -1.0, Max: 1.0, Step: 0.01}),
		param.ScalarDef(MinPhi2, "Min. initial angle 2 (# of π radians)", param.Float, param.Spec{Value: -1.0, Min: -1.0, Max: 1.0, Step: 0.01}),
		param.ScalarDef(MaxPhi2, "Max. initial angle 2 (# of π radians)", param.Float, param.Spec{Value: 1.0, Min: -1.0, Max: 1.0, Step: 0.01}),
		param.ScalarDef(GridWidth, "Angle 1 discretization size", param.Int, param.Spec{Value: DefaultGridSize, Min: 32, Max: 2048}),
		param.ScalarDef(GridHeight, "Angle 2 discretization size", param.Int, param.Spec{Value: DefaultGridSize, Min: 32, Max: 2048}),
		param.ScalarDef(SubGridWidth, "Sub sample width", param.Int, param.Spec{Value: 1, Min: 1, Max: 1024}),
		param.ScalarDef(SubGridHeight, "Sub sample height", param.Int, param.Spec{Value: 1, Min: 1, Max: 1024}),
	})
}

// ExtendedDefinitions adds the display-angle vector and the GPU switch.
// The vector is inserted in code order after gravity.
func ExtendedDefinitions() []param.Def {
	base := Definitions()
	display := param.VectorDef(DisplayAngles, "Pendulum display with initial angles", param.Vec2, param.VecSpec{
		Value: []float64{0.5, 0.5},
		Min:   []float64{0, 0},
		Max:   []float64{1, 1},
		Step:  []float64{0.01, 0.01},
	})

	out := make([]param.Def, 0, len(base)+2)
	for _, d := range base {
		out = append(out, d)
		if d.Code == Gravity {
			out = append(out, display)
		}
	}
	return withKeys(append(out, param.BoolDef(UseGPU, "Use GPU", true)))
}

func withKeys(defs []param.Def) []param.Def {
	for i := range defs {
		defs[i].Key = names[defs[i].Code]
	}
	return defs
}
