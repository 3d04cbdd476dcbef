package pendulum

import (
	"sort"
	"strconv"
	"sync"

	"github.com/san-kum/chaospanel/internal/param"
)

// Params is the simulation's parameter table. Writes for an unknown code,
// or through a setter that does not match the parameter's kind, are
// ignored.
type Params struct {
	mu sync.Mutex

	StepsPerFrame int
	Dt            float64
	Mass1         float64
	Length1       float64
	Mass2         float64
	Length2       float64
	Gravity       float64
	DisplayAngles [2]float64
	MinPhi1       float64
	MaxPhi1       float64
	MinPhi2       float64
	MaxPhi2       float64
	GridWidth     int
	GridHeight    int
	SubGridWidth  int
	SubGridHeight int
	UseGPU        bool
}

func NewParams() *Params {
	return &Params{
		StepsPerFrame: DefaultStepsPerFrame,
		Dt:            DefaultDt,
		Mass1:         DefaultMass,
		Length1:       DefaultLength,
		Mass2:         DefaultMass,
		Length2:       DefaultLength,
		Gravity:       DefaultGravity,
		DisplayAngles: [2]float64{0.5, 0.5},
		MinPhi1:       -1,
		MaxPhi1:       1,
		MinPhi2:       -1,
		MaxPhi2:       1,
		GridWidth:     DefaultGridSize,
		GridHeight:    DefaultGridSize,
		SubGridWidth:  1,
		SubGridHeight: 1,
		UseGPU:        true,
	}
}

var names = map[param.Code]string{
	StepsPerFrame: "stepsPerFrame",
	Dt:            "dt",
	Mass1:         "mass1",
	Length1:       "length1",
	Mass2:         "mass2",
	Length2:       "length2",
	Gravity:       "gravity",
	DisplayAngles: "pendulumDisplayWithInitialAngles",
	MinPhi1:       "minPhi1",
	MaxPhi1:       "maxPhi1",
	MinPhi2:       "minPhi2",
	MaxPhi2:       "maxPhi2",
	GridWidth:     "gridWidth",
	GridHeight:    "gridHeight",
	SubGridWidth:  "subGridWidth",
	SubGridHeight: "subGridHeight",
	UseGPU:        "useGPU",
}

func (p *Params) intField(code param.Code) *int {
	switch code {
	case StepsPerFrame:
		return &p.StepsPerFrame
	case GridWidth:
		return &p.GridWidth
	case GridHeight:
		return &p.GridHeight
	case SubGridWidth:
		return &p.SubGridWidth
	case SubGridHeight:
		return &p.SubGridHeight
	}
	return nil
}

func (p *Params) floatField(code param.Code) *float64 {
	switch code {
	case Dt:
		return &p.Dt
	case Mass1:
		return &p.Mass1
	case Length1:
		return &p.Length1
	case Mass2:
		return &p.Mass2
	case Length2:
		return &p.Length2
	case Gravity:
		return &p.Gravity
	case MinPhi1:
		return &p.MinPhi1
	case MaxPhi1:
		return &p.MaxPhi1
	case MinPhi2:
		return &p.MinPhi2
	case MaxPhi2:
		return &p.MaxPhi2
	}
	return nil
}

func (p *Params) SetInt(code param.Code, v int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if f := p.intField(code); f != nil {
		*f = v
	}
}

func (p *Params) SetFloat(code param.Code, v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if f := p.floatField(code); f != nil {
		*f = v
	}
}

func (p *Params) SetBool(code param.Code, v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if code == UseGPU {
		p.UseGPU = v
	}
}

func (p *Params) SetVec(code param.Code, n, i int, v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if code == DisplayAngles && n == len(p.DisplayAngles) && i >= 0 && i < n {
		p.DisplayAngles[i] = v
	}
}

// SetIVec is a no-op: the pendulum has no integer vectors.
func (p *Params) SetIVec(code param.Code, n, i int, v int) {}

// SetString is a no-op: the pendulum has no string parameters.
func (p *Params) SetString(code param.Code, i int, v string) {}

// Get renders the current value of code.
func (p *Params) Get(code param.Code) (param.Entry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.entry(code)
}

func (p *Params) entry(code param.Code) (param.Entry, bool) {
	name, ok := names[code]
	if !ok {
		return param.Entry{}, false
	}
	e := param.Entry{Code: code, Name: name}
	switch {
	case p.intField(code) != nil:
		e.Type, e.Value = param.Int, strconv.Itoa(*p.intField(code))
	case p.floatField(code) != nil:
		e.Type, e.Value = param.Float, param.FormatNumber(*p.floatField(code))
	case code == DisplayAngles:
		e.Type, e.Value = param.Vec2, "("+param.FormatVector(p.DisplayAngles[:])+")"
	case code == UseGPU:
		e.Type, e.Value = param.Bool, strconv.FormatBool(p.UseGPU)
	}
	return e, true
}

// Snapshot lists every parameter ordered by code.
func (p *Params) Snapshot() []param.Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]param.Entry, 0, len(names))
	for code := range names {
		e, _ := p.entry(code)
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
