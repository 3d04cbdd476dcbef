package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/chaospanel/internal/param"
	"github.com/san-kum/chaospanel/internal/pendulum"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

// Preset overrides the initial value of some parameters.
type Preset struct {
	Summary string
	Values  map[param.Code]float64
}

var Presets = map[string]Preset{
	"chaos": {
		Summary: "full angle ranges on a 256 grid",
		Values: map[param.Code]float64{
			pendulum.MinPhi1: -1, pendulum.MaxPhi1: 1,
			pendulum.MinPhi2: -1, pendulum.MaxPhi2: 1,
			pendulum.GridWidth: 256, pendulum.GridHeight: 256,
		},
	},
	"hires": {
		Summary: "1024 grid with 2x2 sub sampling",
		Values: map[param.Code]float64{
			pendulum.GridWidth: 1024, pendulum.GridHeight: 1024,
			pendulum.SubGridWidth: 2, pendulum.SubGridHeight: 2,
		},
	},
	"gentle": {
		Summary: "small initial angles, fine time step",
		Values: map[param.Code]float64{
			pendulum.MinPhi1: -0.25, pendulum.MaxPhi1: 0.25,
			pendulum.MinPhi2: -0.25, pendulum.MaxPhi2: 0.25,
			pendulum.Dt: 0.0005,
		},
	},
	"moon": {
		Summary: "lunar gravity",
		Values: map[param.Code]float64{
			pendulum.Gravity: 1.62,
		},
	},
}

func GetPreset(name string) (Preset, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset returns a copy of defs with the preset's initial values. A
// value outside a scalar's bounds is an error; codes not in defs are
// skipped.
func ApplyPreset(defs []param.Def, name string) ([]param.Def, error) {
	preset, ok := GetPreset(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	out := make([]param.Def, len(defs))
	copy(out, defs)
	for i, d := range out {
		v, ok := preset.Values[d.Code]
		if !ok {
			continue
		}
		switch {
		case d.Type.IsScalar():
			s := d.Spec()
			if v < s.Min || v > s.Max {
				return nil, &param.ConfigError{Code: d.Code, Label: d.Label,
					Wrapped: fmt.Errorf("%w: preset value %s outside [%s, %s]", param.ErrBounds,
						param.FormatNumber(v), param.FormatNumber(s.Min), param.FormatNumber(s.Max))}
			}
			out[i].Value = param.Values{v}
		case d.Type == param.Bool:
			out[i].Checked = v != 0
		}
	}
	return out, nil
}
