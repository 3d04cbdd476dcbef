// Package panel turns parameter definitions into bound widgets.
//
// A [Panel] draws controls onto a [Surface] and registers one input listener
// per control. Every listener parses the raw control value per the declared
// [param.Type], refreshes the widget label and forwards a single write to a
// [param.Store].
//
// # Example
//
//	tree := panel.NewTree()
//	p := panel.New(store, tree)
//	if err := p.Assemble(defs); err != nil {
//		return err
//	}
//	tree.Input(panel.SliderID(0), "42") // store.SetInt(0, 42)
//
// # Thread Safety
//
// A Panel is NOT safe for concurrent use. Surfaces deliver input events one
// at a time and each listener runs to completion before the next starts.
package panel

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/san-kum/chaospanel/internal/logging"
	"github.com/san-kum/chaospanel/internal/param"
)

type Panel struct {
	store   param.Store
	surface Surface
	logger  *slog.Logger

	codes   map[param.Code]string
	vectors map[string]*VectorCache
}

type Option func(*Panel)

func WithLogger(l *slog.Logger) Option {
	return func(p *Panel) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithOnWrite reports every store write to fn before it reaches the store.
func WithOnWrite(fn func(param.Write)) Option {
	return func(p *Panel) {
		if fn != nil {
			p.store = param.Observed{Store: p.store, Fn: fn}
		}
	}
}

func New(store param.Store, surface Surface, opts ...Option) *Panel {
	p := &Panel{
		store:   store,
		surface: surface,
		logger:  logging.Discard(),
		codes:   make(map[param.Code]string),
		vectors: make(map[string]*VectorCache),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Assemble validates every definition, then adds them in order. Nothing is
// drawn when any definition is invalid.
func (p *Panel) Assemble(defs []param.Def) error {
	codes := make(map[param.Code]bool, len(defs))
	labels := make(map[string]bool)
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return err
		}
		if codes[d.Code] {
			return configErr(d.Code, d.Label, param.ErrDuplicateCode)
		}
		if err := p.free(d.Code, d.Label, d.Type); err != nil {
			return err
		}
		codes[d.Code] = true
		if d.Type.IsVector() {
			if labels[d.Label] {
				return configErr(d.Code, d.Label, param.ErrDuplicateLabel)
			}
			labels[d.Label] = true
		}
	}
	for _, d := range defs {
		if err := p.Add(d); err != nil {
			return err
		}
	}
	p.logger.Debug("panel assembled", "parameters", len(defs))
	return nil
}

// Add draws the widget for a single definition.
func (p *Panel) Add(d param.Def) error {
	switch {
	case d.Type.IsScalar():
		return p.Scalar(d.Code, d.Label, d.Type, d.Spec())
	case d.Type.IsVector():
		return p.Vector(d.Code, d.Label, d.Type, d.VecSpec())
	case d.Type == param.Bool:
		return p.Checkbox(d.Code, d.Label, d.Checked)
	case d.Type == param.String:
		return p.Entries(d.Code, d.Label, d.Count)
	}
	return configErr(d.Code, d.Label, fmt.Errorf("%w: %q", param.ErrUnknownType, string(d.Type)))
}

// Scalar draws a labelled range control for an int or float parameter. Each
// input event updates the label to "{label} = {value}" and writes the parsed
// value once. Values set outside [min, max] are forwarded as-is.
func (p *Panel) Scalar(code param.Code, label string, t param.Type, spec param.Spec) error {
	if !t.IsScalar() {
		return configErr(code, label, fmt.Errorf("%w: %s is not a scalar slider type", param.ErrUnknownType, t))
	}
	if err := param.ScalarDef(code, label, t, spec).Validate(); err != nil {
		return err
	}
	if err := p.claim(code, label, t); err != nil {
		return err
	}

	lbl := p.surface.Label(label + " = " + param.FormatNumber(spec.Value))
	p.surface.Break()
	p.surface.Range(SliderID(code), rangeAttrs(spec), func(raw string) {
		if t == param.Int {
			v, err := param.ParseInt(raw)
			if err != nil {
				p.dropInput(code, label, err)
				return
			}
			lbl.SetText(label + " = " + strconv.Itoa(v))
			p.store.SetInt(code, v)
			return
		}
		v, err := param.ParseFloat(raw)
		if err != nil {
			p.dropInput(code, label, err)
			return
		}
		lbl.SetText(label + " = " + param.FormatNumber(v))
		p.store.SetFloat(code, v)
	})
	p.surface.Break()
	return nil
}

// Checkbox draws a checkbox followed by a static label.
func (p *Panel) Checkbox(code param.Code, name string, checked bool) error {
	if err := p.claim(code, name, param.Bool); err != nil {
		return err
	}
	p.surface.Checkbox(CheckboxID(code), checked, func(checked bool) {
		p.logger.Debug("checkbox input", "code", int(code), "name", name, "checked", checked)
		p.store.SetBool(code, checked)
	})
	p.surface.Label(name)
	p.surface.Break()
	return nil
}

// Vector draws one range control per component under a shared label. Each
// component writes only its own index; the group's cache rebuilds the
// whole vector for the label.
func (p *Panel) Vector(code param.Code, label string, t param.Type, vs param.VecSpec) error {
	if err := param.VectorDef(code, label, t, vs).Validate(); err != nil {
		return err
	}
	if err := p.claim(code, label, t); err != nil {
		return err
	}

	n := t.Dim()
	cache := newVectorCache(label, vs.Value)
	p.vectors[label] = cache

	lbl := p.surface.Label(cache.Text())
	p.surface.Break()
	for i := 0; i < n; i++ {
		p.surface.Range(ComponentID(code, i), rangeAttrs(vs.Component(i)), func(raw string) {
			if t.IsInteger() {
				v, err := param.ParseInt(raw)
				if err != nil {
					p.dropInput(code, label, err)
					return
				}
				cache.Set(i, float64(v))
				lbl.SetText(cache.Text())
				p.store.SetIVec(code, n, i, v)
				return
			}
			v, err := param.ParseFloat(raw)
			if err != nil {
				p.dropInput(code, label, err)
				return
			}
			cache.Set(i, v)
			lbl.SetText(cache.Text())
			p.store.SetVec(code, n, i, v)
		})
		p.surface.Break()
	}
	return nil
}

// Entries draws count text entries labelled by index. Entry i writes raw
// text to slot i.
func (p *Panel) Entries(code param.Code, group string, count int) error {
	if err := param.EntriesDef(code, group, count).Validate(); err != nil {
		return err
	}
	if err := p.claim(code, group, param.String); err != nil {
		return err
	}

	p.surface.Label(group)
	p.surface.Break()
	for i := 0; i < count; i++ {
		p.surface.Label(strconv.Itoa(i))
		p.surface.Break()
		p.surface.TextEntry(EntryID(code, i), func(raw string) {
			p.store.SetString(code, i, raw)
		})
		p.surface.Break()
	}
	return nil
}

// VectorCache returns the cache of the vector group drawn under label.
func (p *Panel) VectorCache(label string) (*VectorCache, bool) {
	c, ok := p.vectors[label]
	return c, ok
}

// Len is the number of parameters drawn so far.
func (p *Panel) Len() int {
	return len(p.codes)
}

func (p *Panel) free(code param.Code, label string, t param.Type) error {
	if _, taken := p.codes[code]; taken {
		return configErr(code, label, param.ErrDuplicateCode)
	}
	if t.IsVector() {
		if _, taken := p.vectors[label]; taken {
			return configErr(code, label, param.ErrDuplicateLabel)
		}
	}
	return nil
}

func (p *Panel) claim(code param.Code, label string, t param.Type) error {
	if err := p.free(code, label, t); err != nil {
		return err
	}
	p.codes[code] = label
	return nil
}

func (p *Panel) dropInput(code param.Code, label string, err error) {
	p.logger.Warn("input dropped", "code", int(code), "label", label, "err", err)
}

func configErr(code param.Code, label string, err error) error {
	return &param.ConfigError{Code: code, Label: label, Wrapped: err}
}
