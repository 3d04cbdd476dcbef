package panel

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/chaospanel/internal/param"
)

var (
	// ErrNoElement indicates an id that names no control on the surface.
	ErrNoElement = errors.New("panel: no such element")

	// ErrWrongKind indicates an event the addressed control cannot receive.
	ErrWrongKind = errors.New("panel: event not supported by element")
)

type Kind int

const (
	KindLabel Kind = iota
	KindBreak
	KindRange
	KindCheckbox
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindLabel:
		return "label"
	case KindBreak:
		return "br"
	case KindRange:
		return "range"
	case KindCheckbox:
		return "checkbox"
	case KindText:
		return "text"
	}
	return "unknown"
}

// Element is one node of a Tree. Value holds the raw text of range and
// text controls.
type Element struct {
	Kind    Kind
	ID      string
	Attrs   RangeAttrs
	Value   string
	Checked bool

	text    string
	onInput func(string)
	onCheck func(bool)
}

func (e *Element) SetText(text string) { e.text = text }
func (e *Element) Text() string        { return e.text }

// Focusable reports whether the element accepts input.
func (e *Element) Focusable() bool {
	return e.Kind == KindRange || e.Kind == KindCheckbox || e.Kind == KindText
}

// Tree is an in-memory Surface. It keeps elements in insertion order and
// simulates input events against them.
type Tree struct {
	elems []*Element
	byID  map[string]*Element
}

func NewTree() *Tree {
	return &Tree{byID: make(map[string]*Element)}
}

func (t *Tree) add(e *Element) *Element {
	t.elems = append(t.elems, e)
	if e.ID != "" {
		t.byID[e.ID] = e
	}
	return e
}

func (t *Tree) Label(text string) Label {
	return t.add(&Element{Kind: KindLabel, text: text})
}

func (t *Tree) Range(id string, a RangeAttrs, onInput func(raw string)) {
	t.add(&Element{Kind: KindRange, ID: id, Attrs: a, Value: param.FormatNumber(a.Value), onInput: onInput})
}

func (t *Tree) Checkbox(id string, checked bool, onInput func(checked bool)) {
	t.add(&Element{Kind: KindCheckbox, ID: id, Checked: checked, onCheck: onInput})
}

func (t *Tree) TextEntry(id string, onInput func(raw string)) {
	t.add(&Element{Kind: KindText, ID: id, onInput: onInput})
}

func (t *Tree) Break() {
	t.add(&Element{Kind: KindBreak})
}

// Elements returns every element in insertion order.
func (t *Tree) Elements() []*Element {
	out := make([]*Element, len(t.elems))
	copy(out, t.elems)
	return out
}

// Focusable returns the controls that accept input, in order.
func (t *Tree) Focusable() []*Element {
	var out []*Element
	for _, e := range t.elems {
		if e.Focusable() {
			out = append(out, e)
		}
	}
	return out
}

// Labels returns the text of every label in order.
func (t *Tree) Labels() []string {
	var out []string
	for _, e := range t.elems {
		if e.Kind == KindLabel {
			out = append(out, e.text)
		}
	}
	return out
}

func (t *Tree) Element(id string) (*Element, error) {
	e, ok := t.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoElement, id)
	}
	return e, nil
}

// LabelFor returns the nearest label drawn before the element with id.
func (t *Tree) LabelFor(id string) (string, error) {
	target, err := t.Element(id)
	if err != nil {
		return "", err
	}
	last := ""
	for _, e := range t.elems {
		if e == target {
			return last, nil
		}
		if e.Kind == KindLabel {
			last = e.text
		}
	}
	return last, nil
}

// Input sets the raw value of a range or text control and fires its
// listener. Range values are stored as given, without clamping.
func (t *Tree) Input(id, raw string) error {
	e, err := t.Element(id)
	if err != nil {
		return err
	}
	if e.Kind != KindRange && e.Kind != KindText {
		return fmt.Errorf("%w: input on %s %q", ErrWrongKind, e.Kind, id)
	}
	e.Value = raw
	if e.onInput != nil {
		e.onInput(raw)
	}
	return nil
}

// SetChecked sets a checkbox and fires its listener.
func (t *Tree) SetChecked(id string, checked bool) error {
	e, err := t.Element(id)
	if err != nil {
		return err
	}
	if e.Kind != KindCheckbox {
		return fmt.Errorf("%w: check on %s %q", ErrWrongKind, e.Kind, id)
	}
	e.Checked = checked
	if e.onCheck != nil {
		e.onCheck(checked)
	}
	return nil
}

// Toggle flips a checkbox and fires its listener.
func (t *Tree) Toggle(id string) error {
	e, err := t.Element(id)
	if err != nil {
		return err
	}
	return t.SetChecked(id, !e.Checked)
}

// Nudge moves a range control by steps increments the way a native slider
// does: the result is clamped to [min, max] and snapped to the step grid.
// No event fires when the value does not change.
func (t *Tree) Nudge(id string, steps int) error {
	e, err := t.Element(id)
	if err != nil {
		return err
	}
	if e.Kind != KindRange {
		return fmt.Errorf("%w: nudge on %s %q", ErrWrongKind, e.Kind, id)
	}
	cur, perr := strconv.ParseFloat(strings.TrimSpace(e.Value), 64)
	if perr != nil {
		cur = e.Attrs.Value
	}
	raw := SnapRange(e.Attrs, cur+float64(steps)*stepOf(e.Attrs))
	if raw == e.Value {
		return nil
	}
	return t.Input(id, raw)
}

func stepOf(a RangeAttrs) float64 {
	if a.Step <= 0 {
		return param.DefaultStep
	}
	return a.Step
}

// SnapRange clamps v to the range and rounds it to the nearest step above
// min, returning the raw text a native range control would report.
func SnapRange(a RangeAttrs, v float64) string {
	step := stepOf(a)
	if a.Max < a.Min {
		a.Max = a.Min
	}
	v = math.Max(a.Min, math.Min(a.Max, v))
	n := math.Round((v - a.Min) / step)
	v = a.Min + n*step
	if v > a.Max {
		v -= step
	}
	dec := decimals(step)
	if d := decimals(a.Min); d > dec {
		dec = d
	}
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', dec, 64), 64)
	return param.FormatNumber(rounded)
}

func decimals(v float64) int {
	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
