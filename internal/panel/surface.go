package panel

import (
	"fmt"

	"github.com/san-kum/chaospanel/internal/param"
)

// Surface is where widgets are drawn. Each call appends one element after
// the previous one; controls get exactly one input listener.
type Surface interface {
	Label(text string) Label
	Range(id string, a RangeAttrs, onInput func(raw string))
	Checkbox(id string, checked bool, onInput func(checked bool))
	TextEntry(id string, onInput func(raw string))
	Break()
}

// Label is a text element whose content a listener may rewrite.
type Label interface {
	SetText(text string)
	Text() string
}

// RangeAttrs are the attributes applied to a range control. Nothing else is
// copied onto the control.
type RangeAttrs struct {
	Min   float64
	Max   float64
	Step  float64
	Value float64
}

func rangeAttrs(s param.Spec) RangeAttrs {
	return RangeAttrs{Min: s.Min, Max: s.Max, Step: s.StepOrDefault(), Value: s.Value}
}

// SliderID addresses the range control of a scalar parameter.
func SliderID(code param.Code) string {
	return fmt.Sprintf("slider-%d", code)
}

// ComponentID addresses the range control of vector component i.
func ComponentID(code param.Code, i int) string {
	return fmt.Sprintf("slider-%d-%d", code, i)
}

func CheckboxID(code param.Code) string {
	return fmt.Sprintf("checkbox-%d", code)
}

// EntryID addresses text entry i of a string parameter. Page scripts rely
// on this format.
func EntryID(code param.Code, i int) string {
	return fmt.Sprintf("entry-box-%d-%d", code, i)
}
