package param

import (
	"fmt"
	"strconv"
)

// Store is the simulation's addressable parameter table. Writes are
// fire-and-forget: the panel never reads a result back.
type Store interface {
	SetInt(code Code, v int)
	SetFloat(code Code, v float64)
	SetBool(code Code, v bool)
	// SetVec writes component i of an n-component float vector.
	SetVec(code Code, n, i int, v float64)
	// SetIVec writes component i of an n-component integer vector.
	SetIVec(code Code, n, i int, v int)
	// SetString writes slot i of an indexed string parameter.
	SetString(code Code, i int, v string)
}

// Kind names the Store setter a Write goes through.
type Kind string

const (
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindBool   Kind = "bool"
	KindVec    Kind = "vec"
	KindIVec   Kind = "ivec"
	KindString Kind = "string"
)

// Write is one Store call captured as data.
type Write struct {
	Code  Code
	Kind  Kind
	N     int
	Index int
	Float float64
	Int   int
	Bool  bool
	Str   string
}

// Apply replays w against s.
func (w Write) Apply(s Store) {
	switch w.Kind {
	case KindInt:
		s.SetInt(w.Code, w.Int)
	case KindFloat:
		s.SetFloat(w.Code, w.Float)
	case KindBool:
		s.SetBool(w.Code, w.Bool)
	case KindVec:
		s.SetVec(w.Code, w.N, w.Index, w.Float)
	case KindIVec:
		s.SetIVec(w.Code, w.N, w.Index, w.Int)
	case KindString:
		s.SetString(w.Code, w.Index, w.Str)
	}
}

// Number returns the written value as a float; bools map to 0/1 and strings
// to 0.
func (w Write) Number() float64 {
	switch w.Kind {
	case KindInt, KindIVec:
		return float64(w.Int)
	case KindFloat, KindVec:
		return w.Float
	case KindBool:
		if w.Bool {
			return 1
		}
	}
	return 0
}

// ValueText renders the written value.
func (w Write) ValueText() string {
	switch w.Kind {
	case KindInt, KindIVec:
		return strconv.Itoa(w.Int)
	case KindFloat, KindVec:
		return FormatNumber(w.Float)
	case KindBool:
		return strconv.FormatBool(w.Bool)
	case KindString:
		return w.Str
	}
	return ""
}

// String renders w as the module call it stands for.
func (w Write) String() string {
	switch w.Kind {
	case KindVec, KindIVec:
		return fmt.Sprintf("set_%s_param(%d, %d, %d, %s)", w.Kind, w.Code, w.N, w.Index, w.ValueText())
	case KindString:
		return fmt.Sprintf("set_string_param(%d, %d, %q)", w.Code, w.Index, w.Str)
	}
	return fmt.Sprintf("set_%s_param(%d, %s)", w.Kind, w.Code, w.ValueText())
}

// Entry is one row of a store snapshot.
type Entry struct {
	Code  Code
	Name  string
	Type  Type
	Value string
}

// Observed forwards every call to Store and reports it to fn first.
type Observed struct {
	Store Store
	Fn    func(Write)
}

func (o Observed) emit(w Write) {
	if o.Fn != nil {
		o.Fn(w)
	}
	w.Apply(o.Store)
}

func (o Observed) SetInt(code Code, v int) { o.emit(Write{Code: code, Kind: KindInt, Int: v}) }

func (o Observed) SetFloat(code Code, v float64) {
	o.emit(Write{Code: code, Kind: KindFloat, Float: v})
}

func (o Observed) SetBool(code Code, v bool) { o.emit(Write{Code: code, Kind: KindBool, Bool: v}) }

func (o Observed) SetVec(code Code, n, i int, v float64) {
	o.emit(Write{Code: code, Kind: KindVec, N: n, Index: i, Float: v})
}

func (o Observed) SetIVec(code Code, n, i int, v int) {
	o.emit(Write{Code: code, Kind: KindIVec, N: n, Index: i, Int: v})
}

func (o Observed) SetString(code Code, i int, v string) {
	o.emit(Write{Code: code, Kind: KindString, Index: i, Str: v})
}
