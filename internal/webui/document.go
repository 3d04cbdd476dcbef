//go:build js && wasm

// Package webui renders the control panel into a browser page and forwards
// writes to the emscripten module.
package webui

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/san-kum/chaospanel/internal/panel"
	"github.com/san-kum/chaospanel/internal/param"
)

const (
	labelStyle = "color:white; font-family:Arial, Helvetica, sans-serif"
	inputStyle = "width: 95%;"
)

var ErrNoContainer = errors.New("webui: container element not found")

// Document is a panel.Surface that appends elements to a container in the
// page. Listener callbacks stay alive until Release.
type Document struct {
	doc       js.Value
	container js.Value
	funcs     []js.Func
}

func NewDocument(containerID string) (*Document, error) {
	doc := js.Global().Get("document")
	c := doc.Call("getElementById", containerID)
	if c.IsNull() || c.IsUndefined() {
		return nil, fmt.Errorf("%w: %q", ErrNoContainer, containerID)
	}
	return &Document{doc: doc, container: c}, nil
}

func (d *Document) create(tag string) js.Value {
	return d.doc.Call("createElement", tag)
}

func (d *Document) append(el js.Value) {
	d.container.Call("appendChild", el)
}

func (d *Document) listen(el js.Value, fn func(target js.Value)) {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 {
			fn(args[0].Get("target"))
		}
		return nil
	})
	d.funcs = append(d.funcs, cb)
	el.Call("addEventListener", "input", cb)
}

type label struct{ el js.Value }

func (l label) SetText(text string) { l.el.Set("textContent", text) }
func (l label) Text() string        { return l.el.Get("textContent").String() }

func (d *Document) newLabel(text string) label {
	el := d.create("label")
	el.Set("style", labelStyle)
	el.Set("textContent", text)
	return label{el: el}
}

func (d *Document) Label(text string) panel.Label {
	l := d.newLabel(text)
	d.append(l.el)
	return l
}

func (d *Document) Range(id string, a panel.RangeAttrs, onInput func(raw string)) {
	el := d.create("input")
	el.Set("type", "range")
	el.Set("id", id)
	el.Set("style", inputStyle)
	el.Set("min", param.FormatNumber(a.Min))
	el.Set("max", param.FormatNumber(a.Max))
	el.Set("step", param.FormatNumber(a.Step))
	el.Set("value", param.FormatNumber(a.Value))
	d.append(el)
	d.listen(el, func(target js.Value) {
		onInput(target.Get("value").String())
	})
}

// Checkbox appends the box followed by its label.
func (d *Document) Checkbox(id string, checked bool, onInput func(checked bool)) {
	el := d.create("input")
	el.Set("type", "checkbox")
	el.Set("id", id)
	el.Set("checked", checked)
	d.append(el)
	d.listen(el, func(target js.Value) {
		onInput(target.Get("checked").Bool())
	})
}

func (d *Document) TextEntry(id string, onInput func(raw string)) {
	el := d.create("input")
	el.Set("type", "text")
	el.Set("id", id)
	el.Set("value", "")
	el.Set("style", inputStyle)
	d.append(el)
	d.listen(el, func(target js.Value) {
		onInput(target.Get("value").String())
	})
}

func (d *Document) Break() {
	d.append(d.create("br"))
}

// Release frees the Go callbacks held by the page.
func (d *Document) Release() {
	for _, f := range d.funcs {
		f.Release()
	}
	d.funcs = nil
}

// ReleaseOn calls Release the first time target fires event, typically
// window "pagehide".
func (d *Document) ReleaseOn(target js.Value, event string) {
	var cb js.Func
	cb = js.FuncOf(func(_ js.Value, _ []js.Value) any {
		target.Call("removeEventListener", event, cb)
		d.Release()
		return nil
	})
	d.funcs = append(d.funcs, cb)
	target.Call("addEventListener", event, cb)
}
