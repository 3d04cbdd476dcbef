// Package replay drives a headless panel from a scripted list of input
// events.
package replay

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/chaospanel/internal/panel"
	"gopkg.in/yaml.v3"
)

var ErrNoAction = errors.New("replay: event has no action")

// Event targets one control by id. Exactly one action applies, checked in
// the order input, checked, toggle, nudge.
type Event struct {
	ID      string  `yaml:"id"`
	Input   *string `yaml:"input,omitempty"`
	Checked *bool   `yaml:"checked,omitempty"`
	Toggle  bool    `yaml:"toggle,omitempty"`
	Nudge   int     `yaml:"nudge,omitempty"`
}

type Script struct {
	Events []Event `yaml:"events"`
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Run applies the events in order and stops at the first failure.
func Run(tree *panel.Tree, s *Script) error {
	for i, ev := range s.Events {
		if err := apply(tree, ev); err != nil {
			return fmt.Errorf("event %d (%s): %w", i, ev.ID, err)
		}
	}
	return nil
}

func apply(tree *panel.Tree, ev Event) error {
	switch {
	case ev.Input != nil:
		return tree.Input(ev.ID, *ev.Input)
	case ev.Checked != nil:
		return tree.SetChecked(ev.ID, *ev.Checked)
	case ev.Toggle:
		return tree.Toggle(ev.ID)
	case ev.Nudge != 0:
		return tree.Nudge(ev.ID, ev.Nudge)
	}
	return ErrNoAction
}
