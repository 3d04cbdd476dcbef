package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/chaospanel/internal/param"
	"gopkg.in/yaml.v3"
)

// stringListType is the generator's tag for an indexed string parameter.
const stringListType = "std::vector<std::string>"

var ErrParameterFile = errors.New("config: malformed parameter file")

type fileParameter struct {
	Type  string        `yaml:"type"`
	Value yaml.Node     `yaml:"value"`
	Min   *param.Values `yaml:"min"`
	Max   *param.Values `yaml:"max"`
	Step  *param.Values `yaml:"step"`
	Name  string        `yaml:"name"`
}

// LoadParameterFile reads a simulation parameters.json.
func LoadParameterFile(path string) ([]param.Def, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseParameterFile(data)
}

// ParseParameterFile converts a parameters.json document, an ordered object
// of camelCase keys, into definitions. Codes follow declaration order. An
// entry gets a widget when it is bool, a string list, or has both min and
// max; entries without a widget still take a code.
func ParseParameterFile(data []byte) ([]param.Def, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be an object", ErrParameterFile)
	}
	root := doc.Content[0]

	var defs []param.Def
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		code := param.Code(i / 2)

		var fp fileParameter
		if err := root.Content[i+1].Decode(&fp); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrParameterFile, key, err)
		}
		d, ok, err := fp.def(code, key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		if ok {
			defs = append(defs, d)
		}
	}
	return defs, nil
}

func (fp fileParameter) def(code param.Code, key string) (param.Def, bool, error) {
	label := fp.Name
	if label == "" {
		label = key
	}

	if fp.Type == stringListType {
		var list string
		if err := fp.Value.Decode(&list); err != nil {
			return param.Def{}, false, fmt.Errorf("%w: string list value: %v", ErrParameterFile, err)
		}
		items := strings.Split(strings.Trim(list, "{}"), ",")
		d := param.EntriesDef(code, label, len(items))
		d.Key = key
		return d, true, nil
	}

	t, err := param.ParseType(fp.Type)
	if err != nil {
		// other C++ types have no widget
		return param.Def{}, false, nil
	}

	if t == param.Bool {
		var checked bool
		if err := fp.Value.Decode(&checked); err != nil {
			return param.Def{}, false, fmt.Errorf("%w: bool value: %v", ErrParameterFile, err)
		}
		d := param.BoolDef(code, label, checked)
		d.Key = key
		return d, true, nil
	}

	if fp.Min == nil || fp.Max == nil {
		return param.Def{}, false, nil
	}
	var value param.Values
	if err := fp.Value.Decode(&value); err != nil {
		return param.Def{}, false, fmt.Errorf("%w: value: %v", ErrParameterFile, err)
	}
	d := param.Def{Code: code, Key: key, Label: label, Type: t, Value: value, Min: *fp.Min, Max: *fp.Max}
	if fp.Step != nil {
		d.Step = *fp.Step
	}
	return d, true, nil
}
