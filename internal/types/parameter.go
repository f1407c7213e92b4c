package types

import (
	"fmt"
	"strings"
)

// Parameter is one named strategy parameter.
type Parameter struct {
	Name  string `yaml:"name" json:"name"`
	Value int    `yaml:"value" json:"value"`
}

// ParameterSet is an ordered name to value mapping. The order is the order in
// which the sweep declares its ranges and becomes the column order of the result table.
type ParameterSet []Parameter

// NewParameterSet builds a ParameterSet from the given parameters, keeping their order.
func NewParameterSet(params ...Parameter) ParameterSet {
	set := make(ParameterSet, 0, len(params))

	for _, p := range params {
		set = set.With(p.Name, p.Value)
	}

	return set
}

// Get returns the value of the named parameter.
func (p ParameterSet) Get(name string) (int, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}

	return 0, false
}

// GetOrDefault returns the value of the named parameter or fallback when it is not set.
func (p ParameterSet) GetOrDefault(name string, fallback int) int {
	if v, ok := p.Get(name); ok {
		return v
	}

	return fallback
}

// With returns a copy of the set with name set to value. A new name is appended.
func (p ParameterSet) With(name string, value int) ParameterSet {
	out := make(ParameterSet, len(p), len(p)+1)
	copy(out, p)

	for i := range out {
		if out[i].Name == name {
			out[i].Value = value

			return out
		}
	}

	return append(out, Parameter{Name: name, Value: value})
}

// Names returns the parameter names in order.
func (p ParameterSet) Names() []string {
	names := make([]string, len(p))
	for i, param := range p {
		names[i] = param.Name
	}

	return names
}

// Map returns the parameters as a plain map.
func (p ParameterSet) Map() map[string]int {
	m := make(map[string]int, len(p))
	for _, param := range p {
		m[param.Name] = param.Value
	}

	return m
}

func (p ParameterSet) String() string {
	parts := make([]string, len(p))
	for i, param := range p {
		parts[i] = fmt.Sprintf("%s=%d", param.Name, param.Value)
	}

	return strings.Join(parts, " ")
}
