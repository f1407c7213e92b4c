package sweep

import (
	"github.com/rxtech-lab/argo-macdrsi/internal/strategy"
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// RangeValues are the values one parameter takes in a sweep. In YAML they are
// either a list ([8, 13, 21]) or a half-open range ({start: 6, stop: 11, step: 2}).
type RangeValues []int

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *RangeValues) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var values []int
		if err := node.Decode(&values); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGrid, "range values must be integers", err)
		}

		*v = values

		return nil
	case yaml.MappingNode:
		var r struct {
			Start *int `yaml:"start"`
			Stop  *int `yaml:"stop"`
			Step  *int `yaml:"step"`
		}

		if err := node.Decode(&r); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGrid, "invalid range", err)
		}

		if r.Start == nil || r.Stop == nil {
			return errors.New(errors.ErrCodeInvalidGrid, "a range needs start and stop")
		}

		step := 1
		if r.Step != nil {
			step = *r.Step
		}

		values, err := Range(*r.Start, *r.Stop, step)
		if err != nil {
			return err
		}

		*v = values

		return nil
	default:
		return errors.Newf(errors.ErrCodeInvalidGrid, "range values must be a list or a start/stop/step mapping, line %d", node.Line)
	}
}

// Range returns start, start+step, ... up to but excluding stop.
func Range(start, stop, step int) ([]int, error) {
	if step <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidGrid, "range step must be positive, got %d", step)
	}

	if stop <= start {
		return nil, errors.Newf(errors.ErrCodeInvalidGrid, "range stop %d must be greater than start %d", stop, start)
	}

	return lo.RangeWithSteps(start, stop, step), nil
}

// ParameterRange is one swept parameter and its values.
type ParameterRange struct {
	Name   string      `yaml:"name" json:"name" jsonschema:"title=Name,enum=macd_fast,enum=macd_slow,enum=macd_signal,enum=rsi"`
	Values RangeValues `yaml:"values" json:"values" jsonschema:"title=Values,description=List of values or a start/stop/step range (stop exclusive)"`
}

// DefaultRanges is the sweep used when the config does not name one.
func DefaultRanges() []ParameterRange {
	return []ParameterRange{
		{Name: strategy.ParamMACDFast, Values: RangeValues{8, 13, 21}},
		{Name: strategy.ParamMACDSlow, Values: RangeValues{13, 21, 34}},
		{Name: strategy.ParamMACDSignal, Values: lo.RangeWithSteps(6, 11, 2)},
		{Name: strategy.ParamRSI, Values: RangeValues{8, 13, 21, 34}},
	}
}

// ParameterGrid is the Cartesian product of ordered parameter ranges.
type ParameterGrid struct {
	ranges []ParameterRange
}

// NewParameterGrid validates ranges and builds a grid. Every name must be a
// strategy parameter and appear once, and every range needs at least one value.
func NewParameterGrid(ranges []ParameterRange) (*ParameterGrid, error) {
	if len(ranges) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "a sweep needs at least one parameter range")
	}

	known := strategy.DefaultConfig().Parameters().Names()
	seen := make(map[string]bool, len(ranges))

	for _, r := range ranges {
		if !lo.Contains(known, r.Name) {
			return nil, errors.Newf(errors.ErrCodeInvalidGrid, "unknown parameter %q, expected one of %v", r.Name, known)
		}

		if seen[r.Name] {
			return nil, errors.Newf(errors.ErrCodeInvalidGrid, "parameter %q is swept twice", r.Name)
		}

		seen[r.Name] = true

		if len(r.Values) == 0 {
			return nil, errors.Newf(errors.ErrCodeInvalidGrid, "parameter %q has no values", r.Name)
		}
	}

	return &ParameterGrid{ranges: ranges}, nil
}

// Names returns the swept parameter names in declaration order.
func (g *ParameterGrid) Names() []string {
	return lo.Map(g.ranges, func(r ParameterRange, _ int) string {
		return r.Name
	})
}

// Size is the number of combinations.
func (g *ParameterGrid) Size() int {
	return lo.Reduce(g.ranges, func(size int, r ParameterRange, _ int) int {
		return size * len(r.Values)
	}, 1)
}

// Combinations enumerates every parameter set. The last range varies fastest.
func (g *ParameterGrid) Combinations() []types.ParameterSet {
	sets := []types.ParameterSet{types.NewParameterSet()}

	for _, r := range g.ranges {
		sets = lo.FlatMap(sets, func(set types.ParameterSet, _ int) []types.ParameterSet {
			return lo.Map(r.Values, func(value int, _ int) types.ParameterSet {
				return set.With(r.Name, value)
			})
		})
	}

	return sets
}
