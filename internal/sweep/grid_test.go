package sweep

import (
	"testing"

	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type GridTestSuite struct {
	suite.Suite
}

func TestGridSuite(t *testing.T) {
	suite.Run(t, new(GridTestSuite))
}

func (suite *GridTestSuite) TestCombinationsOrder() {
	grid, err := NewParameterGrid([]ParameterRange{
		{Name: "macd_fast", Values: RangeValues{8, 13}},
		{Name: "macd_slow", Values: RangeValues{21, 34, 55}},
	})
	suite.Require().NoError(err)

	combinations := grid.Combinations()
	suite.Equal(6, grid.Size())
	suite.Require().Len(combinations, 6)

	expected := [][2]int{{8, 21}, {8, 34}, {8, 55}, {13, 21}, {13, 34}, {13, 55}}
	for i, set := range combinations {
		suite.Equal([]string{"macd_fast", "macd_slow"}, set.Names())

		fast, _ := set.Get("macd_fast")
		slow, _ := set.Get("macd_slow")
		suite.Equal(expected[i], [2]int{fast, slow})
	}
}

func (suite *GridTestSuite) TestDefaultRanges() {
	grid, err := NewParameterGrid(DefaultRanges())
	suite.Require().NoError(err)

	suite.Equal([]string{"macd_fast", "macd_slow", "macd_signal", "rsi"}, grid.Names())
	suite.Equal(3*3*3*4, grid.Size())
	suite.Len(grid.Combinations(), grid.Size())
	suite.Equal(types.NewParameterSet(
		types.Parameter{Name: "macd_fast", Value: 8},
		types.Parameter{Name: "macd_slow", Value: 13},
		types.Parameter{Name: "macd_signal", Value: 6},
		types.Parameter{Name: "rsi", Value: 8},
	), grid.Combinations()[0])
}

func (suite *GridTestSuite) TestInvalidGrids() {
	tests := []struct {
		name   string
		ranges []ParameterRange
	}{
		{name: "no ranges", ranges: nil},
		{name: "unknown name", ranges: []ParameterRange{{Name: "atr", Values: RangeValues{14}}}},
		{name: "duplicate name", ranges: []ParameterRange{
			{Name: "rsi", Values: RangeValues{14}},
			{Name: "rsi", Values: RangeValues{21}},
		}},
		{name: "no values", ranges: []ParameterRange{{Name: "rsi", Values: RangeValues{}}}},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			_, err := NewParameterGrid(tc.ranges)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidGrid))
		})
	}
}

func (suite *GridTestSuite) TestRange() {
	values, err := Range(6, 11, 2)
	suite.Require().NoError(err)
	suite.Equal([]int{6, 8, 10}, values)

	_, err = Range(6, 11, 0)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidGrid))

	_, err = Range(11, 6, 1)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidGrid))
}

func (suite *GridTestSuite) TestUnmarshalYAML() {
	tests := []struct {
		name      string
		input     string
		expected  RangeValues
		expectErr bool
	}{
		{name: "list", input: "[8, 13, 21]", expected: RangeValues{8, 13, 21}},
		{name: "range", input: "{start: 6, stop: 11, step: 2}", expected: RangeValues{6, 8, 10}},
		{name: "range with default step", input: "{start: 1, stop: 4}", expected: RangeValues{1, 2, 3}},
		{name: "range without stop", input: "{start: 1}", expectErr: true},
		{name: "scalar", input: "8", expectErr: true},
		{name: "not integers", input: "[a, b]", expectErr: true},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			var values RangeValues

			err := yaml.Unmarshal([]byte(tc.input), &values)
			if tc.expectErr {
				suite.Error(err)

				return
			}

			suite.Require().NoError(err)
			suite.Equal(tc.expected, values)
		})
	}
}

func (suite *GridTestSuite) TestConfigFromYAML() {
	input := `
workers: 2
ranges:
  - name: macd_fast
    values: [8, 13]
  - name: macd_signal
    values: {start: 6, stop: 11, step: 2}
`

	var config Config
	suite.Require().NoError(yaml.Unmarshal([]byte(input), &config))
	suite.Equal(2, config.Workers)

	grid, err := NewParameterGrid(config.Ranges)
	suite.Require().NoError(err)
	suite.Equal(6, grid.Size())
	suite.Equal([]string{"macd_fast", "macd_signal"}, grid.Names())
}
