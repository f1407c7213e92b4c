package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type EMATestSuite struct {
	suite.Suite
}

func TestEMASuite(t *testing.T) {
	suite.Run(t, new(EMATestSuite))
}

func (suite *EMATestSuite) TestDefaults() {
	ema := NewEMA()
	suite.Equal(types.IndicatorTypeEMA, ema.Name())
	suite.Equal(20, ema.WarmupPeriod())
	suite.False(ema.Ready())
}

func (suite *EMATestSuite) TestSeededWithSimpleAverage() {
	ema, err := NewEMAWithPeriod(3)
	suite.Require().NoError(err)

	suite.False(ema.Update(1))
	suite.False(ema.Update(2))
	suite.True(ema.Update(3))
	suite.InDelta(2.0, ema.Value(), 1e-9)

	// k = 2 / (3 + 1) = 0.5
	ema.Update(4)
	suite.InDelta(3.0, ema.Value(), 1e-9)
	ema.Update(5)
	suite.InDelta(4.0, ema.Value(), 1e-9)
}

func (suite *EMATestSuite) TestReset() {
	ema, err := NewEMAWithPeriod(2)
	suite.Require().NoError(err)

	ema.Update(10)
	ema.Update(20)
	suite.True(ema.Ready())

	ema.Reset()
	suite.False(ema.Ready())
	suite.Equal(0.0, ema.Value())
}

func (suite *EMATestSuite) TestConfig() {
	tests := []struct {
		name   string
		params []any
		code   errors.ErrorCode
	}{
		{"no params", []any{}, errors.ErrCodeMissingParameter},
		{"wrong type", []any{"3"}, errors.ErrCodeInvalidType},
		{"zero period", []any{0}, errors.ErrCodeInvalidPeriod},
		{"negative period", []any{-4}, errors.ErrCodeInvalidPeriod},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			err := NewEMA().Config(tc.params...)
			suite.Error(err)
			suite.True(errors.HasCode(err, tc.code))
		})
	}

	ema := NewEMA()
	suite.NoError(ema.Config(5))
	suite.Equal(5, ema.WarmupPeriod())
}
