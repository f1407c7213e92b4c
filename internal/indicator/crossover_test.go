package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/stretchr/testify/suite"
)

type CrossOverTestSuite struct {
	suite.Suite
}

func TestCrossOverSuite(t *testing.T) {
	suite.Run(t, new(CrossOverTestSuite))
}

func (suite *CrossOverTestSuite) TestSigns() {
	cross := NewCrossOver()
	suite.Equal(types.IndicatorTypeCrossOver, cross.Name())

	diffs := []float64{-1, 1, 1, 0, -1, 0, -1, 0.5, 0, 0.2}
	expected := []int{0, 1, 0, 0, -1, 0, 0, 1, 0, 0}

	for i, d := range diffs {
		cross.Update(d)
		suite.Equal(expected[i], cross.Sign(), "diff #%d", i)
	}
}

func (suite *CrossOverTestSuite) TestTouchAndReturnIsNotACross() {
	cross := NewCrossOver()

	cross.Update(1)
	cross.Update(0)
	cross.Update(1)
	suite.Equal(0, cross.Sign())
}

func (suite *CrossOverTestSuite) TestCrossThroughZero() {
	cross := NewCrossOver()

	cross.Update(-2)
	cross.Update(0)
	suite.Equal(0, cross.Sign())
	cross.Update(3)
	suite.Equal(1, cross.Sign())
}

func (suite *CrossOverTestSuite) TestReadyAndReset() {
	cross := NewCrossOver()
	suite.Equal(2, cross.WarmupPeriod())
	suite.False(cross.Update(1))
	suite.True(cross.Update(-1))
	suite.Equal(-1, cross.Sign())

	cross.Reset()
	suite.False(cross.Ready())
	suite.Equal(0, cross.Sign())
}

func (suite *CrossOverTestSuite) TestConfig() {
	suite.NoError(NewCrossOver().Config())
	suite.Error(NewCrossOver().Config(1))
}
