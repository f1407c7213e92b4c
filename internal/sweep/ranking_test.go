package sweep

import (
	"math/rand"
	"testing"

	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type RankingTestSuite struct {
	suite.Suite
}

func TestRankingSuite(t *testing.T) {
	suite.Run(t, new(RankingTestSuite))
}

func record(id int, pnl float64) types.ResultRecord {
	return types.ResultRecord{
		Parameters: types.NewParameterSet(types.Parameter{Name: "rsi", Value: id}),
		TotalTrade: 1,
		PnlNet:     pnl,
	}
}

func (suite *RankingTestSuite) TestEmpty() {
	table, err := Rank(nil)
	suite.True(errors.HasCode(err, errors.ErrCodeEmptySweep))
	suite.Empty(table)
}

func (suite *RankingTestSuite) TestSortsByPnlDescending() {
	table, err := Rank([]types.ResultRecord{record(1, -3), record(2, 10), record(3, 0.5)})
	suite.Require().NoError(err)

	suite.Equal([]float64{10, 0.5, -3}, []float64{table[0].PnlNet, table[1].PnlNet, table[2].PnlNet})
}

func (suite *RankingTestSuite) TestTiesKeepInputOrder() {
	table, err := Rank([]types.ResultRecord{record(1, 2), record(2, 5), record(3, 2), record(4, 2)})
	suite.Require().NoError(err)

	ids := make([]int, len(table))
	for i, r := range table {
		ids[i] = r.Parameters[0].Value
	}

	suite.Equal([]int{2, 1, 3, 4}, ids)
}

func (suite *RankingTestSuite) TestPermutationAndOrder() {
	rng := rand.New(rand.NewSource(3))

	for range 50 {
		records := make([]types.ResultRecord, rng.Intn(20)+1)
		for i := range records {
			records[i] = record(i, float64(rng.Intn(11)-5))
		}

		table, err := Rank(records)
		suite.Require().NoError(err)
		suite.Len(table, len(records))
		suite.ElementsMatch(records, []types.ResultRecord(table))

		for i := 1; i < len(table); i++ {
			suite.GreaterOrEqual(table[i-1].PnlNet, table[i].PnlNet)
		}
	}
}

func (suite *RankingTestSuite) TestInputIsNotModified() {
	records := []types.ResultRecord{record(1, 1), record(2, 2)}

	_, err := Rank(records)
	suite.Require().NoError(err)
	suite.Equal(1, records[0].Parameters[0].Value)
}
