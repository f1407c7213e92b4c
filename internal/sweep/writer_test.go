package sweep

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type WriterTestSuite struct {
	suite.Suite
	dir    string
	writer *ResultTableWriter
}

func TestWriterSuite(t *testing.T) {
	suite.Run(t, new(WriterTestSuite))
}

func (suite *WriterTestSuite) SetupTest() {
	suite.dir = filepath.Join(suite.T().TempDir(), "out")
	suite.writer = NewResultTableWriter(suite.dir)
	suite.writer.now = func() time.Time {
		return time.Date(2024, 3, 5, 14, 7, 9, 0, time.Local)
	}
}

func (suite *WriterTestSuite) TestFileName() {
	suite.Equal("macd_rsi_20240305_140709.csv", FileName(time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)))
}

func (suite *WriterTestSuite) TestWrite() {
	table := types.RankedResultTable{
		{
			Parameters: types.NewParameterSet(types.Parameter{Name: "macd_fast", Value: 8}, types.Parameter{Name: "rsi", Value: 14}),
			TotalTrade: 2,
			PnlNet:     3.25,
			PnlGross:   3.5,
			LongTotal:  2,
			LongWon:    2,
			LongWonAmt: 3.25,
		},
		{
			Parameters:  types.NewParameterSet(types.Parameter{Name: "macd_fast", Value: 13}, types.Parameter{Name: "rsi", Value: 14}),
			TotalTrade:  1,
			PnlNet:      -1,
			PnlGross:    -1,
			LongTotal:   1,
			LongLost:    1,
			LongLostAmt: -1,
		},
	}

	path, err := suite.writer.Write(table)
	suite.Require().NoError(err)
	suite.Equal(filepath.Join(suite.dir, "macd_rsi_20240305_140709.csv"), path)

	file, err := os.Open(path)
	suite.Require().NoError(err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)

	suite.Equal(append([]string{"macd_fast", "rsi"}, types.ResultStatFields...), rows[0])
	suite.Equal([]string{"8", "14", "2", "3.25", "3.5", "2", "2", "0", "3.25", "0.0", "0", "0", "0", "0.0", "0.0"}, rows[1])
	suite.Equal("13", rows[2][0])
	suite.Equal("-1.0", rows[2][3])
}

func (suite *WriterTestSuite) TestFailedWriteLeavesNoFile() {
	// a read-only handle makes every write fail
	suite.writer.create = func(name string) (*os.File, error) {
		if err := os.WriteFile(name, nil, 0644); err != nil {
			return nil, err
		}

		return os.Open(name)
	}

	table := types.RankedResultTable{
		{
			Parameters: types.NewParameterSet(types.Parameter{Name: "macd_fast", Value: 8}),
			TotalTrade: 1,
			PnlNet:     2,
		},
	}

	path, err := suite.writer.Write(table)
	suite.True(errors.HasCode(err, errors.ErrCodeResultWriteError), "got %v", err)
	suite.Empty(path)
	suite.NoFileExists(filepath.Join(suite.dir, "macd_rsi_20240305_140709.csv"))
	suite.DirExists(suite.dir)
}

func (suite *WriterTestSuite) TestEmptyTableWritesNothing() {
	path, err := suite.writer.Write(nil)
	suite.True(errors.HasCode(err, errors.ErrCodeEmptySweep))
	suite.Empty(path)
	suite.NoDirExists(suite.dir)
}
