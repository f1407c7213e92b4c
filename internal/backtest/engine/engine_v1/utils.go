package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-macdrsi/internal/strategy"
)

// getResultFolder builds <results>/<strategy>/<params>[/<start>_<end>]/<data file>.
func getResultFolder(b *BacktestEngineV1, tradingStrategy strategy.TradingStrategy) string {
	strategyFolder := filepath.Join(b.resultsFolder, tradingStrategy.Name())

	paramParts := make([]string, 0, len(tradingStrategy.Parameters()))
	for _, param := range tradingStrategy.Parameters() {
		paramParts = append(paramParts, fmt.Sprintf("%s_%d", param.Name, param.Value))
	}

	paramFolder := filepath.Join(strategyFolder, "default")
	if len(paramParts) > 0 {
		paramFolder = filepath.Join(strategyFolder, strings.Join(paramParts, "-"))
	}

	dataFolder := paramFolder

	if b.config.StartTime.IsSome() || b.config.EndTime.IsSome() {
		startTimeStr := "all"
		endTimeStr := "all"

		if b.config.StartTime.IsSome() {
			startTimeStr = b.config.StartTime.Unwrap().Format("20060102")
		}

		if b.config.EndTime.IsSome() {
			endTimeStr = b.config.EndTime.Unwrap().Format("20060102")
		}

		dataFolder = filepath.Join(paramFolder, fmt.Sprintf("%s_%s", startTimeStr, endTimeStr))
	}

	if b.dataPath == "" {
		return dataFolder
	}

	dataFileName := strings.TrimSuffix(filepath.Base(b.dataPath), filepath.Ext(b.dataPath))

	return filepath.Join(dataFolder, dataFileName)
}
