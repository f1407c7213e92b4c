package sweep

import (
	"slices"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
)

// Extract flattens one run into a result record. A run without any trade,
// open or closed, has nothing to report and yields None.
func Extract(stats types.TradeStatistics, params types.ParameterSet) optional.Option[types.ResultRecord] {
	if stats.TotalTrades == 0 {
		return optional.None[types.ResultRecord]()
	}

	return optional.Some(types.ResultRecord{
		Parameters:   slices.Clone(params),
		TotalTrade:   stats.TotalTrades,
		PnlNet:       stats.PnlNet,
		PnlGross:     stats.PnlGross,
		LongTotal:    stats.Long.Total,
		LongWon:      stats.Long.Won,
		LongLost:     stats.Long.Lost,
		LongWonAmt:   stats.Long.WonAmount,
		LongLostAmt:  stats.Long.LostAmount,
		ShortTotal:   stats.Short.Total,
		ShortWon:     stats.Short.Won,
		ShortLost:    stats.Short.Lost,
		ShortWonAmt:  stats.Short.WonAmount,
		ShortLostAmt: stats.Short.LostAmount,
	})
}
