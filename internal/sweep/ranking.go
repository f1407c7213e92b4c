package sweep

import (
	"cmp"
	"slices"

	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
)

// Rank orders records by net pnl, best first. Records with equal pnl keep
// their input order. An empty input is reported as ErrCodeEmptySweep.
func Rank(records []types.ResultRecord) (types.RankedResultTable, error) {
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeEmptySweep, "no run produced a trade")
	}

	table := slices.Clone(records)
	slices.SortStableFunc(table, func(a, b types.ResultRecord) int {
		return cmp.Compare(b.PnlNet, a.PnlNet)
	})

	return table, nil
}
