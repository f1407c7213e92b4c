package datasource

import (
	"slices"
	"sync"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
)

// InMemoryDataSource serves bars that are already loaded. Sweep runs share one
// preloaded slice; the slice is never written after construction.
type InMemoryDataSource struct {
	bars []types.MarketData
	mu   sync.RWMutex
}

// NewInMemoryDataSource wraps bars, sorting them by time when needed.
func NewInMemoryDataSource(bars []types.MarketData) *InMemoryDataSource {
	if !slices.IsSortedFunc(bars, compareTime) {
		bars = slices.Clone(bars)
		slices.SortStableFunc(bars, compareTime)
	}

	return &InMemoryDataSource{
		bars: bars,
		mu:   sync.RWMutex{},
	}
}

// Preload reads every bar of source inside the window into memory.
func Preload(source DataSource, start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.MarketData, error) {
	var bars []types.MarketData

	for bar, err := range source.ReadAll(start, end) {
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataNotFound, "failed to preload data", err)
		}

		bars = append(bars, bar)
	}

	return bars, nil
}

// Initialize implements DataSource. Bars are given at construction, so a path
// cannot be loaded.
func (ds *InMemoryDataSource) Initialize(path string) error {
	return errors.Newf(errors.ErrCodeDataSourceUnavailable, "in-memory data source cannot load %q", path)
}

// ReadAll implements DataSource.
func (ds *InMemoryDataSource) ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.MarketData, error) bool) {
	return func(yield func(types.MarketData, error) bool) {
		ds.mu.RLock()
		bars := ds.bars
		ds.mu.RUnlock()

		for _, bar := range bars {
			if !inWindow(bar.Time, start, end) {
				continue
			}

			if !yield(bar, nil) {
				return
			}
		}
	}
}

// Count implements DataSource.
func (ds *InMemoryDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	count := 0

	for _, bar := range ds.bars {
		if inWindow(bar.Time, start, end) {
			count++
		}
	}

	return count, nil
}

// Close implements DataSource.
func (ds *InMemoryDataSource) Close() error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.bars = nil

	return nil
}

func compareTime(a, b types.MarketData) int {
	return a.Time.Compare(b.Time)
}
