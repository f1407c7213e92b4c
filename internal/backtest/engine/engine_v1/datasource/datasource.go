package datasource

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
)

// DataSource supplies the bars of one instrument in chronological order.
type DataSource interface {
	// Initialize loads the data at path. Parquet and CSV files are supported,
	// and glob patterns are accepted (e.g. "data/*.parquet").
	Initialize(path string) error
	// ReadAll yields every bar inside the optional time window, oldest first
	ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.MarketData, error) bool)
	// Count returns the number of bars inside the optional time window
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// Close releases any resources
	Close() error
}

// Format is the file format of a data path.
type Format string

const (
	FormatParquet Format = "parquet"
	FormatCSV     Format = "csv"
)
