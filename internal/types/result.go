package types

import (
	"math"
	"strconv"
	"strings"
)

// Fixed statistics columns of a result record, in output order.
const (
	FieldTotalTrade   = "total_trade"
	FieldPnlNet       = "pnl_net"
	FieldPnlGross     = "pnl_gross"
	FieldLongTotal    = "long_total"
	FieldLongWon      = "long_won"
	FieldLongLost     = "long_lost"
	FieldLongWonAmt   = "long_won_amt"
	FieldLongLostAmt  = "long_lost_amt"
	FieldShortTotal   = "short_total"
	FieldShortWon     = "short_won"
	FieldShortLost    = "short_lost"
	FieldShortWonAmt  = "short_won_amt"
	FieldShortLostAmt = "short_lost_amt"
)

// ResultStatFields are the statistics columns that follow the parameter columns.
var ResultStatFields = []string{
	FieldTotalTrade,
	FieldPnlNet,
	FieldPnlGross,
	FieldLongTotal,
	FieldLongWon,
	FieldLongLost,
	FieldLongWonAmt,
	FieldLongLostAmt,
	FieldShortTotal,
	FieldShortWon,
	FieldShortLost,
	FieldShortWonAmt,
	FieldShortLostAmt,
}

// ResultField is one column of a flattened result record.
type ResultField struct {
	Name  string
	Value any
}

// ResultRecord is one backtest run flattened into a row: its parameters merged
// with a fixed subset of its trade statistics.
type ResultRecord struct {
	Parameters   ParameterSet
	TotalTrade   int
	PnlNet       float64
	PnlGross     float64
	LongTotal    int
	LongWon      int
	LongLost     int
	LongWonAmt   float64
	LongLostAmt  float64
	ShortTotal   int
	ShortWon     int
	ShortLost    int
	ShortWonAmt  float64
	ShortLostAmt float64
}

// Fields returns the flattened record: parameters in their declared order
// followed by ResultStatFields.
func (r ResultRecord) Fields() []ResultField {
	fields := make([]ResultField, 0, len(r.Parameters)+len(ResultStatFields))
	for _, p := range r.Parameters {
		fields = append(fields, ResultField{Name: p.Name, Value: p.Value})
	}

	return append(fields,
		ResultField{Name: FieldTotalTrade, Value: r.TotalTrade},
		ResultField{Name: FieldPnlNet, Value: r.PnlNet},
		ResultField{Name: FieldPnlGross, Value: r.PnlGross},
		ResultField{Name: FieldLongTotal, Value: r.LongTotal},
		ResultField{Name: FieldLongWon, Value: r.LongWon},
		ResultField{Name: FieldLongLost, Value: r.LongLost},
		ResultField{Name: FieldLongWonAmt, Value: r.LongWonAmt},
		ResultField{Name: FieldLongLostAmt, Value: r.LongLostAmt},
		ResultField{Name: FieldShortTotal, Value: r.ShortTotal},
		ResultField{Name: FieldShortWon, Value: r.ShortWon},
		ResultField{Name: FieldShortLost, Value: r.ShortLost},
		ResultField{Name: FieldShortWonAmt, Value: r.ShortWonAmt},
		ResultField{Name: FieldShortLostAmt, Value: r.ShortLostAmt},
	)
}

// Get returns the value of a column by name.
func (r ResultRecord) Get(name string) (any, bool) {
	for _, f := range r.Fields() {
		if f.Name == name {
			return f.Value, true
		}
	}

	return nil, false
}

// Columns returns the column names of the record.
func (r ResultRecord) Columns() []string {
	fields := r.Fields()
	columns := make([]string, len(fields))

	for i, f := range fields {
		columns[i] = f.Name
	}

	return columns
}

// Row returns the record formatted for a CSV row, aligned with Columns.
func (r ResultRecord) Row() []string {
	fields := r.Fields()
	row := make([]string, len(fields))

	for i, f := range fields {
		row[i] = formatValue(f.Value)
	}

	return row
}

func formatValue(v any) string {
	switch value := v.(type) {
	case int:
		return strconv.Itoa(value)
	case float64:
		return formatFloat(value)
	case string:
		return value
	default:
		return ""
	}
}

// formatFloat writes the shortest exact decimal, keeping one fractional digit
// on whole numbers (120.0) so float columns stay recognisable.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) || strings.Contains(s, ".") {
		return s
	}

	return s + ".0"
}

// RankedResultTable is a sweep's result records ordered by net pnl, best first.
type RankedResultTable []ResultRecord

// Header returns the column names of the table. All records of one sweep share
// the same parameter names, so the first record defines the header.
func (t RankedResultTable) Header() []string {
	if len(t) == 0 {
		return nil
	}

	return t[0].Columns()
}

// Rows returns every record formatted for CSV output.
func (t RankedResultTable) Rows() [][]string {
	rows := make([][]string, len(t))
	for i, r := range t {
		rows[i] = r.Row()
	}

	return rows
}
