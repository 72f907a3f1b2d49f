// Package analytics defines the narrow contract to the external KPI analytics
// engine. The engine owns all data retrieval, aggregation, ranking and growth
// computation; this package only describes what goes in and what comes out.
package analytics

// GrowthType is the time-comparison mode applied to metrics.
type GrowthType string

const (
	GrowthNone GrowthType = "none"
	GrowthYoY  GrowthType = "Y/Y"
	GrowthPoP  GrowthType = "P/P"
)

// GrowthTrend indicates the trend category within a growth metric for the
// entities being analyzed.
type GrowthTrend string

const (
	TrendFastestGrowing   GrowthTrend = "fastest growing"
	TrendHighestGrowing   GrowthTrend = "highest growing"
	TrendHighestDeclining GrowthTrend = "highest declining"
	TrendFastestDeclining GrowthTrend = "fastest declining"
	TrendSmallestOverall  GrowthTrend = "smallest overall"
	TrendBiggestOverall   GrowthTrend = "biggest overall"
)

// GrowthTypes and GrowthTrends list the accepted values for parameter
// constraint checks.
var (
	GrowthTypes  = []GrowthType{GrowthNone, GrowthYoY, GrowthPoP}
	GrowthTrends = []GrowthTrend{
		TrendFastestGrowing, TrendHighestGrowing,
		TrendHighestDeclining, TrendFastestDeclining,
		TrendSmallestOverall, TrendBiggestOverall,
	}
)

// Query is the explicit, strongly typed request shape for one analysis run.
// Every recognized option is a named field; nothing is copied dynamically.
type Query struct {
	Metrics      []string    `json:"metrics,omitempty"`
	MetricGroups []string    `json:"metricGroups,omitempty"`
	Breakouts    []string    `json:"breakouts,omitempty"`
	Periods      []string    `json:"periods,omitempty"`
	GrowthType   GrowthType  `json:"growthType"`
	GrowthTrend  GrowthTrend `json:"growthTrend,omitempty"`
	OtherFilters []Filter    `json:"otherFilters,omitempty"`
	LimitN       int         `json:"limitN"`
}

// Filter constrains the analysis to given values of one dimension.
type Filter struct {
	Dimension string   `json:"dimension"`
	Values    []string `json:"values"`
	Operator  string   `json:"operator,omitempty"` // defaults to "in"
}

// Table is tabular data: ordered column names plus rows of cells.
// Column names must be non-empty; no other invariant is assumed.
type Table struct {
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Records converts the table into row-records keyed by column name,
// the shape used as LLM prompt facts.
func (t *Table) Records() []map[string]interface{} {
	if t == nil {
		return []map[string]interface{}{}
	}
	records := make([]map[string]interface{}, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]interface{}, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records
}

// Truncate returns a new table holding the first n rows in original order.
// The receiver is never mutated; rows are shared, not copied.
func (t *Table) Truncate(n int) *Table {
	if t == nil {
		return &Table{}
	}
	if n < 0 {
		n = 0
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return &Table{
		Columns: t.Columns,
		Rows:    t.Rows[:n:n],
	}
}

// NamedTable pairs a display table with its name. Order matters: the engine
// returns display tables in presentation order and visualizations follow it.
type NamedTable struct {
	Name  string `json:"name"`
	Table *Table `json:"table"`
}

// Suggestion is a follow-up question proposed by the engine.
type Suggestion struct {
	Label    string `json:"label"`
	Question string `json:"question"`
}

// DisplayParam is one key/value row of parameter display metadata.
type DisplayParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// RunResult is everything the engine hands back for one query.
type RunResult struct {
	Primary      *Table            `json:"primary"`
	Tables       []NamedTable      `json:"tables"`
	Footnotes    map[string]string `json:"footnotes,omitempty"`
	Notes        *Table            `json:"notes,omitempty"`
	Warning      string            `json:"warning,omitempty"`
	Suggestions  []Suggestion      `json:"suggestions,omitempty"`
	DisplayInfo  []DisplayParam    `json:"displayInfo,omitempty"`
	Title        string            `json:"title,omitempty"`
	Subtitle     string            `json:"subtitle,omitempty"`
	Dimensions   []string          `json:"dimensions,omitempty"`
	IncludeRanks bool              `json:"includeRanks"`
}

// FirstTable returns the first display table, falling back to the primary
// result when the engine returned no display tables.
func (r *RunResult) FirstTable() *Table {
	if len(r.Tables) > 0 {
		return r.Tables[0].Table
	}
	return r.Primary
}
