package state

// ChartConfig tells the frontend how to render a query result. Column names
// must match the SQL columns exactly so chart components can bind directly.
type ChartConfig struct {
	ChartType      string   `json:"chart_type"` // bar, line, table, radar, pie
	XColumn        string   `json:"x_column,omitempty"`
	YColumns       []string `json:"y_columns,omitempty"`
	Title          string   `json:"title"`
	Subtitle       string   `json:"subtitle,omitempty"`
	ColorScheme    []string `json:"color_scheme,omitempty"`
	LegendPosition string   `json:"legend_position,omitempty"`
	XAxisLabel     string   `json:"x_axis_label,omitempty"`
	YAxisLabel     string   `json:"y_axis_label,omitempty"`
	ValueFormat    string   `json:"value_format,omitempty"` // number, percentage, decimal
	ShowDataLabels bool     `json:"show_data_labels,omitempty"`
}

// QueryResult is the structured output of the stats lookup handler: tabular
// rows plus the generating query and an optional chart recommendation.
// SummaryText is always non-empty, including for zero-row results.
type QueryResult struct {
	Data        []map[string]any `json:"data"`
	SqlQuery    string           `json:"sql_query"`
	DbName      string           `json:"db_name"`
	ChartConfig *ChartConfig     `json:"chart_config,omitempty"`
	SummaryText string           `json:"summary_text"`
}

// SQLPlan is the structured answer expected from the SQL-generation LLM call.
type SQLPlan struct {
	SqlQuery    string       `json:"sql_query"`
	DbName      string       `json:"db_name"`
	ChartConfig *ChartConfig `json:"chart_config,omitempty"`
	SummaryText string       `json:"summary_text"`
}
