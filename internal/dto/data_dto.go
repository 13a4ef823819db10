package dto

// ExplorerQueryRequest runs one ad-hoc read-only query against a league's
// stats database.
type ExplorerQueryRequest struct {
	League string `json:"league" validate:"required"`
	Query  string `json:"query" validate:"required"`
}

// ExplorerQueryResponse carries the rows of an ad-hoc query.
type ExplorerQueryResponse struct {
	League   string           `json:"league"`
	RowCount int              `json:"row_count"`
	Rows     []map[string]any `json:"rows"`
}

// SchemaResponse is the DDL of a league's stats database.
type SchemaResponse struct {
	League string `json:"league"`
	Schema string `json:"schema"`
}
