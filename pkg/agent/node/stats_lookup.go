package node

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"scouting-agent-be/pkg/agent/state"
	"scouting-agent-be/pkg/llm"
	"scouting-agent-be/pkg/statsdb"
)

// StatsLookup turns a stats question into a guarded SQL query and runs it
// against the league's stats database.
type StatsLookup struct {
	provider llm.LLMProvider
	registry *statsdb.Registry
	logger   *log.Logger
}

func NewStatsLookup(provider llm.LLMProvider, registry *statsdb.Registry, logger *log.Logger) *StatsLookup {
	return &StatsLookup{provider: provider, registry: registry, logger: logger}
}

func (s *StatsLookup) Name() string { return state.NodeStatsLookup }

func (s *StatsLookup) Run(ctx context.Context, st *state.AgentState) (state.Update, *state.Interrupt, error) {
	league := st.League
	if league == "" && st.Entities != nil {
		league = st.Entities.League
	}
	if league == "" {
		league = DefaultLeague
	}

	dataset, err := statsdb.DatasetForLeague(league)
	if err != nil {
		return s.failure("", "", fmt.Sprintf("I don't have data for the league %q.", league)), nil, nil
	}

	schema, err := s.registry.Schema(ctx, dataset)
	if err != nil {
		s.logger.Printf("[STATS] schema load failed for %s: %v", dataset, err)
		return s.failure("", dataset, "I could not reach the stats database. Please try again."), nil, nil
	}

	plan, err := s.generatePlan(ctx, st, dataset, schema)
	if err != nil {
		s.logger.Printf("[STATS] plan generation failed: %v", err)
		return s.failure("", dataset, "I could not turn that question into a query. Please try rephrasing."), nil, nil
	}

	rows, err := s.registry.Execute(ctx, plan.DbName, plan.SqlQuery)
	if err != nil {
		s.logger.Printf("[STATS] query failed on %s: %v", plan.DbName, err)
		return s.failure(plan.SqlQuery, plan.DbName, friendlySQLError(err)), nil, nil
	}

	// Zero rows is a valid answer, not an error.
	summary := plan.SummaryText
	if len(rows) == 0 && summary == "" {
		summary = "The query ran successfully but returned no rows."
	}

	return state.StatsLookupUpdate{
		QueryResult: &state.QueryResult{
			Data:        rows,
			SqlQuery:    plan.SqlQuery,
			DbName:      plan.DbName,
			ChartConfig: plan.ChartConfig,
			SummaryText: summary,
		},
	}, nil, nil
}

func (s *StatsLookup) failure(sqlQuery, dbName, reason string) state.StatsLookupUpdate {
	msg := fmt.Sprintf("I encountered an error: %s Please try rephrasing your question.", reason)
	return state.StatsLookupUpdate{
		QueryResult: &state.QueryResult{
			Data:        []map[string]any{},
			SqlQuery:    sqlQuery,
			DbName:      dbName,
			SummaryText: msg,
		},
		Error: reason,
	}
}

func (s *StatsLookup) generatePlan(ctx context.Context, st *state.AgentState, dataset, schema string) (*state.SQLPlan, error) {
	prompt := s.buildPrompt(st, dataset, schema)
	raw, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		return nil, fmt.Errorf("llm generate: %w", err)
	}

	jsonContent := extractJSON(raw)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var plan state.SQLPlan
	if err := json.Unmarshal([]byte(jsonContent), &plan); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}
	if plan.DbName == "" {
		plan.DbName = dataset
	}
	if err := statsdb.GuardQuery(plan.SqlQuery); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *StatsLookup) buildPrompt(st *state.AgentState, dataset, schema string) string {
	var prompt strings.Builder

	season := DefaultSeason
	queryContext := st.UserQuery
	if st.Entities != nil {
		if st.Entities.Season != "" {
			season = st.Entities.Season
		}
		if st.Entities.QueryContext != "" {
			queryContext = st.Entities.QueryContext
		}
	}

	prompt.WriteString("<role>\n")
	prompt.WriteString("You translate basketball questions into a single read-only SQLite SELECT.\n")
	prompt.WriteString("</role>\n\n")

	prompt.WriteString("<database>\n")
	prompt.WriteString(fmt.Sprintf("Name: %s\n", dataset))
	prompt.WriteString("Schema:\n")
	prompt.WriteString(schema)
	prompt.WriteString("\n</database>\n\n")

	prompt.WriteString("<rules>\n")
	prompt.WriteString("- SELECT statements only, never modify data\n")
	prompt.WriteString(fmt.Sprintf("- Default to season '%s' unless the question names another\n", season))
	prompt.WriteString("- Always LIMIT to at most 50 rows\n")
	prompt.WriteString("- Pick a chart_type that fits the result shape: bar, line, table, radar or pie\n")
	prompt.WriteString("- x_column and y_columns must exactly match selected column names\n")
	prompt.WriteString("</rules>\n\n")

	prompt.WriteString("<question>\n")
	prompt.WriteString(queryContext)
	prompt.WriteString("\n</question>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY this JSON, no other text:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"sql_query\": \"SELECT ...\",\n")
	prompt.WriteString(fmt.Sprintf("  \"db_name\": \"%s\",\n", dataset))
	prompt.WriteString("  \"chart_config\": {\"chart_type\": \"bar\", \"x_column\": \"...\", \"y_columns\": [\"...\"], \"title\": \"...\"},\n")
	prompt.WriteString("  \"summary_text\": \"one sentence describing what the result shows\"\n")
	prompt.WriteString("}\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

// friendlySQLError strips driver noise down to something a user can act on.
func friendlySQLError(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "no such table"):
		return "the query referenced a table that does not exist."
	case strings.Contains(msg, "no such column"):
		return "the query referenced a column that does not exist."
	case strings.Contains(msg, "syntax error"):
		return "the generated query had a syntax error."
	default:
		return "the query could not be executed."
	}
}
