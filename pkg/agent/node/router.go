package node

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"scouting-agent-be/pkg/agent/state"
	"scouting-agent-be/pkg/llm"
)

// Router classifies the user message into an intent and extracts the
// entities downstream handlers need.
type Router struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewRouter(provider llm.LLMProvider, logger *log.Logger) *Router {
	return &Router{provider: provider, logger: logger}
}

func (r *Router) Name() string { return state.NodeRouter }

type routerDecision struct {
	Intent   string `json:"intent"`
	Entities struct {
		PlayerName   string `json:"player_name"`
		League       string `json:"league"`
		Season       string `json:"season"`
		QueryContext string `json:"query_context"`
	} `json:"entities"`
}

func (r *Router) Run(ctx context.Context, st *state.AgentState) (state.Update, *state.Interrupt, error) {
	iteration := st.RoutingIteration + 1
	if iteration > MaxRoutingIterations {
		r.logger.Printf("[ROUTER] session %s exceeded %d routing iterations, forcing terminate", st.SessionId, MaxRoutingIterations)
		return state.RouterUpdate{
			Intent:           state.IntentTerminate,
			RoutingIteration: iteration,
			WorkComplete:     true,
			Error:            "I got stuck deciding how to handle that request. Please try again.",
		}, nil, nil
	}

	prompt := r.buildPrompt(st)
	raw, err := r.provider.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		// Classification failure degrades to a plain text turn instead of
		// killing the stream.
		r.logger.Printf("[ROUTER] classification failed: %v", err)
		return state.RouterUpdate{
			Intent:           state.IntentTextResponse,
			RoutingIteration: iteration,
			Error:            "I had trouble understanding that request. Could you rephrase it?",
		}, nil, nil
	}

	decision, err := parseDecision(raw)
	if err != nil {
		r.logger.Printf("[ROUTER] unparseable decision: %v", err)
		return state.RouterUpdate{
			Intent:           state.IntentTextResponse,
			RoutingIteration: iteration,
			Error:            "I had trouble understanding that request. Could you rephrase it?",
		}, nil, nil
	}

	entities := &state.Entities{
		PlayerName:   decision.Entities.PlayerName,
		League:       decision.Entities.League,
		Season:       decision.Entities.Season,
		QueryContext: decision.Entities.QueryContext,
	}
	if entities.League == "" {
		entities.League = DefaultLeague
	}
	if entities.Season == "" {
		entities.Season = DefaultSeason
	}

	return state.RouterUpdate{
		Intent:           state.Intent(decision.Intent),
		Entities:         entities,
		PlayerName:       entities.PlayerName,
		League:           entities.League,
		UserQuery:        st.UserQuery,
		RoutingIteration: iteration,
		WorkComplete:     state.Intent(decision.Intent) == state.IntentTerminate,
	}, nil, nil
}

func parseDecision(raw string) (*routerDecision, error) {
	jsonContent := extractJSON(raw)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var decision routerDecision
	if err := json.Unmarshal([]byte(jsonContent), &decision); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	// Anything outside the closed intent set falls back to plain text.
	switch state.Intent(decision.Intent) {
	case state.IntentStatsQuery, state.IntentScoutingReport, state.IntentTextResponse,
		state.IntentExtractPlayer, state.IntentContinueChain, state.IntentTerminate:
	default:
		decision.Intent = string(state.IntentTextResponse)
	}
	return &decision, nil
}

func (r *Router) buildPrompt(st *state.AgentState) string {
	var prompt strings.Builder

	prompt.WriteString("<role>\n")
	prompt.WriteString("You are the intent router for a basketball scouting assistant covering\n")
	prompt.WriteString("Canadian leagues: CEBL, U SPORTS, CCAA and HoopQueens.\n")
	prompt.WriteString("</role>\n\n")

	// continue_chain is deliberately absent: it is reserved for internal
	// re-routing and is never offered to the classifier.
	prompt.WriteString("<intents>\n")
	prompt.WriteString("- stats_query: the user wants numbers, rankings, comparisons or any data lookup\n")
	prompt.WriteString("- scouting_report: the user wants a full scouting evaluation of one player\n")
	prompt.WriteString("- extract_player_from_results: the user refers to a player from earlier results (\"tell me about the second one\")\n")
	prompt.WriteString("- text_response: greetings, general basketball talk, anything not needing data\n")
	prompt.WriteString("- terminate: the user is clearly done (\"thanks, that's all\")\n")
	prompt.WriteString("</intents>\n\n")

	if len(st.Messages) > 1 {
		prompt.WriteString("<conversation_history>\n")
		// Skip the latest message, it is repeated below as the subject.
		for _, msg := range st.Messages[:len(st.Messages)-1] {
			prompt.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, msg.Content))
		}
		prompt.WriteString("</conversation_history>\n\n")
	}

	prompt.WriteString("<user_message>\n")
	prompt.WriteString(st.UserQuery)
	prompt.WriteString("\n</user_message>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY this JSON, no other text:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"intent\": \"stats_query|scouting_report|extract_player_from_results|text_response|terminate\",\n")
	prompt.WriteString("  \"entities\": {\n")
	prompt.WriteString("    \"player_name\": \"extracted player name or empty\",\n")
	prompt.WriteString("    \"league\": \"CEBL|U SPORTS|CCAA|HoopQueens or empty\",\n")
	prompt.WriteString("    \"season\": \"season year or empty\",\n")
	prompt.WriteString("    \"query_context\": \"short restatement of what the user wants\"\n")
	prompt.WriteString("  }\n")
	prompt.WriteString("}\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}
