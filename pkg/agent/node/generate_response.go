package node

import (
	"context"
	"fmt"
	"log"
	"strings"

	"scouting-agent-be/pkg/agent/state"
	"scouting-agent-be/pkg/llm"
)

// GenerateResponse is the terminal composer. It folds whatever the handlers
// produced into one user-facing AgentResponse.
type GenerateResponse struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewGenerateResponse(provider llm.LLMProvider, logger *log.Logger) *GenerateResponse {
	return &GenerateResponse{provider: provider, logger: logger}
}

func (g *GenerateResponse) Name() string { return state.NodeGenerateResponse }

func (g *GenerateResponse) Run(ctx context.Context, st *state.AgentState) (state.Update, *state.Interrupt, error) {
	switch {
	case st.Error != "":
		return respond(&state.AgentResponse{
			ResponseType: state.ResponseTypeText,
			MainResponse: st.Error,
		}), nil, nil

	case st.ScoutingReport != nil:
		msg := fmt.Sprintf("Scouting report generated for %s.", st.ScoutingReport.PlayerProfile.Name)
		if st.PdfUrl != "" {
			msg += " PDF available for download."
		} else if st.RenderJobId != "" {
			msg += " The PDF is being prepared and will be available shortly."
		}
		return respond(&state.AgentResponse{
			ResponseType:   state.ResponseTypeScoutingPlan,
			MainResponse:   msg,
			ScoutingReport: st.ScoutingReport,
			PdfUrl:         st.PdfUrl,
			JobId:          st.RenderJobId,
		}), nil, nil

	case st.QueryResult != nil:
		return respond(&state.AgentResponse{
			ResponseType: state.ResponseTypeQueryResult,
			MainResponse: st.QueryResult.SummaryText,
			QueryResult:  st.QueryResult,
			ChartConfig:  st.QueryResult.ChartConfig,
			Data:         st.QueryResult.Data,
		}), nil, nil

	case len(st.Candidates) > 1:
		return respond(&state.AgentResponse{
			ResponseType: state.ResponseTypeText,
			MainResponse: clarification(st.Candidates),
		}), nil, nil

	case st.BioText != "":
		return respond(&state.AgentResponse{
			ResponseType: state.ResponseTypeText,
			MainResponse: st.BioText,
		}), nil, nil
	}

	text, err := g.converse(ctx, st)
	if err != nil {
		g.logger.Printf("[RESPONSE] text generation failed: %v", err)
		text = "Hi! I can look up stats, player profiles and scouting reports across CEBL, U SPORTS, CCAA and HoopQueens. What would you like to know?"
	}
	return respond(&state.AgentResponse{
		ResponseType: state.ResponseTypeText,
		MainResponse: text,
	}), nil, nil
}

func respond(r *state.AgentResponse) state.ResponseUpdate {
	return state.ResponseUpdate{Response: r}
}

// clarification lists the ambiguous matches so the user can name one
// precisely in their next message.
func clarification(candidates []state.PlayerCandidate) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("I found %d players matching that name. Which one did you mean?\n", len(candidates)))
	for i, c := range candidates {
		b.WriteString(fmt.Sprintf("%d. %s (%s", i+1, c.FullName, c.League))
		if c.Team != "" {
			b.WriteString(", " + c.Team)
		}
		b.WriteString(")\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (g *GenerateResponse) converse(ctx context.Context, st *state.AgentState) (string, error) {
	history := make([]llm.Message, 0, len(st.Messages)+1)
	history = append(history, llm.Message{
		Role: state.RoleUser,
		Content: "You are a basketball scouting assistant for Canadian leagues (CEBL, U SPORTS, " +
			"CCAA, HoopQueens). Answer briefly and stay on basketball topics.",
	})
	for _, msg := range st.Messages {
		history = append(history, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	return g.provider.Chat(ctx, history, llm.WithTemperature(0.6))
}
