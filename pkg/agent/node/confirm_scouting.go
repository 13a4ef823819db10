package node

import (
	"context"
	"fmt"
	"log"

	"scouting-agent-be/pkg/agent/state"
)

// ConfirmScouting is the human-in-the-loop gate in front of report
// generation. It runs in up to three phases across suspensions:
//
//  1. fresh entry: search for the player, suspend on a selection interrupt
//     when more than one candidate matches
//  2. selection resume: bind the chosen candidate, suspend on a
//     confirmation interrupt
//  3. confirmation resume: mark the report confirmed or cancelled
type ConfirmScouting struct {
	searcher PlayerSearcher
	logger   *log.Logger
}

func NewConfirmScouting(searcher PlayerSearcher, logger *log.Logger) *ConfirmScouting {
	return &ConfirmScouting{searcher: searcher, logger: logger}
}

func (c *ConfirmScouting) Name() string { return state.NodeConfirmScouting }

func (c *ConfirmScouting) Run(ctx context.Context, st *state.AgentState) (state.Update, *state.Interrupt, error) {
	if st.Resume != nil {
		if st.Resume.Confirm != nil {
			return c.handleConfirmation(st, *st.Resume.Confirm)
		}
		if st.Resume.Index != nil {
			return c.handleSelection(st, *st.Resume.Index)
		}
	}
	return c.handleFreshEntry(ctx, st)
}

func (c *ConfirmScouting) handleConfirmation(st *state.AgentState, confirmed bool) (state.Update, *state.Interrupt, error) {
	if !confirmed {
		return state.ConfirmScoutingUpdate{
			ScoutingConfirmed: false,
			Error:             "Scouting report cancelled by user",
		}, nil, nil
	}
	return state.ConfirmScoutingUpdate{
		PlayerId:          st.PlayerId,
		PlayerName:        st.PlayerName,
		League:            st.League,
		ScoutingConfirmed: true,
	}, nil, nil
}

func (c *ConfirmScouting) handleSelection(st *state.AgentState, index int) (state.Update, *state.Interrupt, error) {
	if index < 0 || index >= len(st.Candidates) {
		return state.ConfirmScoutingUpdate{Error: "Invalid player selection"}, nil, nil
	}

	chosen := st.Candidates[index]
	upd := state.ConfirmScoutingUpdate{
		PlayerId:   chosen.PlayerId,
		PlayerName: chosen.FullName,
		League:     chosen.League,
	}
	intr := &state.Interrupt{
		Type:       state.InterruptScoutingConfirmation,
		Message:    fmt.Sprintf("Generate a full scouting report for %s (%s)?", chosen.FullName, chosen.League),
		PlayerName: chosen.FullName,
		PlayerId:   chosen.PlayerId,
		League:     chosen.League,
	}
	return upd, intr, nil
}

func (c *ConfirmScouting) handleFreshEntry(ctx context.Context, st *state.AgentState) (state.Update, *state.Interrupt, error) {
	name := st.PlayerName
	if name == "" && st.Entities != nil {
		name = st.Entities.PlayerName
	}
	if name == "" {
		return state.ConfirmScoutingUpdate{Error: "No player name provided"}, nil, nil
	}

	league := st.League
	if league == "" && st.Entities != nil {
		league = st.Entities.League
	}

	candidates, err := c.searcher.Search(ctx, name, league)
	if err != nil {
		c.logger.Printf("[CONFIRM] search failed for %q: %v", name, err)
		return state.ConfirmScoutingUpdate{Error: "Player search is unavailable right now. Please try again."}, nil, nil
	}

	if len(candidates) == 0 {
		return state.ConfirmScoutingUpdate{Error: fmt.Sprintf("No players found matching '%s'", name)}, nil, nil
	}

	if len(candidates) == 1 {
		// Unambiguous match skips selection and goes straight to confirmation.
		chosen := candidates[0]
		upd := state.ConfirmScoutingUpdate{
			PlayerId:   chosen.PlayerId,
			PlayerName: chosen.FullName,
			League:     chosen.League,
		}
		intr := &state.Interrupt{
			Type:       state.InterruptScoutingConfirmation,
			Message:    fmt.Sprintf("Generate a full scouting report for %s (%s)?", chosen.FullName, chosen.League),
			PlayerName: chosen.FullName,
			PlayerId:   chosen.PlayerId,
			League:     chosen.League,
		}
		return upd, intr, nil
	}

	upd := state.ConfirmScoutingUpdate{Candidates: candidates}
	intr := &state.Interrupt{
		Type:          state.InterruptPlayerSelection,
		Message:       fmt.Sprintf("Found %d player(s). Select one:", len(candidates)),
		SearchResults: candidates,
	}
	return upd, intr, nil
}
