package service

import (
	"context"
	"time"

	"scouting-agent-be/internal/dto"
	"scouting-agent-be/internal/entity"
	"scouting-agent-be/internal/pkg/logger"
	"scouting-agent-be/internal/repository/specification"
	"scouting-agent-be/internal/repository/unitofwork"
	"scouting-agent-be/pkg/agent/graph"
	"scouting-agent-be/pkg/agent/state"
	"scouting-agent-be/pkg/agent/stream"

	"github.com/google/uuid"
)

// IAgentService runs conversation turns through the workflow engine and
// persists the visible transcript.
type IAgentService interface {
	StreamTurn(ctx context.Context, req *dto.ChatRequest, emit stream.Emitter) error
	GetHistory(ctx context.Context, sessionId string) (*dto.HistoryResponse, error)
}

type agentService struct {
	engine     *graph.Engine
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAgentService(engine *graph.Engine, uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) IAgentService {
	return &agentService{
		engine:     engine,
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// StreamTurn executes one turn. Events pass straight through to the caller's
// emitter; the transcript rows are written around the run.
func (s *agentService) StreamTurn(ctx context.Context, req *dto.ChatRequest, emit stream.Emitter) error {
	if text, ok := req.UserInput.(string); ok && !req.IsResume {
		s.recordTurn(ctx, req.SessionId, state.RoleUser, text)
	}

	collector := &stream.Collector{}
	in := graph.Input{
		SessionId:     req.SessionId,
		UserInput:     req.UserInput,
		IsResume:      req.IsResume,
		InterruptType: state.InterruptType(req.InterruptType),
	}

	err := s.engine.Stream(ctx, in, stream.Tee(collector, emit))
	if err != nil {
		s.logger.Warn("AGENT", "turn ended with error", map[string]interface{}{
			"session_id": req.SessionId,
			"error":      err.Error(),
		})
		// The error event already went to the client; nothing to rethrow.
		return nil
	}

	if reply := finalReply(collector.Events); reply != "" {
		s.recordTurn(ctx, req.SessionId, state.RoleModel, reply)
	}
	return nil
}

// finalReply pulls the composer's main response out of the event log.
func finalReply(events []stream.Event) string {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Node != state.NodeGenerateResponse {
			continue
		}
		upd, ok := events[i].Output.(state.ResponseUpdate)
		if !ok || upd.Response == nil {
			return ""
		}
		return upd.Response.MainResponse
	}
	return ""
}

func (s *agentService) recordTurn(ctx context.Context, sessionId, role, content string) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	turn := &entity.ChatTurn{
		Id:        uuid.New(),
		SessionId: sessionId,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatTurnRepository().Create(ctx, turn); err != nil {
		// Transcript persistence must not break the live stream.
		s.logger.Warn("AGENT", "failed to record chat turn", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
}

func (s *agentService) GetHistory(ctx context.Context, sessionId string) (*dto.HistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	turns, err := uow.ChatTurnRepository().FindAll(ctx,
		specification.BySessionId{SessionId: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.HistoryResponse{
		SessionId: sessionId,
		Turns:     make([]dto.HistoryTurnResponse, 0, len(turns)),
	}
	for _, t := range turns {
		res.Turns = append(res.Turns, dto.HistoryTurnResponse{
			Role:      t.Role,
			Content:   t.Content,
			CreatedAt: t.CreatedAt.Format(time.RFC3339),
		})
	}
	return res, nil
}
