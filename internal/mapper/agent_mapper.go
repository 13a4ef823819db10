package mapper

import (
	"scouting-agent-be/internal/entity"
	"scouting-agent-be/internal/model"
)

type AgentMapper struct{}

func NewAgentMapper() *AgentMapper {
	return &AgentMapper{}
}

func (m *AgentMapper) ChatTurnToModel(e *entity.ChatTurn) *model.ChatTurn {
	return &model.ChatTurn{
		Id:        e.Id,
		SessionId: e.SessionId,
		Role:      e.Role,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
	}
}

func (m *AgentMapper) ChatTurnToEntity(md *model.ChatTurn) *entity.ChatTurn {
	return &entity.ChatTurn{
		Id:        md.Id,
		SessionId: md.SessionId,
		Role:      md.Role,
		Content:   md.Content,
		CreatedAt: md.CreatedAt,
	}
}

func (m *AgentMapper) ReportJobToModel(e *entity.ReportJob) *model.ReportJob {
	return &model.ReportJob{
		Id:        e.Id,
		SessionId: e.SessionId,
		ReportId:  e.ReportId,
		Status:    e.Status,
		PdfUrl:    e.PdfUrl,
		LastError: e.LastError,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *AgentMapper) ReportJobToEntity(md *model.ReportJob) *entity.ReportJob {
	return &entity.ReportJob{
		Id:        md.Id,
		SessionId: md.SessionId,
		ReportId:  md.ReportId,
		Status:    md.Status,
		PdfUrl:    md.PdfUrl,
		LastError: md.LastError,
		CreatedAt: md.CreatedAt,
		UpdatedAt: md.UpdatedAt,
	}
}
