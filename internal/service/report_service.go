package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"scouting-agent-be/internal/constant"
	"scouting-agent-be/internal/dto"
	"scouting-agent-be/internal/entity"
	"scouting-agent-be/internal/pkg/logger"
	"scouting-agent-be/internal/repository/specification"
	"scouting-agent-be/internal/repository/unitofwork"
	"scouting-agent-be/pkg/agent/state"
	"scouting-agent-be/pkg/events"
	pkgNats "scouting-agent-be/pkg/nats"
	"scouting-agent-be/pkg/pdfrender"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IReportService schedules PDF rendering for finished scouting reports and
// tracks the resulting jobs. It satisfies the agent's ReportScheduler
// contract.
type IReportService interface {
	Schedule(ctx context.Context, sessionId string, report *state.ScoutingReport) (pdfUrl string, jobId string, err error)
	GetJob(ctx context.Context, jobId uuid.UUID) (*dto.ReportJobResponse, error)
	Consume(ctx context.Context) error
}

type renderReportMessage struct {
	JobId  uuid.UUID             `json:"job_id"`
	Report *state.ScoutingReport `json:"report"`
}

type reportService struct {
	uowFactory unitofwork.RepositoryFactory
	pubSub     *gochannel.GoChannel
	renderer   *pdfrender.Client
	natsPub    *pkgNats.Publisher
	logger     logger.ILogger
}

func NewReportService(
	uowFactory unitofwork.RepositoryFactory,
	pubSub *gochannel.GoChannel,
	renderer *pdfrender.Client,
	natsPub *pkgNats.Publisher,
	logger logger.ILogger,
) IReportService {
	return &reportService{
		uowFactory: uowFactory,
		pubSub:     pubSub,
		renderer:   renderer,
		natsPub:    natsPub,
		logger:     logger,
	}
}

// Schedule records a pending job and queues it for the background renderer.
// Rendering never happens inline, so the pdf url return is always empty.
func (s *reportService) Schedule(ctx context.Context, sessionId string, report *state.ScoutingReport) (string, string, error) {
	if s.renderer == nil || s.renderer.BaseURL == "" {
		return "", "", fmt.Errorf("pdf renderer is not configured")
	}

	job := &entity.ReportJob{
		Id:        uuid.New(),
		SessionId: sessionId,
		ReportId:  report.ReportId,
		Status:    constant.ReportJobStatusPending,
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ReportJobRepository().Create(ctx, job); err != nil {
		return "", "", fmt.Errorf("create report job: %w", err)
	}

	payload, err := json.Marshal(renderReportMessage{JobId: job.Id, Report: report})
	if err != nil {
		return "", "", fmt.Errorf("marshal render message: %w", err)
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	if err := s.pubSub.Publish(constant.RenderReportTopicName, msg); err != nil {
		return "", "", fmt.Errorf("queue render job: %w", err)
	}

	s.logger.Info("REPORT", "render job queued", map[string]interface{}{
		"job_id":    job.Id.String(),
		"report_id": report.ReportId,
	})
	return "", job.Id.String(), nil
}

func (s *reportService) GetJob(ctx context.Context, jobId uuid.UUID) (*dto.ReportJobResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	job, err := uow.ReportJobRepository().FindOne(ctx, specification.ByID{ID: jobId})
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, nil
	}
	return &dto.ReportJobResponse{
		JobId:     job.Id.String(),
		ReportId:  job.ReportId,
		SessionId: job.SessionId,
		Status:    job.Status,
		PdfUrl:    job.PdfUrl,
		Error:     job.LastError,
	}, nil
}

// Consume drains the render queue in the background.
func (s *reportService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, constant.RenderReportTopicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *reportService) processMessage(ctx context.Context, msg *message.Message) {
	var payload renderReportMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("REPORT", "unmarshal render message failed", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	job, err := uow.ReportJobRepository().FindOne(ctx, specification.ByID{ID: payload.JobId})
	if err != nil || job == nil {
		s.logger.Error("REPORT", "render job lookup failed", map[string]interface{}{
			"job_id": payload.JobId.String(),
		})
		msg.Nack()
		return
	}

	job.Status = constant.ReportJobStatusProcessing
	if err := uow.ReportJobRepository().Update(ctx, job); err != nil {
		s.logger.Warn("REPORT", "failed to mark render job processing", map[string]interface{}{
			"job_id": job.Id.String(),
			"error":  err.Error(),
		})
	}

	renderCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	pdfUrl, err := s.renderer.Render(renderCtx, payload.Report)
	cancel()

	if err != nil {
		job.Status = constant.ReportJobStatusFailed
		job.LastError = err.Error()
		s.logger.Error("REPORT", "render failed", map[string]interface{}{
			"job_id": job.Id.String(),
			"error":  err.Error(),
		})
	} else {
		job.Status = constant.ReportJobStatusCompleted
		job.PdfUrl = pdfUrl
		job.LastError = ""
	}

	if err := uow.ReportJobRepository().Update(ctx, job); err != nil {
		s.logger.Error("REPORT", "render job update failed", map[string]interface{}{
			"job_id": job.Id.String(),
			"error":  err.Error(),
		})
		msg.Nack()
		return
	}

	if job.Status == constant.ReportJobStatusCompleted && s.natsPub != nil {
		ev := events.NewReportRendered(job.Id.String(), job.ReportId, job.SessionId, job.PdfUrl)
		if err := s.natsPub.Publish(ctx, ev); err != nil {
			s.logger.Warn("REPORT", "publish report_rendered failed", map[string]interface{}{
				"job_id": job.Id.String(),
				"error":  err.Error(),
			})
		}
	}

	msg.Ack()
}
