package contract

import (
	"context"

	"scouting-agent-be/internal/entity"
	"scouting-agent-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ReportJobRepository interface {
	Create(ctx context.Context, job *entity.ReportJob) error
	Update(ctx context.Context, job *entity.ReportJob) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReportJob, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReportJob, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
