package implementation

import (
	"context"
	"errors"

	"scouting-agent-be/internal/entity"
	"scouting-agent-be/internal/mapper"
	"scouting-agent-be/internal/model"
	"scouting-agent-be/internal/repository/contract"
	"scouting-agent-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportJobRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AgentMapper
}

func NewReportJobRepository(db *gorm.DB) contract.ReportJobRepository {
	return &ReportJobRepositoryImpl{
		db:     db,
		mapper: mapper.NewAgentMapper(),
	}
}

func (r *ReportJobRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ReportJobRepositoryImpl) Create(ctx context.Context, job *entity.ReportJob) error {
	m := r.mapper.ReportJobToModel(job)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*job = *r.mapper.ReportJobToEntity(m)
	return nil
}

func (r *ReportJobRepositoryImpl) Update(ctx context.Context, job *entity.ReportJob) error {
	m := r.mapper.ReportJobToModel(job)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*job = *r.mapper.ReportJobToEntity(m)
	return nil
}

func (r *ReportJobRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReportJob, error) {
	var m model.ReportJob
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ReportJobToEntity(&m), nil
}

func (r *ReportJobRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReportJob, error) {
	var models []*model.ReportJob
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ReportJob, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ReportJobToEntity(m)
	}
	return entities, nil
}

func (r *ReportJobRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ReportJob{}, id).Error
}
