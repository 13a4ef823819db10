package service

import (
	"context"

	"scouting-agent-be/internal/dto"
	"scouting-agent-be/internal/pkg/logger"
	"scouting-agent-be/pkg/statsdb"
)

// IDataService exposes the stats databases for ad-hoc read-only exploration.
type IDataService interface {
	Query(ctx context.Context, req *dto.ExplorerQueryRequest) (*dto.ExplorerQueryResponse, error)
	Schema(ctx context.Context, league string) (*dto.SchemaResponse, error)
}

type dataService struct {
	registry *statsdb.Registry
	logger   logger.ILogger
}

func NewDataService(registry *statsdb.Registry, logger logger.ILogger) IDataService {
	return &dataService{registry: registry, logger: logger}
}

func (s *dataService) Query(ctx context.Context, req *dto.ExplorerQueryRequest) (*dto.ExplorerQueryResponse, error) {
	dataset, err := statsdb.DatasetForLeague(req.League)
	if err != nil {
		return nil, err
	}

	rows, err := s.registry.Execute(ctx, dataset, req.Query)
	if err != nil {
		return nil, err
	}

	return &dto.ExplorerQueryResponse{
		League:   req.League,
		RowCount: len(rows),
		Rows:     rows,
	}, nil
}

func (s *dataService) Schema(ctx context.Context, league string) (*dto.SchemaResponse, error) {
	dataset, err := statsdb.DatasetForLeague(league)
	if err != nil {
		return nil, err
	}

	schema, err := s.registry.Schema(ctx, dataset)
	if err != nil {
		return nil, err
	}

	return &dto.SchemaResponse{League: league, Schema: schema}, nil
}
