package unitofwork

import (
	"context"

	"scouting-agent-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatTurnRepository() contract.ChatTurnRepository
	ReportJobRepository() contract.ReportJobRepository
}
