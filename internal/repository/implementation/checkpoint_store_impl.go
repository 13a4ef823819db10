package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"scouting-agent-be/internal/model"
	"scouting-agent-be/internal/repository/memory"
	"scouting-agent-be/pkg/agent/checkpoint"
	"scouting-agent-be/pkg/agent/state"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCheckpointStore persists workflow checkpoints to Postgres with a
// write-through in-memory cache in front.
type GormCheckpointStore struct {
	db    *gorm.DB
	cache *memory.CheckpointCache
}

var _ checkpoint.Store = &GormCheckpointStore{}

func NewGormCheckpointStore(db *gorm.DB, cache *memory.CheckpointCache) *GormCheckpointStore {
	return &GormCheckpointStore{db: db, cache: cache}
}

func (s *GormCheckpointStore) Load(ctx context.Context, sessionId string) (*checkpoint.Checkpoint, error) {
	if cp, found := s.cache.Get(sessionId); found {
		return cp, nil
	}

	var m model.AgentCheckpoint
	if err := s.db.WithContext(ctx).Where("session_id = ?", sessionId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", checkpoint.ErrUnavailable, err)
	}

	var st state.AgentState
	if err := json.Unmarshal(m.State, &st); err != nil {
		return nil, fmt.Errorf("%w: corrupt state for session %s: %v", checkpoint.ErrUnavailable, sessionId, err)
	}

	cp := &checkpoint.Checkpoint{
		SessionId:     m.SessionId,
		Node:          m.Node,
		InterruptType: state.InterruptType(m.InterruptType),
		State:         &st,
		UpdatedAt:     m.UpdatedAt,
	}
	s.cache.Save(cp)
	// The cache holds cp now, so the caller gets its own copy to mutate.
	return cp.Clone(), nil
}

func (s *GormCheckpointStore) Save(ctx context.Context, cp *checkpoint.Checkpoint) error {
	raw, err := json.Marshal(cp.State)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	m := model.AgentCheckpoint{
		SessionId:     cp.SessionId,
		Node:          cp.Node,
		InterruptType: string(cp.InterruptType),
		State:         datatypes.JSON(raw),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"node", "interrupt_type", "state", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("%w: %v", checkpoint.ErrUnavailable, err)
	}

	cp.UpdatedAt = m.UpdatedAt
	s.cache.Save(cp)
	return nil
}

func (s *GormCheckpointStore) Clear(ctx context.Context, sessionId string) error {
	s.cache.Delete(sessionId)
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.AgentCheckpoint{}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", checkpoint.ErrUnavailable, err)
	}
	return nil
}
