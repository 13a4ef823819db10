package memory

import (
	"time"

	"scouting-agent-be/pkg/agent/checkpoint"

	"github.com/patrickmn/go-cache"
)

// CheckpointCache keeps hot session checkpoints in process memory so an
// active conversation does not hit Postgres on every turn.
type CheckpointCache struct {
	cache *cache.Cache
}

func NewCheckpointCache() *CheckpointCache {
	// Default expiration of 1 hour, purge expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &CheckpointCache{
		cache: c,
	}
}

func (r *CheckpointCache) Save(cp *checkpoint.Checkpoint) {
	r.cache.Set(cp.SessionId, cp, cache.DefaultExpiration)
}

// Get returns a deep copy so callers cannot mutate the cached checkpoint
// behind the store's back.
func (r *CheckpointCache) Get(sessionId string) (*checkpoint.Checkpoint, bool) {
	if x, found := r.cache.Get(sessionId); found {
		return x.(*checkpoint.Checkpoint).Clone(), true
	}
	return nil, false
}

func (r *CheckpointCache) Delete(sessionId string) {
	r.cache.Delete(sessionId)
}
