package audit

import (
	"context"
	"sort"
	"sync"

	"github.com/ahmetkoprulu/battlepass/models"
)

type MemoryActionLogStore struct {
	mu   sync.Mutex
	logs map[string]models.ActionLog
}

func NewMemoryActionLogStore() *MemoryActionLogStore {
	return &MemoryActionLogStore{logs: make(map[string]models.ActionLog)}
}

func (s *MemoryActionLogStore) InsertActionLog(_ context.Context, log *models.ActionLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.logs[log.ID]; !ok {
		s.logs[log.ID] = *log
	}
	return nil
}

func (s *MemoryActionLogStore) ListActionLogs(_ context.Context, limit int) ([]models.ActionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := make([]models.ActionLog, 0, len(s.logs))
	for _, l := range s.logs {
		logs = append(logs, l)
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].CreatedAt.After(logs[j].CreatedAt)
	})
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}
