package conversation

import (
	"context"
	"sync"
)

// MemoryStore процессное in-memory хранилище сессий
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

// NewMemoryStore создает пустое in-memory хранилище сессий
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[int64]Session),
	}
}

// Get возвращает копию сессии пользователя
func (s *MemoryStore) Get(_ context.Context, requesterID int64) (*Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[requesterID]
	if !ok {
		return nil, false, nil
	}

	copied := session
	return &copied, true, nil
}

// Put сохраняет сессию пользователя
func (s *MemoryStore) Put(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.RequesterID] = *session
	return nil
}

// Delete удаляет сессию пользователя
// Удаление несуществующей сессии — no-op
func (s *MemoryStore) Delete(_ context.Context, requesterID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, requesterID)
	return nil
}
