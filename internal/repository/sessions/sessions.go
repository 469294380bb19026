package sessions

import (
	"sync"

	"github.com/google/uuid"

	"github.com/DevelopIT-LTD/escobar-bot/internal/domain"
	"github.com/DevelopIT-LTD/escobar-bot/pkg/prometheus"
)

// Store тримає стани розмов у пам'яті, ключ — chat ID. Жодної
// довговічності між рестартами немає, це свідоме рішення.
type Store struct {
	states map[int64]*domain.Session
	mu     sync.RWMutex
}

func NewStore() *Store {
	return &Store{states: make(map[int64]*domain.Session)}
}

func (s *Store) Get(chatID int64) (*domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[chatID]
	return state, ok
}

// GetOrCreate повертає стан розмови, створюючи порожній за потреби.
func (s *Store) GetOrCreate(chatID int64) *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.states[chatID]; ok {
		return state
	}
	state := &domain.Session{CorrelationID: uuid.New().String()}
	s.states[chatID] = state
	prometheus.ActiveSessions.Inc()
	return state
}

func (s *Store) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.states[chatID]; ok {
		delete(s.states, chatID)
		prometheus.ActiveSessions.Dec()
	}
}
