package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("сессия не найдена")

// Store - открытые сессии в памяти, в порядке открытия.
type Store struct {
	storage map[uuid.UUID]*Session
	mtx     *sync.RWMutex
	ids     []uuid.UUID
}

func NewStore() *Store {
	return &Store{
		storage: make(map[uuid.UUID]*Session),
		mtx:     &sync.RWMutex{},
		ids:     []uuid.UUID{},
	}
}

func (s *Store) Create(sess *Session) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[sess.ID]; !ok {
		s.ids = append(s.ids, sess.ID)
	}
	s.storage[sess.ID] = sess
}

func (s *Store) GetByID(id uuid.UUID) (*Session, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	sess, ok := s.storage[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *Store) Delete(id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return ErrNotFound
	}
	s.remove(id)
	return nil
}

// remove вызывается под блокировкой записи.
func (s *Store) remove(id uuid.UUID) {
	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
}

func (s *Store) Len() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return len(s.ids)
}

// All - сессии в порядке открытия.
func (s *Store) All() []*Session {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*Session, 0, len(s.ids))
	for _, id := range s.ids {
		res = append(res, s.storage[id])
	}
	return res
}

// SweepResult - итог одного прохода очистки.
type SweepResult struct {
	Checked  int
	Expired  int
	Banners  int
	Duration time.Duration
}

// Sweep закрывает сессии, простаивавшие дольше idle, и убирает истёкшие баннеры остальных.
// limit ограничивает число закрываемых за проход сессий; 0 - без ограничения.
func (s *Store) Sweep(now time.Time, idle time.Duration, limit int) SweepResult {
	start := time.Now()
	res := SweepResult{}

	var expired []uuid.UUID
	for _, sess := range s.All() {
		res.Checked++
		if idle > 0 && sess.Idle(now, idle) {
			if limit > 0 && len(expired) >= limit {
				continue
			}
			expired = append(expired, sess.ID)
			continue
		}
		res.Banners += sess.Env.Banners.Sweep(now)
	}

	if len(expired) > 0 {
		s.mtx.Lock()
		for _, id := range expired {
			// сессию могли тронуть после проверки
			if sess, ok := s.storage[id]; ok && sess.Idle(now, idle) {
				s.remove(id)
				res.Expired++
			}
		}
		s.mtx.Unlock()
	}
	res.Duration = time.Since(start)
	return res
}
