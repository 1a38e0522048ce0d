package backend

import "sync"

// Sequencer выдаёт монотонные номера запросов по сущности.
// Завершение со старым номером устарело и должно быть отброшено.
type Sequencer struct {
	mu   sync.Mutex
	last map[string]uint64
}

func NewSequencer() *Sequencer {
	return &Sequencer{last: make(map[string]uint64)}
}

func (s *Sequencer) Next(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[key]++
	return s.last[key]
}

// Current сообщает, остаётся ли ticket последним выданным для key.
func (s *Sequencer) Current(key string, ticket uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last[key] == ticket
}

func (s *Sequencer) Forget(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.last, key)
}
