package store

import "sync"

// MemoryHistoryStore implements HistoryStore in memory.
type MemoryHistoryStore struct {
	mu   sync.Mutex
	recs []TransformRecord
}

// NewMemoryHistoryStore creates an empty in-memory history store.
func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{}
}

// Record appends a transform record, filling ID and CreatedAt when unset.
func (s *MemoryHistoryStore) Record(rec TransformRecord) error {
	fillDefaults(&rec)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
	return nil
}

// Recent returns up to limit records, newest first.
func (s *MemoryHistoryStore) Recent(limit int) ([]TransformRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []TransformRecord
	for i := len(s.recs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.recs[i])
	}
	return out, nil
}
