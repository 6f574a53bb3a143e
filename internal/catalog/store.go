package catalog

import (
	"sync"
	"sync/atomic"

	"carcatalog/pkg/models"
)

// generation is one immutable state of the store. Load builds a new one and
// swaps it in; nothing inside a published generation is ever written again.
type generation struct {
	records []models.CatalogRecord
	byID    map[int64]int
}

// Store holds catalog records in memory.
//
// Loads are serialized on mu. Readers never take a lock: they load the
// current generation and scan it, so a batch is either fully visible or not
// at all.
type Store struct {
	mu  sync.Mutex
	cur atomic.Pointer[generation]
}

func NewStore() *Store {
	s := &Store{}
	s.cur.Store(&generation{byID: map[int64]int{}})
	return s
}

// Load appends records and returns how many were added. A record whose ID is
// already stored (or repeated inside the batch) is skipped.
func (s *Store) Load(records []models.CatalogRecord) int {
	if len(records) == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.cur.Load()
	next := &generation{
		records: make([]models.CatalogRecord, len(old.records), len(old.records)+len(records)),
		byID:    make(map[int64]int, len(old.byID)+len(records)),
	}
	copy(next.records, old.records)
	for id, i := range old.byID {
		next.byID[id] = i
	}

	added := 0
	for _, r := range records {
		if _, exists := next.byID[r.ID]; exists {
			continue
		}
		next.byID[r.ID] = len(next.records)
		next.records = append(next.records, r)
		added++
	}
	if added > 0 {
		s.cur.Store(next)
	}
	return added
}

func (s *Store) Size() int {
	return len(s.cur.Load().records)
}

// Snapshot returns the records visible right now. Later loads never change
// the returned slice; callers must treat it as read-only.
func (s *Store) Snapshot() []models.CatalogRecord {
	g := s.cur.Load()
	return g.records[:len(g.records):len(g.records)]
}

func (s *Store) Get(id int64) (models.CatalogRecord, bool) {
	g := s.cur.Load()
	i, ok := g.byID[id]
	if !ok {
		return models.CatalogRecord{}, false
	}
	return g.records[i], true
}
