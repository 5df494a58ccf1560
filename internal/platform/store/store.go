package store

import (
	"sync"
	"time"

	"stickr/internal/engine/stickers"
)

// BatchStore keeps completed batches in memory until their TTL runs out, so
// the preview and download endpoints can serve a run after it finishes.
// Nothing here touches disk: the archive is the only artifact a run leaves
// behind, and it lives exactly as long as the TTL.
type BatchStore struct {
	store sync.Map // map[batch_id]*entry
	ttl   time.Duration
}

type entry struct {
	batch    *stickers.Batch
	storedAt time.Time
}

func NewBatchStore(ttl time.Duration) *BatchStore {
	return &BatchStore{ttl: ttl}
}

func (s *BatchStore) Put(batch *stickers.Batch) {
	s.store.Store(batch.ID, &entry{batch: batch, storedAt: time.Now()})
}

func (s *BatchStore) Get(id string) (*stickers.Batch, bool) {
	val, ok := s.store.Load(id)
	if !ok {
		return nil, false
	}

	e := val.(*entry)
	if time.Since(e.storedAt) > s.ttl {
		s.store.Delete(id)
		return nil, false
	}

	return e.batch, true
}

// Len counts live batches, evicting expired ones as it goes.
func (s *BatchStore) Len() int {
	count := 0
	now := time.Now()
	s.store.Range(func(key, val interface{}) bool {
		e := val.(*entry)
		if now.Sub(e.storedAt) > s.ttl {
			s.store.Delete(key)
			return true
		}
		count++
		return true
	})
	return count
}
