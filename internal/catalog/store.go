package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Store holds the current Index snapshot. The index is immutable once built;
// Reload swaps in a fresh one when the catalog changes.
type Store struct {
	mu   sync.RWMutex
	idx  *Index
	repo Repository
	log  zerolog.Logger
}

func NewStore(repo Repository, log zerolog.Logger) *Store {
	return &Store{idx: BuildIndex(nil), repo: repo, log: log}
}

func (s *Store) Index() *Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx
}

// Reload rebuilds the index from storage. On error the previous snapshot
// stays in place; a missing catalog must not fail matching, rows just
// degrade to no-confidence results.
func (s *Store) Reload(ctx context.Context) error {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("catalog reload failed, keeping previous snapshot")
		return err
	}
	idx := BuildIndex(products)
	s.mu.Lock()
	s.idx = idx
	s.mu.Unlock()
	s.log.Info().Int("products", idx.Size()).Msg("catalog index rebuilt")
	return nil
}

// StartReloader rebuilds the index every interval until ctx is done.
func (s *Store) StartReloader(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				_ = s.Reload(ctx)
			}
		}
	}()
}
