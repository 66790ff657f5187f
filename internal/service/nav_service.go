package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/finsightapp/market-data-backend/internal/amfi"
	"github.com/finsightapp/market-data-backend/internal/cache"
	"github.com/finsightapp/market-data-backend/internal/config"
	"github.com/finsightapp/market-data-backend/internal/model"
)

// NavSource is the upstream abstraction for the NAV flat-file report.
type NavSource interface {
	Fetch(ctx context.Context) (io.ReadCloser, error)
}

// SnapshotStore persists the last good NAV index across restarts. Optional;
// a nil store disables persistence.
type SnapshotStore interface {
	Save(records []model.NavRecord, fetchedAt time.Time) error
	Load() ([]model.NavRecord, time.Time, error)
}

// NavService maintains a scheme-code-keyed index over the AMFI NAV report.
// The index is rebuilt wholesale on refresh and swapped in atomically;
// on any fetch or parse failure the last good index keeps serving, so
// Lookup and Search never raise upstream errors.
type NavService struct {
	source       NavSource
	store        SnapshotStore
	refreshTTL   time.Duration
	popularTTL   time.Duration
	popularCache *cache.Store[[]model.NavRecord]
	log          *logrus.Logger

	// group collapses concurrent refreshes into a single upstream call.
	group singleflight.Group

	mu        sync.RWMutex
	records   []model.NavRecord
	index     map[string]int // scheme code -> position in records
	lastFetch time.Time

	// now is an injection point for tests; defaults to time.Now.
	now func() time.Time
}

// NewNavService creates a NavService. store may be nil to disable snapshot
// persistence.
func NewNavService(
	source NavSource,
	store SnapshotStore,
	popularCache *cache.Store[[]model.NavRecord],
	cfg config.MarketConfig,
	log *logrus.Logger,
) *NavService {
	return &NavService{
		source:       source,
		store:        store,
		refreshTTL:   cfg.NavRefreshInterval,
		popularTTL:   cfg.PopularTTL,
		popularCache: popularCache,
		log:          log,
		index:        make(map[string]int),
		now:          time.Now,
	}
}

// RestoreSnapshot seeds the in-memory index from the persisted snapshot, if
// any. Called once at startup, before the service takes traffic; a restart
// inside the refresh window then serves data without an upstream call.
func (s *NavService) RestoreSnapshot() {
	if s.store == nil {
		return
	}

	records, fetchedAt, err := s.store.Load()
	if err != nil {
		s.log.WithError(err).Warn("failed to restore nav snapshot")
		return
	}
	if len(records) == 0 {
		return
	}

	s.swapIndex(records, fetchedAt)
	s.log.WithFields(logrus.Fields{
		"schemes":    len(records),
		"fetched_at": fetchedAt,
	}).Info("restored nav index from snapshot")
}

// Refresh rebuilds the index from upstream unless the current one is still
// younger than the refresh interval. Failures are logged and absorbed: the
// prior index, possibly empty, keeps serving.
func (s *NavService) Refresh(ctx context.Context) {
	if s.fresh() {
		return
	}

	//nolint:errcheck // refresh never returns an error; failures retain the stale index
	s.group.Do("refresh", func() (interface{}, error) {
		// Re-check under the flight: a waiter that piled up behind the
		// winning call finds the index fresh and skips its own fetch.
		if s.fresh() {
			return nil, nil
		}
		s.refresh(ctx)
		return nil, nil
	})
}

// fresh reports whether the index exists and is younger than the TTL.
func (s *NavService) fresh() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records) > 0 && s.now().Sub(s.lastFetch) < s.refreshTTL
}

// refresh performs the actual fetch-parse-swap cycle.
func (s *NavService) refresh(ctx context.Context) {
	body, err := s.source.Fetch(ctx)
	if err != nil {
		s.log.WithError(err).Warn("nav refresh failed, serving stale index")
		return
	}
	defer body.Close()

	result, err := amfi.Parse(body)
	if err != nil {
		s.log.WithError(err).Warn("nav report unreadable, serving stale index")
		return
	}
	if len(result.Records) == 0 {
		// A report with zero usable records is treated as a bad fetch, not
		// as the market having no funds.
		s.log.WithField("skipped", result.Skipped).Warn("nav report empty, serving stale index")
		return
	}

	fetchedAt := s.now()
	s.swapIndex(result.Records, fetchedAt)

	s.log.WithFields(logrus.Fields{
		"schemes": len(result.Records),
		"skipped": result.Skipped,
	}).Info("refreshed nav index")

	if s.store != nil {
		if err := s.store.Save(result.Records, fetchedAt); err != nil {
			s.log.WithError(err).Warn("failed to persist nav snapshot")
		}
	}
}

// swapIndex atomically replaces the record set and its index. Readers see
// either the old full set or the new full set.
func (s *NavService) swapIndex(records []model.NavRecord, fetchedAt time.Time) {
	index := make(map[string]int, len(records))
	for i, r := range records {
		index[r.SchemeCode] = i
	}

	s.mu.Lock()
	s.records = records
	s.index = index
	s.lastFetch = fetchedAt
	s.mu.Unlock()
}

// Lookup returns the NAV record for a scheme code, refreshing the index
// first if it has gone stale.
func (s *NavService) Lookup(ctx context.Context, schemeCode string) (model.NavRecord, bool) {
	s.Refresh(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[schemeCode]
	if !ok {
		return model.NavRecord{}, false
	}
	return s.records[i], true
}

// Search returns records whose scheme name contains the query
// case-insensitively, in ingestion order, truncated to limit.
func (s *NavService) Search(ctx context.Context, query string, limit int) []model.NavRecord {
	s.Refresh(ctx)

	needle := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []model.NavRecord
	for _, r := range s.records {
		if strings.Contains(strings.ToLower(r.SchemeName), needle) {
			matches = append(matches, r)
			if len(matches) >= limit {
				break
			}
		}
	}
	return matches
}

// Popular returns the curated scheme set, in catalog order, skipping codes
// absent from the index. The assembled list is cached for the popular TTL.
func (s *NavService) Popular(ctx context.Context) []model.NavRecord {
	if cached, ok := s.popularCache.Get("popular_mf", s.popularTTL); ok {
		return cached
	}

	s.Refresh(ctx)

	s.mu.RLock()
	records := make([]model.NavRecord, 0, len(PopularSchemes))
	for _, scheme := range PopularSchemes {
		if i, ok := s.index[scheme.Symbol]; ok {
			records = append(records, s.records[i])
		}
	}
	s.mu.RUnlock()

	s.popularCache.Set("popular_mf", records)
	return records
}

// Stats reports the current index size and the time of the last successful
// refresh, for the health endpoint.
func (s *NavService) Stats() (int, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), s.lastFetch
}
