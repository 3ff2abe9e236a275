package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/i474232898/activity-weather/internal/weather"
)

var (
	// ErrNotFound is returned when no data is available for a given location.
	ErrNotFound = errors.New("no weather data for location")
)

// MemoryStore is a concurrency-safe in-memory cache of weather snapshots.
// It keeps the latest snapshot per location and horizon, plus a bounded
// history of current observations per location.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key + horizon
	latest map[string]weather.Snapshot
	// key: location key, value: current observations ordered by timestamp
	history map[string][]weather.Observation

	maxHistory   int           // max number of observations per location
	maxAge       time.Duration // optional max age for observations and snapshots
	maxLocations int           // max number of distinct locations held
	now          func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// Any limit <= 0 is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration, maxLocations int) *MemoryStore {
	return &MemoryStore{
		latest:       make(map[string]weather.Snapshot),
		history:      make(map[string][]weather.Observation),
		maxHistory:   maxHistory,
		maxAge:       maxAge,
		maxLocations: maxLocations,
		now:          time.Now,
	}
}

func latestKey(loc weather.Location, horizon weather.Horizon) string {
	return loc.Key() + "/" + string(horizon)
}

// SaveSnapshot replaces the latest snapshot for its location and horizon.
// Current observations are also appended to history and retention enforced.
// Other locations that went stale or overflow the location cap are evicted.
func (s *MemoryStore) SaveSnapshot(snapshot weather.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := snapshot.Location.Key()
	defer s.evict(key)

	s.latest[latestKey(snapshot.Location, snapshot.Horizon)] = snapshot
	if snapshot.Horizon != weather.HorizonCurrent {
		return
	}

	hist := s.history[key]
	for _, obs := range snapshot.Observations {
		// Providers repeat a reading until their next update.
		if n := len(hist); n > 0 && !obs.Timestamp.After(hist[n-1].Timestamp) {
			continue
		}
		hist = append(hist, obs)
	}

	// Enforce retention by count.
	if s.maxHistory > 0 && len(hist) > s.maxHistory {
		hist = hist[len(hist)-s.maxHistory:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(hist); i++ {
			if !hist[i].Timestamp.Before(cutoff) {
				break
			}
		}
		hist = hist[i:]
	}

	s.history[key] = hist
}

// evict drops snapshots fetched before the age cutoff, then the least
// recently fetched locations beyond maxLocations. keep is never evicted.
// Callers must hold the write lock.
func (s *MemoryStore) evict(keep string) {
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		for k, snap := range s.latest {
			if snap.Location.Key() != keep && snap.FetchedAt.Before(cutoff) {
				delete(s.latest, k)
			}
		}
		for k, hist := range s.history {
			if k != keep && (len(hist) == 0 || hist[len(hist)-1].Timestamp.Before(cutoff)) {
				delete(s.history, k)
			}
		}
	}

	if s.maxLocations <= 0 {
		return
	}

	fetched := make(map[string]time.Time)
	for _, snap := range s.latest {
		k := snap.Location.Key()
		if at, ok := fetched[k]; !ok || snap.FetchedAt.After(at) {
			fetched[k] = snap.FetchedAt
		}
	}
	for k := range s.history {
		if _, ok := fetched[k]; !ok {
			fetched[k] = time.Time{}
		}
	}
	if len(fetched) <= s.maxLocations {
		return
	}

	candidates := make([]string, 0, len(fetched))
	for k := range fetched {
		if k != keep {
			candidates = append(candidates, k)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := fetched[candidates[i]], fetched[candidates[j]]
		if !a.Equal(b) {
			return a.Before(b)
		}
		return candidates[i] < candidates[j]
	})

	for _, k := range candidates[:len(fetched)-s.maxLocations] {
		for _, h := range []weather.Horizon{weather.HorizonCurrent, weather.HorizonHourly, weather.HorizonDaily} {
			delete(s.latest, k+"/"+string(h))
		}
		delete(s.history, k)
	}
}

// GetLatest returns the most recent snapshot for a location and horizon.
func (s *MemoryStore) GetLatest(loc weather.Location, horizon weather.Horizon) (weather.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.latest[latestKey(loc, horizon)]
	if !ok {
		return weather.Snapshot{}, ErrNotFound
	}
	return snap, nil
}

// GetRange returns current observations for a location between from and to (inclusive).
func (s *MemoryStore) GetRange(loc weather.Location, from, to time.Time) ([]weather.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hist := s.history[loc.Key()]
	if len(hist) == 0 {
		return nil, ErrNotFound
	}

	var result []weather.Observation
	for _, obs := range hist {
		if !obs.Timestamp.Before(from) && !obs.Timestamp.After(to) {
			result = append(result, obs)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}
