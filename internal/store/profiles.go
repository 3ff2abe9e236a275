package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/i474232898/activity-weather/internal/activity"
)

// ErrProfileNotFound is returned when no profile has the requested id.
var ErrProfileNotFound = errors.New("activity profile not found")

// ProfileStore is a concurrency-safe in-memory set of activity profiles
// that preserves creation order.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]activity.Profile
	order    []string
	newID    func() string
}

// NewProfileStore creates an empty ProfileStore.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[string]activity.Profile),
		newID:    uuid.NewString,
	}
}

// Create validates p, assigns it a fresh id and stores it.
func (s *ProfileStore) Create(p activity.Profile) (activity.Profile, error) {
	if err := activity.ValidateProfile(p); err != nil {
		return activity.Profile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p.ProfileID = s.newID()
	s.profiles[p.ProfileID] = p
	s.order = append(s.order, p.ProfileID)
	return p, nil
}

// Update replaces the activity type and preferences of an existing profile.
// The id is never changed.
func (s *ProfileStore) Update(id string, p activity.Profile) (activity.Profile, error) {
	if err := activity.ValidateProfile(p); err != nil {
		return activity.Profile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[id]; !ok {
		return activity.Profile{}, ErrProfileNotFound
	}
	p.ProfileID = id
	s.profiles[id] = p
	return p, nil
}

// Patch applies fn to a copy of an existing profile and stores the result
// if it still validates. The id is never changed.
func (s *ProfileStore) Patch(id string, fn func(activity.Profile) activity.Profile) (activity.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.profiles[id]
	if !ok {
		return activity.Profile{}, ErrProfileNotFound
	}
	p := fn(current)
	p.ProfileID = id
	if err := activity.ValidateProfile(p); err != nil {
		return activity.Profile{}, err
	}
	s.profiles[id] = p
	return p, nil
}

// Delete removes a profile.
func (s *ProfileStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[id]; !ok {
		return ErrProfileNotFound
	}
	delete(s.profiles, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns a single profile.
func (s *ProfileStore) Get(id string) (activity.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return activity.Profile{}, ErrProfileNotFound
	}
	return p, nil
}

// List returns all profiles in creation order.
func (s *ProfileStore) List() []activity.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]activity.Profile, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.profiles[id])
	}
	return out
}
