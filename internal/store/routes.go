package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/i474232898/activity-weather/internal/commute"
)

// ErrRouteNotFound is returned when no saved route has the requested id.
var ErrRouteNotFound = errors.New("commute route not found")

// RouteStore holds saved commute routes in creation order.
type RouteStore struct {
	mu     sync.RWMutex
	routes map[string]commute.Route
	order  []string
	newID  func() string
}

// NewRouteStore creates an empty RouteStore.
func NewRouteStore() *RouteStore {
	return &RouteStore{
		routes: make(map[string]commute.Route),
		newID:  uuid.NewString,
	}
}

// Create cleans and validates r, then stores it under a fresh id.
func (s *RouteStore) Create(r commute.Route) (commute.Route, error) {
	r = r.Clean()
	if err := commute.ValidateRoute(r); err != nil {
		return commute.Route{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r.RouteID = s.newID()
	s.routes[r.RouteID] = r
	s.order = append(s.order, r.RouteID)
	return r, nil
}

func (s *RouteStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.routes[id]; !ok {
		return ErrRouteNotFound
	}
	delete(s.routes, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *RouteStore) Get(id string) (commute.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.routes[id]
	if !ok {
		return commute.Route{}, ErrRouteNotFound
	}
	return r, nil
}

// List returns all routes in creation order.
func (s *RouteStore) List() []commute.Route {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]commute.Route, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.routes[id])
	}
	return out
}
