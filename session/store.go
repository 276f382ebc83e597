// Package session keeps per-browser-session results in memory.
//
// Nothing is persisted: sessions are evicted least-recently-used once the
// store is full and disappear with the process. Each session keeps its most
// recent results only, so memory is bounded by capacity times the result cap.
package session

import (
	"container/list"
	"sync"

	"github.com/google/uuid"

	"github.com/viant/checklister/service"
)

const (
	// DefaultCapacity is the number of sessions kept when none is configured.
	DefaultCapacity = 256
	// DefaultMaxResults is the number of results kept per session when none is configured.
	DefaultMaxResults = 50
)

// Option configures a Store.
type Option func(*Store)

// WithMaxResults caps the results kept per session; the oldest are dropped first.
func WithMaxResults(n int) Option {
	return func(s *Store) { s.maxResults = n }
}

// Store is a bounded LRU of sessions.
type Store struct {
	mu         sync.Mutex
	cap        int
	maxResults int
	ll         *list.List
	items      map[string]*list.Element
}

type entry struct {
	id      string
	results []*service.Result
}

// New creates a Store holding up to capacity sessions.
func New(capacity int, opts ...Option) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store{
		cap:   capacity,
		ll:    list.New(),
		items: make(map[string]*list.Element, capacity),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxResults <= 0 {
		s.maxResults = DefaultMaxResults
	}
	return s
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// Valid reports whether id looks like a session id issued by NewID.
func Valid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Results returns the results of session id, in upload order.
func (s *Store) Results(id string) []*service.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.items[id]
	if !ok {
		return nil
	}
	s.ll.MoveToFront(el)
	results := el.Value.(*entry).results
	out := make([]*service.Result, len(results))
	copy(out, results)
	return out
}

// Append adds results to session id, creating the session when needed.
func (s *Store) Append(id string, results ...*service.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.items[id]; ok {
		e := el.Value.(*entry)
		e.results = s.keepLatest(append(e.results, results...))
		s.ll.MoveToFront(el)
		return
	}
	el := s.ll.PushFront(&entry{id: id, results: s.keepLatest(append([]*service.Result(nil), results...))})
	s.items[id] = el
	if s.ll.Len() > s.cap {
		back := s.ll.Back()
		if back != nil {
			s.ll.Remove(back)
			delete(s.items, back.Value.(*entry).id)
		}
	}
}

// keepLatest drops the oldest results beyond maxResults, copying so the
// dropped workbooks are not pinned by the backing array.
func (s *Store) keepLatest(results []*service.Result) []*service.Result {
	if len(results) <= s.maxResults {
		return results
	}
	return append([]*service.Result(nil), results[len(results)-s.maxResults:]...)
}

// Lookup returns the result with resultID from session id.
func (s *Store) Lookup(id, resultID string) (*service.Result, bool) {
	for _, res := range s.Results(id) {
		if res.ID == resultID {
			return res, true
		}
	}
	return nil, false
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ll.Len()
}
