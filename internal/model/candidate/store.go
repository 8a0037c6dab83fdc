package candidate

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("candidate not found")
	ErrInvalidStatus = errors.New("invalid candidate status")
)

// maxTopDomains caps the domain breakdown returned by Stats.
const maxTopDomains = 10

// Store exposes candidate retrieval and status updates for the service layer.
type Store interface {
	List() []Candidate
	FindByID(id string) (Candidate, bool)
	UpdateStatus(id string, status Status) (Candidate, error)
	Stats() Stats
	Search(query string) []Candidate
}

// DomainCount is one row of the domain breakdown.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// Stats summarises the collection at the time of the call.
type Stats struct {
	Total      int            `json:"total"`
	ByStatus   map[Status]int `json:"byStatus"`
	TopDomains []DomainCount  `json:"topDomains"`
}

// Option customises a MemoryStore.
type Option func(*MemoryStore)

// WithClock overrides the time source used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// MemoryStore implements Store with an in-memory slice guarded by a RWMutex.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Candidate
	now   func() time.Time
}

// NewMemoryStore materialises candidates from the seed entries, in order.
func NewMemoryStore(entries []SeedEntry, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	createdAt := s.now()
	s.items = make([]Candidate, 0, len(entries))
	for _, entry := range entries {
		s.items = append(s.items, Candidate{
			ID:        uuid.NewString(),
			Email:     entry.Email,
			Domain:    ExtractDomain(entry.Email),
			AppliedAt: entry.AppliedAt,
			Status:    StatusPending,
			CreatedAt: createdAt,
		})
	}
	return s
}

// List returns a copy of every candidate in insertion order.
func (s *MemoryStore) List() []Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Candidate(nil), s.items...)
}

// FindByID looks up a candidate by identifier.
func (s *MemoryStore) FindByID(id string) (Candidate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Candidate{}, false
}

// UpdateStatus sets the status and stamps updatedAt, even when the status is unchanged.
func (s *MemoryStore) UpdateStatus(id string, status Status) (Candidate, error) {
	if !status.Valid() {
		return Candidate{}, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		s.items[i].Status = status
		s.items[i].UpdatedAt = s.now()
		return s.items[i], nil
	}
	return Candidate{}, ErrNotFound
}

// Stats counts candidates by status and ranks domains by frequency.
// Domains with equal counts keep the order in which they were first seen.
func (s *MemoryStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byStatus := make(map[Status]int)
	domainCounts := make(map[string]int)
	var domains []string
	for _, item := range s.items {
		byStatus[item.Status]++
		if _, seen := domainCounts[item.Domain]; !seen {
			domains = append(domains, item.Domain)
		}
		domainCounts[item.Domain]++
	}

	top := make([]DomainCount, 0, len(domains))
	for _, domain := range domains {
		top = append(top, DomainCount{Domain: domain, Count: domainCounts[domain]})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if len(top) > maxTopDomains {
		top = top[:maxTopDomains]
	}

	return Stats{
		Total:      len(s.items),
		ByStatus:   byStatus,
		TopDomains: top,
	}
}

// Search returns candidates whose email or domain contains query.
// The query is expected in lower case.
func (s *MemoryStore) Search(query string) []Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]Candidate, 0)
	for _, item := range s.items {
		if strings.Contains(strings.ToLower(item.Email), query) ||
			strings.Contains(strings.ToLower(item.Domain), query) {
			matches = append(matches, item)
		}
	}
	return matches
}
