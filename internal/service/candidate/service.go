package candidate

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/zhouzirui/candidate-desk/backend/internal/model/candidate"
	"github.com/zhouzirui/candidate-desk/backend/internal/service/feed"
)

var (
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrInvalidStatus     = errors.New("invalid status: must be pending, selected, or rejected")
	ErrQueryTooShort     = errors.New("search query must be at least 2 characters")
)

const (
	DefaultPage       = 1
	DefaultPageSize   = 10
	MinSearchQueryLen = 2
)

// Publisher receives status-change events.
type Publisher interface {
	Publish(evt feed.Event)
}

// Recorder receives usage counters.
type Recorder interface {
	IncrementStatusUpdates(status string)
	IncrementSearches()
}

// Service applies request-level rules on top of the candidate store.
type Service struct {
	store           candidate.Store
	publisher       Publisher
	recorder        Recorder
	logger          *zap.Logger
	defaultPageSize int
}

// Option customises a Service.
type Option func(*Service)

// WithPublisher forwards status changes to p.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithRecorder records usage counters on r.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaultPageSize changes the limit used when a request does not specify one.
func WithDefaultPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultPageSize = n
		}
	}
}

// NewService wires the service around store.
func NewService(store candidate.Store, opts ...Option) *Service {
	s := &Service{
		store:           store,
		logger:          zap.NewNop(),
		defaultPageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Query selects one page of the filtered candidate list.
type Query struct {
	Page   int
	Limit  int
	Status candidate.Status
	Domain string
}

// Pagination is the metadata returned alongside a page.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

// Page is one slice of the filtered list.
type Page struct {
	Data       []candidate.Candidate `json:"data"`
	Pagination Pagination            `json:"pagination"`
}

// SearchResult holds search matches and their count.
type SearchResult struct {
	Data  []candidate.Candidate `json:"data"`
	Count int                   `json:"count"`
}

// ParseStatus validates a raw status value.
func ParseStatus(raw string) (candidate.Status, error) {
	status := candidate.Status(raw)
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ParsePageQuery reads page, limit, status and domain from query parameters.
// Missing or non-positive page/limit values fall back to the defaults.
func (s *Service) ParsePageQuery(values url.Values) (Query, error) {
	q := Query{
		Page:   positiveIntOr(values.Get("page"), DefaultPage),
		Limit:  positiveIntOr(values.Get("limit"), s.defaultPageSize),
		Domain: values.Get("domain"),
	}
	if raw := values.Get("status"); raw != "" {
		status, err := ParseStatus(raw)
		if err != nil {
			return Query{}, err
		}
		q.Status = status
	}
	return q, nil
}

func positiveIntOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// List filters by status and domain, then paginates the result.
func (s *Service) List(_ context.Context, q Query) Page {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = s.defaultPageSize
	}

	items := s.store.List()
	filtered := items[:0]
	for _, item := range items {
		if q.Status != "" && item.Status != q.Status {
			continue
		}
		if q.Domain != "" && item.Domain != q.Domain {
			continue
		}
		filtered = append(filtered, item)
	}

	total := len(filtered)
	totalPages := total / q.Limit
	if total%q.Limit != 0 {
		totalPages++
	}

	// Multiply only once the offset is known to lie within the list.
	start := total
	if q.Page-1 <= total/q.Limit {
		start = min((q.Page-1)*q.Limit, total)
	}
	end := start + min(q.Limit, total-start)

	return Page{
		Data: append([]candidate.Candidate{}, filtered[start:end]...),
		Pagination: Pagination{
			CurrentPage:  q.Page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: q.Limit,
			HasNextPage:  q.Page < totalPages,
			HasPrevPage:  q.Page > 1,
		},
	}
}

// Get returns a single candidate.
func (s *Service) Get(_ context.Context, id string) (candidate.Candidate, error) {
	item, ok := s.store.FindByID(id)
	if !ok {
		return candidate.Candidate{}, ErrCandidateNotFound
	}
	return item, nil
}

// UpdateStatus validates rawStatus, applies it and announces the change.
func (s *Service) UpdateStatus(_ context.Context, id, rawStatus string) (candidate.Candidate, error) {
	status, err := ParseStatus(rawStatus)
	if err != nil {
		return candidate.Candidate{}, err
	}

	previous, ok := s.store.FindByID(id)
	if !ok {
		return candidate.Candidate{}, ErrCandidateNotFound
	}

	updated, err := s.store.UpdateStatus(id, status)
	switch {
	case errors.Is(err, candidate.ErrNotFound):
		return candidate.Candidate{}, ErrCandidateNotFound
	case errors.Is(err, candidate.ErrInvalidStatus):
		return candidate.Candidate{}, ErrInvalidStatus
	case err != nil:
		return candidate.Candidate{}, fmt.Errorf("update candidate %s: %w", id, err)
	}

	s.logger.Info("candidate status updated",
		zap.String("candidate", id),
		zap.String("from", string(previous.Status)),
		zap.String("to", string(status)))

	if s.recorder != nil {
		s.recorder.IncrementStatusUpdates(string(status))
	}
	if s.publisher != nil {
		s.publisher.Publish(feed.Event{
			Type:           feed.EventStatus,
			Candidate:      updated,
			PreviousStatus: previous.Status,
			At:             updated.UpdatedAt,
		})
	}
	return updated, nil
}

// Stats returns the current collection statistics.
func (s *Service) Stats(_ context.Context) candidate.Stats {
	return s.store.Stats()
}

// Search trims and lower-cases raw before matching emails and domains.
func (s *Service) Search(_ context.Context, raw string) (SearchResult, error) {
	query := strings.TrimSpace(raw)
	if len([]rune(query)) < MinSearchQueryLen {
		return SearchResult{}, ErrQueryTooShort
	}

	if s.recorder != nil {
		s.recorder.IncrementSearches()
	}
	results := s.store.Search(strings.ToLower(query))
	return SearchResult{Data: results, Count: len(results)}, nil
}
