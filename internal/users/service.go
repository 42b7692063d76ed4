package users

import (
	"context"
	"strings"
	"time"

	"github.com/solarhub/solarhub-admin/internal/shared"
)

// DefaultPerPage is the user table page size.
const DefaultPerPage = 10

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	ListUsers(ctx context.Context) ([]User, error)
}

// Service handles user directory queries.
type Service struct {
	repo RepositoryPort
	now  func() time.Time
}

// NewService builds Service instance. A nil clock uses time.Now.
func NewService(repo RepositoryPort, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, now: now}
}

// Search filters by name, email or phone and returns one page.
func (s *Service) Search(ctx context.Context, f Filter) ([]User, shared.Pagination, error) {
	all, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	perPage := f.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	page, p := shared.Paginate(Match(all, f.Query), f.Page, perPage)
	return page, p, nil
}

// Latest returns the newest users one page at a time.
func (s *Service) Latest(ctx context.Context, page, perPage int) ([]User, shared.Pagination, error) {
	return s.Search(ctx, Filter{Page: page, PerPage: perPage})
}

// Stats derives the stat tiles relative to the service clock.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	all, err := s.repo.ListUsers(ctx)
	if err != nil {
		return Stats{}, err
	}
	now := s.now()
	stats := Stats{Total: len(all)}
	for _, u := range all {
		if u.HasBVN() {
			stats.WithBVN++
		}
		if u.Joined.Year() == now.Year() && u.Joined.Month() == now.Month() {
			stats.JoinedThisMonth++
		}
	}
	return stats, nil
}

// Match keeps users whose name, email or phone contains q, ignoring case.
func Match(all []User, q string) []User {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return all
	}
	out := make([]User, 0, len(all))
	for _, u := range all {
		if strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(u.Phone, q) {
			out = append(out, u)
		}
	}
	return out
}
