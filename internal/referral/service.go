package referral

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/solarhub/solarhub-admin/internal/backend"
)

const (
	settingsPath = "/admin/referral/settings"
	listPath     = "/admin/referral/list"
	userPath     = "/admin/referral/user/"
)

// API is the subset of the backend client the referral service needs.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Put(ctx context.Context, path string, body, out any) error
}

// Service wraps the referral admin endpoints.
type Service struct {
	api API
}

// NewService builds Service instance.
func NewService(api API) *Service {
	return &Service{api: api}
}

// List fetches one page of referrers.
func (s *Service) List(ctx context.Context, q ListQuery) (List, error) {
	var env backend.Envelope[backend.Page[Referrer]]
	if err := s.api.Get(ctx, listPath, q.Values(), &env); err != nil {
		return List{}, fmt.Errorf("referral: list: %w", err)
	}
	q = q.Normalize()
	p := env.Data.Pagination
	info := PageInfo{CurrentPage: p.CurrentPage, PerPage: p.PerPage, Total: p.Total, LastPage: p.LastPage}
	if info.CurrentPage < 1 {
		info.CurrentPage = q.Page
	}
	if info.PerPage < 1 {
		info.PerPage = q.PerPage
	}
	if info.LastPage < 1 && info.Total > 0 {
		info.LastPage = (info.Total + info.PerPage - 1) / info.PerPage
	}
	referrers := env.Data.Data
	if referrers == nil {
		referrers = []Referrer{}
	}
	return List{Referrers: referrers, Page: info}, nil
}

// Settings fetches the current commission rules.
func (s *Service) Settings(ctx context.Context) (Settings, error) {
	var env backend.Envelope[Settings]
	if err := s.api.Get(ctx, settingsPath, nil, &env); err != nil {
		return Settings{}, fmt.Errorf("referral: settings: %w", err)
	}
	return env.Data, nil
}

// UpdateSettings validates the form and, only when valid, sends the update.
// Validation failures return the field errors and a nil error.
func (s *Service) UpdateSettings(ctx context.Context, form SettingsForm) (FieldErrors, error) {
	update, errs := ValidateSettings(form)
	if len(errs) > 0 {
		return errs, nil
	}
	if err := s.api.Put(ctx, settingsPath, update, nil); err != nil {
		return nil, fmt.Errorf("referral: update settings: %w", err)
	}
	return nil, nil
}

// UserDetail fetches a single referrer with the users they referred.
func (s *Service) UserDetail(ctx context.Context, userID int64) (Detail, error) {
	var env backend.Envelope[Detail]
	if err := s.api.Get(ctx, userPath+strconv.FormatInt(userID, 10), nil, &env); err != nil {
		return Detail{}, fmt.Errorf("referral: user %d: %w", userID, err)
	}
	return env.Data, nil
}
