package users

import (
	"context"
	"sort"
)

// Repository serves users from a fixed in-memory set.
type Repository struct {
	users []User
}

// NewRepository returns a repository seeded with users, newest first.
func NewRepository(users []User) *Repository {
	sorted := append([]User(nil), users...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Joined.After(sorted[j].Joined)
	})
	return &Repository{users: sorted}
}

// NewSampleRepository returns the demo directory.
func NewSampleRepository() *Repository {
	return NewRepository(SampleUsers())
}

// ListUsers returns a copy of every user, newest first.
func (r *Repository) ListUsers(ctx context.Context) ([]User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]User(nil), r.users...), nil
}
