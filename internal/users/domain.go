// Package users serves the user management directory.
package users

import "time"

// User is one row of the user directory.
type User struct {
	ID     int64
	Name   string
	Email  string
	Phone  string
	BVN    string
	Joined time.Time
}

// HasBVN reports whether the user has linked a bank verification number.
func (u User) HasBVN() bool {
	return u.BVN != ""
}

// Stats summarises the directory for the stat tiles.
type Stats struct {
	Total           int
	WithBVN         int
	JoinedThisMonth int
}

// Filter narrows and pages the directory.
type Filter struct {
	Query   string
	Page    int
	PerPage int
}
