package auth

import "errors"

// ErrInvalidCredentials indicates the backend rejected the login.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// Admin is the signed-in operator as reported by the backend.
type Admin struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResult is the data block of POST /admin/login.
type LoginResult struct {
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}
