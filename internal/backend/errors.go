package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// GenericErrorMessage is shown when the backend gives no usable message.
const GenericErrorMessage = "Something went wrong, please try again"

var (
	// ErrUnauthorized matches APIErrors for 401 responses.
	ErrUnauthorized = errors.New("backend: unauthorized")
	// ErrNotFound matches APIErrors for 404 responses.
	ErrNotFound = errors.New("backend: not found")
	// ErrMissingToken is returned before any call is made without a token.
	ErrMissingToken = errors.New("backend: missing bearer token")
)

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: status %d: %s", e.Status, e.Message)
}

// Is lets errors.Is match on status sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

type errorBody struct {
	Message string `json:"message"`
	Data    struct {
		Message string `json:"message"`
	} `json:"data"`
}

// decodeError builds an APIError from a failed response body.
func decodeError(status int, body []byte) *APIError {
	// Type mismatches still fill the fields that did decode.
	var parsed errorBody
	_ = json.Unmarshal(body, &parsed)
	if msg := strings.TrimSpace(parsed.Message); msg != "" {
		return &APIError{Status: status, Message: msg}
	}
	if msg := strings.TrimSpace(parsed.Data.Message); msg != "" {
		return &APIError{Status: status, Message: msg}
	}
	return &APIError{Status: status, Message: GenericErrorMessage}
}

// UserMessage extracts the best message for display from any error.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericErrorMessage
}
