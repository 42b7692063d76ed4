package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorStatuses(t *testing.T) {
	cases := map[error]int{
		fmt.Errorf("%w: x", ErrBadRequest): http.StatusBadRequest,
		ErrNotFound:                        http.StatusNotFound,
		ErrValidation:                      http.StatusUnprocessableEntity,
		ErrForbidden:                       http.StatusForbidden,
		ErrUnauthorized:                    http.StatusUnauthorized,
		errors.New("db exploded"):          http.StatusInternalServerError,
	}
	for err, want := range cases {
		rec := httptest.NewRecorder()
		RespondError(rec, err)
		assert.Equal(t, want, rec.Code, err.Error())

		var body ProblemDetail
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, want, body.Status)
		if want == http.StatusInternalServerError {
			assert.Empty(t, body.Detail)
		}
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	var target struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","extra":1}`))
	err := DecodeJSON(httptest.NewRecorder(), req, &target)
	assert.ErrorIs(t, err, ErrBadRequest)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(httptest.NewRecorder(), req, &target))
	assert.Equal(t, "x", target.Name)
}
