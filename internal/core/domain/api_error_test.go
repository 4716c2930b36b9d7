package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestAPIError_Is(t *testing.T) {
	tests := []struct {
		name    string
		kind    domain.ErrorKind
		matches []error
		misses  []error
	}{
		{
			name:    "network",
			kind:    domain.KindNetwork,
			matches: []error{domain.ErrNetwork},
			misses:  []error{domain.ErrHTTPStatus, domain.ErrNotFound, domain.ErrDecode},
		},
		{
			name:    "not found is a status error",
			kind:    domain.KindNotFound,
			matches: []error{domain.ErrNotFound, domain.ErrHTTPStatus},
			misses:  []error{domain.ErrValidation, domain.ErrNetwork},
		},
		{
			name:    "validation is a status error",
			kind:    domain.KindValidation,
			matches: []error{domain.ErrValidation, domain.ErrHTTPStatus},
			misses:  []error{domain.ErrNotFound},
		},
		{
			name:    "decode",
			kind:    domain.KindDecode,
			matches: []error{domain.ErrDecode},
			misses:  []error{domain.ErrHTTPStatus},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &domain.APIError{Kind: tt.kind, Method: "GET", Path: "/tasks"}
			for _, target := range tt.matches {
				assert.ErrorIs(t, err, target)
			}
			for _, target := range tt.misses {
				assert.NotErrorIs(t, err, target)
			}
		})
	}
}

func TestAPIError_SurvivesWrapping(t *testing.T) {
	apiErr := &domain.APIError{Kind: domain.KindNotFound, Method: "DELETE", Path: "/tasks/1", StatusCode: 404}
	wrapped := zerr.With(zerr.Wrap(apiErr, "failed to delete task"), "id", "1")

	assert.ErrorIs(t, wrapped, domain.ErrNotFound)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(wrapped))
	assert.Equal(t, domain.KindUnknown, domain.KindOf(errors.New("plain")))
}

func TestAPIError_Message(t *testing.T) {
	err := &domain.APIError{
		Kind:       domain.KindHTTPStatus,
		Method:     "GET",
		Path:       "/tasks",
		StatusCode: 503,
		Message:    "maintenance",
	}
	assert.Equal(t, "unexpected http status (GET /tasks -> 503): maintenance", err.Error())
}

func TestAPIError_Retryable(t *testing.T) {
	assert.True(t, (&domain.APIError{Kind: domain.KindNetwork}).Retryable())
	assert.True(t, (&domain.APIError{Kind: domain.KindHTTPStatus, StatusCode: 502}).Retryable())
	assert.True(t, (&domain.APIError{Kind: domain.KindHTTPStatus, StatusCode: 429}).Retryable())
	assert.False(t, (&domain.APIError{Kind: domain.KindHTTPStatus, StatusCode: 409}).Retryable())
	assert.False(t, (&domain.APIError{Kind: domain.KindNotFound, StatusCode: 404}).Retryable())
	assert.False(t, (&domain.APIError{Kind: domain.KindValidation, StatusCode: 422}).Retryable())
	assert.False(t, (&domain.APIError{Kind: domain.KindDecode}).Retryable())
	assert.False(t, domain.IsRetryable(errors.New("plain")))
}
