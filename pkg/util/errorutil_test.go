package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorMapsMissingRowsTo404(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"pgx sentinel", pgx.ErrNoRows},
		{"sql sentinel", sql.ErrNoRows},
		{"wrapped pgx sentinel", fmt.Errorf("get report: %w", pgx.ErrNoRows)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			domainErr := ToDomainError(tc.err)
			require.NotNil(t, domainErr)
			assert.Equal(t, "NOT_FOUND", domainErr.Code)
			assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
		})
	}
}

func TestToDomainErrorPassesDomainErrorsThrough(t *testing.T) {
	original := NewConflict("email already registered", map[string]any{"email": "a@b.example"})
	domainErr := ToDomainError(original)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)

	wrapped := fmt.Errorf("signup: %w", original)
	assert.Equal(t, "CONFLICT", ToDomainError(wrapped).Code)
}

func TestToDomainErrorDefaultsToInternal(t *testing.T) {
	domainErr := ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.Nil(t, ToDomainError(nil))
}
