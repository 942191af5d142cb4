package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf_WrappedError(t *testing.T) {
	err := fmt.Errorf("saving route: %w", NewConflictError("stale version"))

	assert.Equal(t, CodeConflict, CodeOf(err))
	assert.True(t, Is(err, CodeConflict))
	assert.False(t, Is(err, CodeNotFound))
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	assert.False(t, Is(nil, CodeInternal))
}

func TestNewFieldsError(t *testing.T) {
	err := NewFieldsError("origin", "modes")

	assert.Equal(t, CodeValidation, err.Code)
	assert.Equal(t, []string{"origin", "modes"}, err.Fields)
	assert.Contains(t, err.Error(), "origin, modes")
}

func TestUnavailableError_Unwraps(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := NewUnavailableError("places", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "places unavailable: dial tcp: timeout", err.Error())
}

func TestNewPaginatedResult(t *testing.T) {
	res := NewPaginatedResult[int](nil, 41, 2, 20)

	assert.Equal(t, 3, res.TotalPages)
	assert.NotNil(t, res.Items)

	page, limit := NormalizePage(0, 500)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}
