package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanmove/service-mobility/internal/platform/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func run(handler gin.HandlerFunc) (*httptest.ResponseRecorder, Envelope) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)

	var env Envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestError_MapsAppErrors(t *testing.T) {
	w, env := run(func(c *gin.Context) {
		Error(c, fmt.Errorf("wrap: %w", apperror.NewFieldsError("origin")))
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	assert.Equal(t, []string{"origin"}, env.Error.Fields)
}

func TestError_HidesInternalErrors(t *testing.T) {
	w, env := run(func(c *gin.Context) {
		Error(c, errors.New("pq: connection refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", env.Error.Message)
}

func TestPaginated(t *testing.T) {
	w, env := run(func(c *gin.Context) {
		Paginated(c, []string{"a"}, 21, 1, 20)
	})

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.TotalPages)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, StatusFor(apperror.CodeUnavailable))
	assert.Equal(t, http.StatusConflict, StatusFor(apperror.CodeConflict))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(apperror.CodeInternal))
}
