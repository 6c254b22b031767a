package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karimelhadi/atelierbackend/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(handle func(c *gin.Context)) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handle(c)
	return w
}

func TestFromErrorValidation(t *testing.T) {
	err := &store.ValidationError{Fields: []store.FieldError{
		{Field: "price", Message: "price must be greater than 0", Value: -1.0, Location: "body"},
	}}

	w := perform(func(c *gin.Context) { FromError(c, err) })

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "VALIDATION_ERROR", body.ErrorCode)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "price", body.Errors[0].Field)
	assert.NotEmpty(t, body.Timestamp)
}

func TestFromErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", &store.NotFoundError{Resource: "product", ID: "abc"}, http.StatusNotFound, "NOT_FOUND"},
		{"forbidden", &store.ForbiddenError{Reason: "you do not own this product"}, http.StatusForbidden, "FORBIDDEN"},
		{"duplicate", &store.DuplicateError{Field: "slug"}, http.StatusConflict, "DUPLICATE"},
		{"unknown", assert.AnError, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(func(c *gin.Context) { FromError(c, tt.err) })

			assert.Equal(t, tt.status, w.Code)

			var body ErrorEnvelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.ErrorCode)
			assert.False(t, body.Success)
		})
	}
}

func TestPagedEnvelopeShape(t *testing.T) {
	w := perform(func(c *gin.Context) {
		Paged(c, "ok", []string{"a", "b"}, 2, 10, 25)
	})

	var body SuccessEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 3, body.Pagination.TotalPages)
	assert.True(t, body.Pagination.HasNextPage)
	assert.True(t, body.Pagination.HasPrevPage)
}

// The internal branch must never leak error detail to the caller.
func TestFromErrorInternalIsGeneric(t *testing.T) {
	w := perform(func(c *gin.Context) { FromError(c, assert.AnError) })

	var body ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Something went wrong", body.Message)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}
