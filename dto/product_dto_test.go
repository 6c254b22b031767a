package dto

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A zero price or empty images list must survive binding so the store
// validator can report them per field instead of a bare bind error.
func TestCreateProductBindingDefersFieldChecks(t *testing.T) {
	body := `{"name":"","price":0,"description":"","images":[]}`
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	var in CreateProductDTO
	require.NoError(t, binding.JSON.Bind(req, &in))
	assert.Zero(t, in.Price)
	assert.Empty(t, in.Images)
}
