package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"blogcms/internal/response"
	"blogcms/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestToAppErrorMapsServiceErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{services.ErrNotFound, response.CodeNotFound},
		{fmt.Errorf("update: %w", services.ErrSlugExists), response.CodeConflict},
		{fmt.Errorf("%w: title is required", services.ErrInvalidInput), response.CodeBadRequest},
		{services.ErrInvalidPassword, response.CodeUnauthorized},
		{services.ErrAdminDisabled, response.CodeUnauthorized},
		{response.WrapError(response.CodeBadRequest, "custom", nil), response.CodeBadRequest},
		{errors.New("db down"), response.CodeInternal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, toAppError(tc.err).Code, tc.err.Error())
	}
}

func TestParseIDRejectsNonPositive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, raw := range []string{"0", "-1", "abc"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Params = gin.Params{{Key: "id", Value: raw}}

		_, ok := parseID(c)
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusNotFound, w.Code, raw)
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, ok := parseID(c)
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)
}
