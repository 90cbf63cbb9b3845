package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestErrorMirrorsCodeAndAttachesRequestID(t *testing.T) {
	c, w := newContext()
	c.Set(RequestIDKey, "req-1")

	Error(c, CodeConflict, "slug already exists")

	assert.Equal(t, http.StatusConflict, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, CodeConflict, body["status_code"])
	assert.Equal(t, "slug already exists", body["msg"])
	assert.Equal(t, map[string]interface{}{"request_id": "req-1"}, body["data"])
}

func TestAbortStopsChain(t *testing.T) {
	c, w := newContext()
	Abort(c, CodeUnauthorized, "login required")
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSuccessWithPage(t *testing.T) {
	c, w := newContext()
	SuccessWithPage(c, []int{1, 2}, NewPagination(2, 25, 51))

	assert.Equal(t, http.StatusOK, w.Code)
	var body PageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, CodeOK, body.StatusCode)
	assert.Equal(t, Pagination{Page: 2, PageSize: 25, Total: 51, TotalPage: 3}, body.Pagination)
}

func TestNewPaginationClampsPage(t *testing.T) {
	assert.Equal(t, 1, NewPagination(0, 10, 0).Page)
	assert.Equal(t, int64(0), NewPagination(1, 0, 5).TotalPage)
}

func TestAppErrorUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := WrapError(CodeInternal, "internal error", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal error: boom", err.Error())
	assert.Equal(t, "bare", WrapError(CodeBadRequest, "bare", nil).Error())
}
