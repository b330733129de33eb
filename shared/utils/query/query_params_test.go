package query

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParseQueryParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		params := ParseQueryParams(testContext(""))

		assert.Equal(t, 1, params.Page)
		assert.Equal(t, 10, params.Limit)
		assert.Equal(t, "created_at", params.Sort.Field)
		assert.Equal(t, "desc", params.Sort.Order)
		assert.Empty(t, params.Filters)
		assert.Empty(t, params.Search)
	})

	t.Run("filters and sort", func(t *testing.T) {
		params := ParseQueryParams(testContext("page=2&limit=25&search=acme&filters[status]=active&filters[tier]=growth&sort[field]=name&sort[order]=asc"))

		assert.Equal(t, 2, params.Page)
		assert.Equal(t, 25, params.Limit)
		assert.Equal(t, "acme", params.Search)
		assert.Equal(t, map[string]string{"status": "active", "tier": "growth"}, params.Filters)
		assert.Equal(t, "name", params.Sort.Field)
		assert.Equal(t, "asc", params.Sort.Order)
	})

	t.Run("bounds clamped", func(t *testing.T) {
		params := ParseQueryParams(testContext("page=0&limit=500&sort[order]=sideways"))

		assert.Equal(t, 1, params.Page)
		assert.Equal(t, 100, params.Limit)
		assert.Equal(t, "desc", params.Sort.Order)
	})

	t.Run("empty filter values dropped", func(t *testing.T) {
		params := ParseQueryParams(testContext("filters[status]="))
		assert.Empty(t, params.Filters)
	})
}

func TestBuildPaginationResponse(t *testing.T) {
	resp := BuildPaginationResponse(2, 10, 35)

	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, int64(35), resp.Total)
	assert.Equal(t, int64(4), resp.TotalPages)
	assert.True(t, resp.HasNext)
	assert.True(t, resp.HasPrev)

	first := BuildPaginationResponse(1, 10, 5)
	assert.Equal(t, int64(1), first.TotalPages)
	assert.False(t, first.HasNext)
	assert.False(t, first.HasPrev)
}
