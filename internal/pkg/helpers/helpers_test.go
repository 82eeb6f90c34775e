package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(3, 20)
	assert.Equal(t, uint64(40), offset)
	assert.Equal(t, 20, limit)

	offset, limit = CalculateOffsetLimit(0, 500)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, DefaultPageSize, limit)
}

func TestNewPaginationInfo(t *testing.T) {
	p := NewPaginationInfo(25, 2, 10)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 2, p.CurrentPage)
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())

	empty := NewPaginationInfo(0, 4, 10)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Equal(t, 1, empty.CurrentPage)
	assert.False(t, empty.HasNext())
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		target   string
		wantPage int
		wantSize int
	}{
		{"explicit values", "/jobs?page=2&size=5", 2, 5},
		{"invalid values fall back", "/jobs?page=-1&size=abc", DefaultPage, DefaultPageSize},
		{"size above max", "/jobs?page=3&size=500", 3, DefaultPageSize},
		{"missing params", "/jobs", DefaultPage, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", tt.target, nil)

			page, size := ParsePaginationParams(c)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%go dev%", LikePattern("  Go Dev "))
	assert.Equal(t, `%100\%\_ok%`, LikePattern("100%_ok"))
}

func TestGetNullInt64(t *testing.T) {
	zero := int64(0)
	seven := int64(7)

	assert.False(t, GetNullInt64(nil).Valid)
	assert.False(t, GetNullInt64(&zero).Valid)
	assert.Equal(t, int64(7), GetNullInt64(&seven).Int64)
	assert.Equal(t, &seven, Int64Ptr(GetNullInt64(&seven)))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("1h30m", time.Second))
	assert.Equal(t, time.Second, ParseDuration("later", time.Second))
}
