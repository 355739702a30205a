// internal/search/cachekey_test.go
package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"jobboard-api/internal/models"
)

func intPtr(v int) *int { return &v }

func baseRequest() *models.SearchRequest {
	return &models.SearchRequest{
		Page:    1,
		PerPage: models.SearchPageSizeDefault,
		Sort:    models.SortByCreatedAt,
		Order:   models.SortDesc,
	}
}

// ==========================
// Key Shape
// ==========================

func TestCacheKey_Format(t *testing.T) {
	key := CacheKey(baseRequest())

	assert.True(t, strings.HasPrefix(key, "job_search:"))
	// md5 hex digest after the prefix
	assert.Len(t, strings.TrimPrefix(key, "job_search:"), 32)
}

func TestJobCacheKey(t *testing.T) {
	assert.Equal(t, "job:42", JobCacheKey(42))
}

// ==========================
// Determinism
// ==========================

func TestCacheKey_EqualRequestsEqualKeys(t *testing.T) {
	a := baseRequest()
	a.Query = "golang"
	a.LocationID = intPtr(3)
	a.TagIDs = []int{1, 2}

	b := baseRequest()
	b.Query = "golang"
	b.LocationID = intPtr(3)
	b.TagIDs = []int{1, 2}

	assert.Equal(t, CacheKey(a), CacheKey(b))
}

func TestCacheKey_StableAcrossCalls(t *testing.T) {
	req := baseRequest()
	req.Query = "backend engineer"
	req.SalaryMin = intPtr(50000)

	first := CacheKey(req)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CacheKey(req))
	}
}

// ==========================
// Sensitivity
// ==========================

func TestCacheKey_DiffersOnAnyParameter(t *testing.T) {
	base := CacheKey(baseRequest())

	tests := []struct {
		name   string
		mutate func(r *models.SearchRequest)
	}{
		{"query", func(r *models.SearchRequest) { r.Query = "golang" }},
		{"location", func(r *models.SearchRequest) { r.LocationID = intPtr(1) }},
		{"work type", func(r *models.SearchRequest) { r.WorkTypeID = intPtr(1) }},
		{"experience level", func(r *models.SearchRequest) { r.ExperienceLevel = "Senior" }},
		{"industry", func(r *models.SearchRequest) { r.Industry = "fintech" }},
		{"tags", func(r *models.SearchRequest) { r.TagIDs = []int{7} }},
		{"salary min", func(r *models.SearchRequest) { r.SalaryMin = intPtr(1000) }},
		{"salary max", func(r *models.SearchRequest) { r.SalaryMax = intPtr(9000) }},
		{"page", func(r *models.SearchRequest) { r.Page = 2 }},
		{"per page", func(r *models.SearchRequest) { r.PerPage = 20 }},
		{"sort", func(r *models.SearchRequest) { r.Sort = models.SortBySalaryMin }},
		{"order", func(r *models.SearchRequest) { r.Order = models.SortAsc }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(req)
			assert.NotEqual(t, base, CacheKey(req))
		})
	}
}

func TestCacheKey_PagesDoNotCollide(t *testing.T) {
	seen := map[string]int{}
	for page := 1; page <= 50; page++ {
		req := baseRequest()
		req.Page = page
		key := CacheKey(req)
		if prev, ok := seen[key]; ok {
			t.Fatalf("page %d collides with page %d", page, prev)
		}
		seen[key] = page
	}
}

// ==========================
// Absent vs Empty
// ==========================

func TestCacheKey_AbsentAndEmptyCollapse(t *testing.T) {
	absent := baseRequest() // nil TagIDs, empty strings, nil pointers

	empty := baseRequest()
	empty.TagIDs = []int{}
	empty.Query = ""
	empty.Industry = ""

	assert.Equal(t, CacheKey(absent), CacheKey(empty))
}

// ==========================
// Benchmark
// ==========================

func BenchmarkCacheKey(b *testing.B) {
	req := baseRequest()
	req.Query = "senior golang engineer"
	req.TagIDs = []int{1, 2, 3}
	req.SalaryMin = intPtr(80000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CacheKey(req)
	}
}
