// internal/search/querybuilder_test.go
package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-api/internal/models"
)

func boolQuery(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	query, ok := body["query"].(map[string]interface{})
	require.True(t, ok, "body must contain a query object")
	bq, ok := query["bool"].(map[string]interface{})
	require.True(t, ok, "query must be a bool query")
	return bq
}

func mustClauses(t *testing.T, body map[string]interface{}) []interface{} {
	t.Helper()
	must, ok := boolQuery(t, body)["must"].([]interface{})
	require.True(t, ok, "bool query must contain a must array")
	return must
}

func filterClauses(t *testing.T, body map[string]interface{}) []interface{} {
	t.Helper()
	filter, _ := boolQuery(t, body)["filter"].([]interface{})
	return filter
}

// ==========================
// Free-Text Query
// ==========================

func TestBuildSearchBody_MultiMatch(t *testing.T) {
	req := baseRequest()
	req.Query = "golang developer"

	body := BuildSearchBody(req)
	must := mustClauses(t, body)
	require.Len(t, must, 1)

	mm := must[0].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "golang developer", mm["query"])
	assert.Equal(t, []string{"title", "description"}, mm["fields"])
	assert.Equal(t, "best_fields", mm["type"])
}

func TestBuildSearchBody_NoFiltersMatchesAll(t *testing.T) {
	body := BuildSearchBody(baseRequest())

	must := mustClauses(t, body)
	require.Len(t, must, 1)
	_, ok := must[0].(map[string]interface{})["match_all"]
	assert.True(t, ok, "empty request must translate to match_all, not zero results")
	assert.Nil(t, filterClauses(t, body))
}

func TestBuildSearchBody_FiltersWithoutQueryKeepMatchAll(t *testing.T) {
	req := baseRequest()
	req.LocationID = intPtr(4)

	body := BuildSearchBody(req)

	must := mustClauses(t, body)
	require.Len(t, must, 1)
	_, ok := must[0].(map[string]interface{})["match_all"]
	assert.True(t, ok)
	assert.Len(t, filterClauses(t, body), 1)
}

// ==========================
// Exact Filters
// ==========================

func TestBuildSearchBody_TermFilters(t *testing.T) {
	req := baseRequest()
	req.LocationID = intPtr(3)
	req.WorkTypeID = intPtr(2)
	req.ExperienceLevel = "Senior"
	req.Industry = "fintech"

	body := BuildSearchBody(req)
	filters := filterClauses(t, body)
	require.Len(t, filters, 4)

	terms := map[string]interface{}{}
	for _, f := range filters {
		term, ok := f.(map[string]interface{})["term"].(map[string]interface{})
		require.True(t, ok, "every exact filter must be a term clause")
		for field, value := range term {
			terms[field] = value
		}
	}

	assert.Equal(t, 3, terms["location_id"])
	assert.Equal(t, 2, terms["work_type_id"])
	assert.Equal(t, "Senior", terms["experience_level"])
	assert.Equal(t, "fintech", terms["industry"])
}

func TestBuildSearchBody_AbsentFiltersEmitNothing(t *testing.T) {
	req := baseRequest()
	req.Query = "engineer"

	body := BuildSearchBody(req)

	assert.Nil(t, filterClauses(t, body))
}

// ==========================
// Tags: OR Within, AND Across
// ==========================

func TestBuildSearchBody_TagsUseTermsClause(t *testing.T) {
	req := baseRequest()
	req.TagIDs = []int{1, 5, 9}
	req.LocationID = intPtr(2)

	body := BuildSearchBody(req)
	filters := filterClauses(t, body)
	require.Len(t, filters, 2)

	var tags []int
	var sawTerm bool
	for _, f := range filters {
		clause := f.(map[string]interface{})
		if terms, ok := clause["terms"].(map[string]interface{}); ok {
			tags = terms["tags"].([]int)
		}
		if _, ok := clause["term"]; ok {
			sawTerm = true
		}
	}

	// A single terms clause: any requested tag matches. The location filter
	// stays a separate clause so it is still ANDed with tag membership.
	assert.Equal(t, []int{1, 5, 9}, tags)
	assert.True(t, sawTerm)
}

// ==========================
// Salary Ranges
// ==========================

func TestBuildSearchBody_SalaryBounds(t *testing.T) {
	tests := []struct {
		name      string
		min, max  *int
		wantCount int
	}{
		{"both bounds", intPtr(50000), intPtr(90000), 2},
		{"min only", intPtr(50000), nil, 1},
		{"max only", nil, intPtr(90000), 1},
		{"neither", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			req.SalaryMin = tt.min
			req.SalaryMax = tt.max

			filters := filterClauses(t, BuildSearchBody(req))
			assert.Len(t, filters, tt.wantCount)

			for _, f := range filters {
				rng, ok := f.(map[string]interface{})["range"].(map[string]interface{})
				require.True(t, ok)
				if bound, ok := rng["salary_min"].(map[string]interface{}); ok {
					assert.Equal(t, *tt.min, bound["gte"])
				}
				if bound, ok := rng["salary_max"].(map[string]interface{}); ok {
					assert.Equal(t, *tt.max, bound["lte"])
				}
			}
		})
	}
}

// ==========================
// Sorting
// ==========================

func TestBuildSearchBody_Sort(t *testing.T) {
	tests := []struct {
		sort  models.SortField
		order models.SortOrder
	}{
		{models.SortByCreatedAt, models.SortDesc},
		{models.SortBySalaryMin, models.SortAsc},
		{models.SortBySalaryMax, models.SortDesc},
	}

	for _, tt := range tests {
		t.Run(string(tt.sort)+"/"+string(tt.order), func(t *testing.T) {
			req := baseRequest()
			req.Sort = tt.sort
			req.Order = tt.order

			body := BuildSearchBody(req)
			sort, ok := body["sort"].([]map[string]interface{})
			require.True(t, ok)
			require.Len(t, sort, 1)

			spec := sort[0][string(tt.sort)].(map[string]interface{})
			assert.Equal(t, string(tt.order), spec["order"])
		})
	}
}

// ==========================
// Purity
// ==========================

func TestBuildSearchBody_DoesNotMutateRequest(t *testing.T) {
	req := baseRequest()
	req.Query = "golang"
	req.TagIDs = []int{1, 2}

	before := *req
	beforeTags := append([]int(nil), req.TagIDs...)

	BuildSearchBody(req)
	BuildSearchBody(req)

	assert.Equal(t, before.Query, req.Query)
	assert.Equal(t, beforeTags, req.TagIDs)
}
