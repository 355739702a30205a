package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "jobboard-api/internal/common/errors"
	"jobboard-api/internal/models"
)

// ==========================
// ParseSearchRequest Defaults
// ==========================

func TestParseSearchRequest_Defaults(t *testing.T) {
	req, err := ParseSearchRequest(url.Values{})

	require.NoError(t, err)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, models.SearchPageSizeDefault, req.PerPage)
	assert.Equal(t, models.SortByCreatedAt, req.Sort)
	assert.Equal(t, models.SortDesc, req.Order)
	assert.Empty(t, req.Query)

	// Absent filters must stay absent, not zero-valued.
	assert.Nil(t, req.LocationID)
	assert.Nil(t, req.WorkTypeID)
	assert.Nil(t, req.SalaryMin)
	assert.Nil(t, req.SalaryMax)
	assert.Nil(t, req.TagIDs)
	assert.Empty(t, req.ExperienceLevel)
}

func TestParseSearchRequest_AllParameters(t *testing.T) {
	values := url.Values{}
	values.Set("q", "  golang backend ")
	values.Set("location_id", "3")
	values.Set("work_type_id", "1")
	values.Set("experience_level", "Senior")
	values.Set("salary_min", "60000")
	values.Set("salary_max", "90000")
	values.Set("industry", "fintech")
	values.Set("tag_ids", "1, 5,9")
	values.Set("page", "2")
	values.Set("per_page", "25")
	values.Set("sort", "salary_max")
	values.Set("order", "asc")

	req, err := ParseSearchRequest(values)

	require.NoError(t, err)
	assert.Equal(t, "golang backend", req.Query)
	require.NotNil(t, req.LocationID)
	assert.Equal(t, 3, *req.LocationID)
	require.NotNil(t, req.SalaryMin)
	assert.Equal(t, 60000, *req.SalaryMin)
	require.NotNil(t, req.SalaryMax)
	assert.Equal(t, 90000, *req.SalaryMax)
	assert.Equal(t, "Senior", req.ExperienceLevel)
	assert.Equal(t, "fintech", req.Industry)
	assert.Equal(t, []int{1, 5, 9}, req.TagIDs)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, 25, req.PerPage)
	assert.Equal(t, models.SortBySalaryMax, req.Sort)
	assert.Equal(t, models.SortAsc, req.Order)
}

// ==========================
// ParseSearchRequest Validation
// ==========================

func TestParseSearchRequest_Validation(t *testing.T) {
	tests := []struct {
		name   string
		param  string
		value  string
	}{
		{"non-numeric location_id", "location_id", "berlin"},
		{"non-numeric salary_min", "salary_min", "lots"},
		{"unknown experience level", "experience_level", "Principal"},
		{"lowercase experience level", "experience_level", "senior"},
		{"non-numeric tag id", "tag_ids", "1,go,3"},
		{"zero page", "page", "0"},
		{"negative page", "page", "-1"},
		{"non-numeric page", "page", "two"},
		{"zero per_page", "per_page", "0"},
		{"per_page over maximum", "per_page", "101"},
		{"unknown sort field", "sort", "relevance"},
		{"unknown order", "order", "descending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			values.Set(tt.param, tt.value)

			req, err := ParseSearchRequest(values)

			assert.Nil(t, req)
			assert.True(t, apperrors.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestParseSearchRequest_PerPageBoundaries(t *testing.T) {
	for _, raw := range []string{"1", "100"} {
		values := url.Values{}
		values.Set("per_page", raw)

		req, err := ParseSearchRequest(values)

		require.NoError(t, err, "per_page=%s should be accepted", raw)
		assert.NotNil(t, req)
	}
}

func TestParseSearchRequest_EmptyTagEntryRejected(t *testing.T) {
	values := url.Values{}
	values.Set("tag_ids", "1,,3")

	_, err := ParseSearchRequest(values)

	assert.True(t, apperrors.IsValidation(err))
}
