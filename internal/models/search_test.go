// internal/models/search_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		perPage int
		want    int64
	}{
		{"zero hits", 0, 10, 0},
		{"exact fit", 10, 10, 1},
		{"one overflow", 11, 10, 2},
		{"partial last page", 25, 10, 3},
		{"single item", 1, 100, 1},
		{"negative total", -5, 10, 0},
		{"zero per page", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.total, tt.perPage))
		})
	}
}

func TestSortFieldValid(t *testing.T) {
	assert.True(t, SortField("created_at").Valid())
	assert.True(t, SortField("salary_min").Valid())
	assert.True(t, SortField("salary_max").Valid())
	assert.False(t, SortField("updated_at").Valid())
	assert.False(t, SortField("").Valid())
}

func TestExperienceLevelValid(t *testing.T) {
	assert.True(t, ExperienceLevel("Junior").Valid())
	assert.True(t, ExperienceLevel("Mid").Valid())
	assert.True(t, ExperienceLevel("Senior").Valid())
	assert.False(t, ExperienceLevel("senior").Valid())
	assert.False(t, ExperienceLevel("").Valid())
}
