// internal/models/search.go
package models

// Sort fields accepted by the search endpoint. Anything else is rejected
// before query translation.
type SortField string

const (
	SortByCreatedAt SortField = "created_at"
	SortBySalaryMin SortField = "salary_min"
	SortBySalaryMax SortField = "salary_max"
)

func (s SortField) Valid() bool {
	switch s {
	case SortByCreatedAt, SortBySalaryMin, SortBySalaryMax:
		return true
	}
	return false
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (s SortOrder) Valid() bool {
	return s == SortAsc || s == SortDesc
}

const (
	SearchPageSizeDefault = 10
	SearchPageSizeMax     = 100
)

// SearchRequest is the immutable, already-validated input to the search
// subsystem. Optional filters are nil when absent and are then omitted from
// query construction entirely.
type SearchRequest struct {
	Query           string    `json:"q"`
	LocationID      *int      `json:"location_id"`
	WorkTypeID      *int      `json:"work_type_id"`
	ExperienceLevel string    `json:"experience_level"`
	Industry        string    `json:"industry"`
	TagIDs          []int     `json:"tag_ids"`
	SalaryMin       *int      `json:"salary_min"`
	SalaryMax       *int      `json:"salary_max"`
	Page            int       `json:"page"`
	PerPage         int       `json:"per_page"`
	Sort            SortField `json:"sort"`
	Order           SortOrder `json:"order"`
}

// SearchResultPage is one page of raw document projections plus the
// pagination metadata derived from the total hit count.
type SearchResultPage struct {
	Items      []map[string]interface{} `json:"items"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	PerPage    int                      `json:"per_page"`
	TotalPages int64                    `json:"total_pages"`
}

// TotalPages computes ceil(total/perPage), 0 when there are no hits.
// Recomputed on every response, never cached on its own.
func TotalPages(total int64, perPage int) int64 {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + int64(perPage) - 1) / int64(perPage)
}
