// Package search implements the job search subsystem: cache-key derivation,
// translation of structured search requests into Elasticsearch queries,
// search execution, and keeping the index in step with relational writes.
package search

import (
	"crypto/md5"
	"encoding/json"
	"fmt"

	"jobboard-api/internal/models"
)

// searchKeyPrefix namespaces search-page cache entries away from the
// per-entity "job:<id>" family sharing the same store.
const searchKeyPrefix = "job_search:"

// CacheKey derives a stable cache key for a search request. Logically equal
// requests always hash to the same key: the canonical form is a map (json
// marshals map keys in sorted order) and every absent optional collapses to
// null, so "missing" and "empty" never produce distinct keys.
func CacheKey(req *models.SearchRequest) string {
	canonical := map[string]interface{}{
		"q":                nullableString(req.Query),
		"location_id":      nullableInt(req.LocationID),
		"work_type_id":     nullableInt(req.WorkTypeID),
		"experience_level": nullableString(req.ExperienceLevel),
		"industry":         nullableString(req.Industry),
		"tag_ids":          nullableInts(req.TagIDs),
		"salary_min":       nullableInt(req.SalaryMin),
		"salary_max":       nullableInt(req.SalaryMax),
		"page":             req.Page,
		"per_page":         req.PerPage,
		"sort":             string(req.Sort),
		"order":            string(req.Order),
	}

	data, _ := json.Marshal(canonical)
	return fmt.Sprintf("%s%x", searchKeyPrefix, md5.Sum(data))
}

// JobCacheKey keys the per-entity cache family.
func JobCacheKey(jobID int) string {
	return fmt.Sprintf("job:%d", jobID)
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableInts(vs []int) interface{} {
	if len(vs) == 0 {
		return nil
	}
	return vs
}
