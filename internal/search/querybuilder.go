package search

import (
	"jobboard-api/internal/models"
)

// BuildSearchBody translates a validated search request into the
// Elasticsearch request body. Pure function: no I/O, no caching concerns.
//
// Clause composition: the free-text query (if any) goes into must so it
// contributes to relevance scoring; every exact filter, the tag-membership
// clause, and each range bound go into filter and are ANDed together. A
// request with no clauses at all matches every document.
func BuildSearchBody(req *models.SearchRequest) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	// Full-text search scored across title and description. best_fields:
	// the single best-matching field determines the relevance contribution.
	if req.Query != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  req.Query,
				"fields": []string{"title", "description"},
				"type":   "best_fields",
			},
		})
	}

	// Exact-match filters, each one an independent term clause.
	if req.LocationID != nil {
		filterClauses = append(filterClauses, termClause("location_id", *req.LocationID))
	}
	if req.WorkTypeID != nil {
		filterClauses = append(filterClauses, termClause("work_type_id", *req.WorkTypeID))
	}
	if req.ExperienceLevel != "" {
		filterClauses = append(filterClauses, termClause("experience_level", req.ExperienceLevel))
	}
	if req.Industry != "" {
		filterClauses = append(filterClauses, termClause("industry", req.Industry))
	}

	// Tag membership is OR within the field: a document matches if it has
	// ANY of the requested tags.
	if len(req.TagIDs) > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"terms": map[string]interface{}{"tags": req.TagIDs},
		})
	}

	// Inclusive range bounds. Absent bounds emit nothing.
	if req.SalaryMin != nil {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"salary_min": map[string]interface{}{"gte": *req.SalaryMin},
			},
		})
	}
	if req.SalaryMax != nil {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"salary_max": map[string]interface{}{"lte": *req.SalaryMax},
			},
		})
	}

	// Empty-filter semantics = unrestricted retrieval, not zero results.
	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery := map[string]interface{}{"must": mustClauses}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
		"sort": []map[string]interface{}{
			{string(req.Sort): map[string]interface{}{"order": string(req.Order)}},
		},
	}
}

func termClause(field string, value interface{}) map[string]interface{} {
	return map[string]interface{}{
		"term": map[string]interface{}{field: value},
	}
}
