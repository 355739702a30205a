package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "jobboard-api/internal/common/errors"
	"jobboard-api/internal/common/validation"
	"jobboard-api/internal/models"
	"jobboard-api/internal/service"
)

type JobHandler struct {
	jobs   *service.JobService
	errors *apperrors.ErrorHandler
}

func NewJobHandler(jobs *service.JobService, errHandler *apperrors.ErrorHandler) *JobHandler {
	return &JobHandler{jobs: jobs, errors: errHandler}
}

// Search handles GET /api/v1/jobs/search. Malformed or out-of-range
// parameters are rejected here, before the request reaches the query
// translator.
func (h *JobHandler) Search(w http.ResponseWriter, r *http.Request) {
	req, err := ParseSearchRequest(r.URL.Query())
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	page, err := h.jobs.Search(r.Context(), req)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// ParseSearchRequest builds a validated SearchRequest from query parameters.
// Absent optional filters stay nil/empty and are never turned into
// match-all or match-null clauses downstream.
func ParseSearchRequest(values url.Values) (*models.SearchRequest, error) {
	req := &models.SearchRequest{
		Query:    strings.TrimSpace(values.Get("q")),
		Industry: strings.TrimSpace(values.Get("industry")),
		Page:     1,
		PerPage:  models.SearchPageSizeDefault,
		Sort:     models.SortByCreatedAt,
		Order:    models.SortDesc,
	}

	var err error
	if req.LocationID, err = optionalIntParam(values, "location_id"); err != nil {
		return nil, err
	}
	if req.WorkTypeID, err = optionalIntParam(values, "work_type_id"); err != nil {
		return nil, err
	}
	if req.SalaryMin, err = optionalIntParam(values, "salary_min"); err != nil {
		return nil, err
	}
	if req.SalaryMax, err = optionalIntParam(values, "salary_max"); err != nil {
		return nil, err
	}

	if level := values.Get("experience_level"); level != "" {
		if !models.ExperienceLevel(level).Valid() {
			return nil, apperrors.NewValidationError("experience_level must be one of Junior, Mid, Senior")
		}
		req.ExperienceLevel = level
	}

	if rawTags := values.Get("tag_ids"); rawTags != "" {
		for _, part := range strings.Split(rawTags, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, apperrors.NewValidationError("tag_ids must be a comma-separated list of integers")
			}
			req.TagIDs = append(req.TagIDs, id)
		}
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return nil, apperrors.NewValidationError("page must be a positive integer")
		}
		req.Page = page
	}

	if raw := values.Get("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil || perPage < 1 || perPage > models.SearchPageSizeMax {
			return nil, apperrors.NewValidationError("per_page must be between 1 and 100")
		}
		req.PerPage = perPage
	}

	if raw := values.Get("sort"); raw != "" {
		sort := models.SortField(raw)
		if !sort.Valid() {
			return nil, apperrors.NewValidationError("sort must be one of created_at, salary_min, salary_max")
		}
		req.Sort = sort
	}

	if raw := values.Get("order"); raw != "" {
		order := models.SortOrder(raw)
		if !order.Valid() {
			return nil, apperrors.NewValidationError("order must be asc or desc")
		}
		req.Order = order
	}

	return req, nil
}

// Create handles POST /api/v1/jobs. Requires a recruiter session.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	recruiterID, err := requireRecruiter(r)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	input, err := decodeJobInput(r)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	job, err := h.jobs.Create(r.Context(), input, recruiterID)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, job)
}

// Get handles GET /api/v1/jobs/:id.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	job, err := h.jobs.Get(r.Context(), id)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// List handles GET /api/v1/jobs, the non-search relational listing.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	offset, _ := strconv.Atoi(values.Get("skip"))
	limit, err := strconv.Atoi(values.Get("limit"))
	if err != nil {
		limit = models.SearchPageSizeDefault
	}

	var filters models.JobListFilters
	if filters.LocationID, err = optionalIntParam(values, "location_id"); err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	if filters.WorkTypeID, err = optionalIntParam(values, "work_type_id"); err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	if filters.RecruiterID, err = optionalIntParam(values, "recruiter_id"); err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	filters.ExperienceLevel = models.ExperienceLevel(values.Get("experience_level"))
	filters.Industry = values.Get("industry")

	jobs, err := h.jobs.List(r.Context(), filters, offset, limit)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, jobs)
}

// Update handles PUT /api/v1/jobs/:id.
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	recruiterID, err := requireRecruiter(r)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	input, err := decodeJobInput(r)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	job, err := h.jobs.Update(r.Context(), id, input, recruiterID)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// Delete handles DELETE /api/v1/jobs/:id.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	recruiterID, err := requireRecruiter(r)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	if err := h.jobs.Delete(r.Context(), id, recruiterID); err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeJobInput(r *http.Request) (*models.JobInput, error) {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err != nil {
		return nil, apperrors.NewValidationError("unable to read request body")
	}

	if err := validation.ValidateJobPayload(body); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	var input models.JobInput
	if err := json.Unmarshal(body, &input); err != nil {
		return nil, apperrors.NewValidationError("invalid job payload")
	}
	return &input, nil
}

func requireRecruiter(r *http.Request) (int, error) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		return 0, apperrors.NewUnauthorizedError("authentication required")
	}
	if session.UserType != models.UserTypeRecruiter || session.RecruiterID == 0 {
		return 0, apperrors.NewForbiddenError("recruiter account required")
	}
	return session.RecruiterID, nil
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil || id < 1 {
		return 0, apperrors.NewValidationError("id must be a positive integer")
	}
	return id, nil
}
