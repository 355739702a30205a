// Package service composes the relational repositories, the search
// subsystem, and the session store into the operations the HTTP layer calls.
package service

import (
	"context"

	apperrors "jobboard-api/internal/common/errors"
	"jobboard-api/internal/common/logger"
	"jobboard-api/internal/common/metrics"
	"jobboard-api/internal/models"
)

// JobSearcher is what the job service needs from the search subsystem.
// Satisfied by *search.Service; tests plug in stubs.
type JobSearcher interface {
	Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResultPage, error)
	IndexJob(ctx context.Context, job *models.Job) error
	RemoveJob(ctx context.Context, jobID int) error
	JobFromCache(ctx context.Context, jobID int) (*models.Job, bool)
	CacheJob(ctx context.Context, job *models.Job)
	InvalidateJob(ctx context.Context, jobID int)
}

// JobStore is the relational side, satisfied by *repository.JobRepository.
type JobStore interface {
	FindByID(ctx context.Context, id int) (*models.Job, error)
	Insert(ctx context.Context, input *models.JobInput, recruiterID int) (*models.Job, error)
	Update(ctx context.Context, id int, input *models.JobInput) (*models.Job, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, filters models.JobListFilters, offset, limit int) ([]*models.Job, error)
}

type RecruiterStore interface {
	FindByID(ctx context.Context, id int) (*models.Recruiter, error)
}

type JobService struct {
	jobs       JobStore
	recruiters RecruiterStore
	search     JobSearcher
	logger     logger.Logger
}

func NewJobService(jobs JobStore, recruiters RecruiterStore, search JobSearcher, log logger.Logger) *JobService {
	return &JobService{
		jobs:       jobs,
		recruiters: recruiters,
		search:     search,
		logger:     log.WithFields(map[string]interface{}{"component": "job-service"}),
	}
}

// Create inserts the job relationally, then propagates it into the search
// index. The relational commit is authoritative: an indexing failure leaves
// the job retrievable by id but absent from search until the next reindex,
// and never rolls the insert back.
func (s *JobService) Create(ctx context.Context, input *models.JobInput, recruiterID int) (*models.Job, error) {
	if err := validateJobInput(input); err != nil {
		return nil, err
	}

	if _, err := s.recruiters.FindByID(ctx, recruiterID); err != nil {
		return nil, err
	}

	job, err := s.jobs.Insert(ctx, input, recruiterID)
	if err != nil {
		return nil, err
	}

	if err := s.search.IndexJob(ctx, job); err != nil {
		metrics.IndexSyncFailures.WithLabelValues("create").Inc()
		s.logger.Error("job created but indexing failed", map[string]interface{}{
			"jobId": job.ID,
			"error": err.Error(),
		})
	}

	s.search.CacheJob(ctx, job)

	return job, nil
}

// Get is a read-through over the per-entity cache.
func (s *JobService) Get(ctx context.Context, id int) (*models.Job, error) {
	if job, ok := s.search.JobFromCache(ctx, id); ok {
		return job, nil
	}

	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.search.CacheJob(ctx, job)
	return job, nil
}

// List is the plain relational listing; it bypasses the index and the cache.
func (s *JobService) List(ctx context.Context, filters models.JobListFilters, offset, limit int) ([]*models.Job, error) {
	if limit < 1 {
		limit = models.SearchPageSizeDefault
	}
	if limit > models.SearchPageSizeMax {
		limit = models.SearchPageSizeMax
	}
	if offset < 0 {
		offset = 0
	}

	jobs, err := s.jobs.List(ctx, filters, offset, limit)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []*models.Job{}
	}
	return jobs, nil
}

// Update commits the relational change, then reindexes the full document so
// no stale field can linger from a prior write.
func (s *JobService) Update(ctx context.Context, id int, input *models.JobInput, recruiterID int) (*models.Job, error) {
	if err := validateJobInput(input); err != nil {
		return nil, err
	}

	current, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.RecruiterID != recruiterID {
		return nil, apperrors.NewForbiddenError("jobs can only be updated by their owning recruiter")
	}

	job, err := s.jobs.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	if err := s.search.IndexJob(ctx, job); err != nil {
		metrics.IndexSyncFailures.WithLabelValues("update").Inc()
		s.logger.Error("job updated but reindexing failed", map[string]interface{}{
			"jobId": job.ID,
			"error": err.Error(),
		})
	}

	s.search.CacheJob(ctx, job)

	return job, nil
}

// Delete removes the relational row first, then attempts index removal and
// cache invalidation. A failed index removal leaves a stale searchable
// document behind; readers resolving hits against the relational store will
// see the missing row and treat it as a tombstone.
func (s *JobService) Delete(ctx context.Context, id int, recruiterID int) error {
	current, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if current.RecruiterID != recruiterID {
		return apperrors.NewForbiddenError("jobs can only be deleted by their owning recruiter")
	}

	if err := s.jobs.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.search.RemoveJob(ctx, id); err != nil {
		metrics.IndexSyncFailures.WithLabelValues("delete").Inc()
		s.logger.Error("job deleted but index removal failed", map[string]interface{}{
			"jobId": id,
			"error": err.Error(),
		})
	}

	s.search.InvalidateJob(ctx, id)

	return nil
}

// Search delegates to the search orchestrator.
func (s *JobService) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResultPage, error) {
	return s.search.Search(ctx, req)
}

func validateJobInput(input *models.JobInput) error {
	if input.Title == "" {
		return apperrors.NewValidationError("title is required")
	}
	if len(input.Title) > 255 {
		return apperrors.NewValidationError("title must be at most 255 characters")
	}
	if input.ExperienceLevel != "" && !input.ExperienceLevel.Valid() {
		return apperrors.NewValidationError("experience_level must be one of Junior, Mid, Senior")
	}
	if input.SalaryMin != nil && input.SalaryMax != nil && *input.SalaryMin > *input.SalaryMax {
		return apperrors.NewValidationError("salary_min must not exceed salary_max")
	}
	return nil
}
