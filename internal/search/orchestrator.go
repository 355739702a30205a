package search

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "jobboard-api/internal/common/errors"
	"jobboard-api/internal/common/logger"
	"jobboard-api/internal/common/metrics"
	"jobboard-api/internal/common/observability"
	"jobboard-api/internal/models"
)

// Cache is the subset of the cache store the orchestrator needs. Satisfied
// by database.RedisClient.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Service composes the cache store, the query translator, and the search
// index into the end-to-end search flow, and propagates job mutations into
// the index. Stateless between requests; all shared state lives in the
// external stores.
type Service struct {
	cache   Cache
	index   Index
	logger  logger.Logger
	obs     *observability.Observability
	jobTTL  time.Duration
	pageTTL time.Duration
}

func NewService(cache Cache, index Index, log logger.Logger, jobTTL, pageTTL time.Duration) *Service {
	return &Service{
		cache:   cache,
		index:   index,
		logger:  log.WithFields(map[string]interface{}{"component": "job-search"}),
		jobTTL:  jobTTL,
		pageTTL: pageTTL,
	}
}

// WithObservability attaches the otel instruments. Without it only the
// prometheus collectors record.
func (s *Service) WithObservability(obs *observability.Observability) *Service {
	s.obs = obs
	return s
}

func (s *Service) recordSearch(ctx context.Context, source, status string, start time.Time) {
	if s.obs == nil {
		return
	}
	s.obs.RecordSearch(ctx, source, status)
	s.obs.RecordSearchDuration(ctx, time.Since(start), status)
}

// Search runs one search request: cache probe, then translate and execute
// against the index on a miss. Cache failures on the read path degrade to a
// direct index query; an index fault propagates as SERVICE_UNAVAILABLE
// because a silently empty page would be indistinguishable from a legitimate
// zero-result query.
func (s *Service) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResultPage, error) {
	start := time.Now()
	key := CacheKey(req)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var page models.SearchResultPage
		if uerr := json.Unmarshal([]byte(raw), &page); uerr == nil {
			metrics.SearchCacheHits.Inc()
			metrics.SearchDuration.Observe(time.Since(start).Seconds())
			s.recordSearch(ctx, "cache", "ok", start)
			return &page, nil
		} else {
			s.logger.Warn("discarding undecodable cached search page", map[string]interface{}{
				"cacheKey": key,
				"error":    uerr.Error(),
			})
		}
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("search cache read failed, querying index directly", map[string]interface{}{
			"cacheKey": key,
			"error":    err.Error(),
		})
	}

	metrics.SearchCacheMisses.Inc()

	body := BuildSearchBody(req)
	from := (req.Page - 1) * req.PerPage

	result, err := s.index.Search(ctx, body, from, req.PerPage)
	if err != nil {
		s.recordSearch(ctx, "index", "error", start)
		return nil, apperrors.NewServiceUnavailableError("search index", err)
	}

	items := result.Hits
	if items == nil {
		items = []map[string]interface{}{}
	}

	page := &models.SearchResultPage{
		Items:      items,
		Total:      result.Total,
		Page:       req.Page,
		PerPage:    req.PerPage,
		TotalPages: models.TotalPages(result.Total, req.PerPage),
	}

	// Populate on miss only. Losing this write must not fail the search.
	if data, err := json.Marshal(page); err == nil {
		if err := s.cache.Set(ctx, key, data, s.pageTTL); err != nil {
			s.logger.Warn("search cache write failed", map[string]interface{}{
				"cacheKey": key,
				"error":    err.Error(),
			})
		}
	}

	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	s.recordSearch(ctx, "index", "ok", start)
	return page, nil
}

// IndexJob builds the denormalized document from the full current relational
// state of the job and upserts it as a full-document replace.
func (s *Service) IndexJob(ctx context.Context, job *models.Job) error {
	doc := models.NewJobDocument(job)
	if err := s.index.IndexDocument(ctx, job.ID, doc); err != nil {
		return err
	}

	s.logger.Debug("job indexed", map[string]interface{}{"jobId": job.ID})
	return nil
}

// RemoveJob deletes the job's document from the index.
func (s *Service) RemoveJob(ctx context.Context, jobID int) error {
	if err := s.index.DeleteDocument(ctx, jobID); err != nil {
		return err
	}

	s.logger.Debug("job removed from index", map[string]interface{}{"jobId": jobID})
	return nil
}

// JobFromCache reads a job from the per-entity cache family. Any cache
// failure reads as a miss.
func (s *Service) JobFromCache(ctx context.Context, jobID int) (*models.Job, bool) {
	raw, err := s.cache.Get(ctx, JobCacheKey(jobID))
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("job cache read failed", map[string]interface{}{
				"jobId": jobID,
				"error": err.Error(),
			})
		}
		return nil, false
	}

	var job models.Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		return nil, false
	}
	return &job, true
}

// CacheJob stores a job in the per-entity cache. Best effort.
func (s *Service) CacheJob(ctx context.Context, job *models.Job) {
	data, err := json.Marshal(job)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, JobCacheKey(job.ID), data, s.jobTTL); err != nil {
		s.logger.Warn("job cache write failed", map[string]interface{}{
			"jobId": job.ID,
			"error": err.Error(),
		})
	}
}

// InvalidateJob drops the per-entity cache entry; the next read repopulates.
func (s *Service) InvalidateJob(ctx context.Context, jobID int) {
	if err := s.cache.Del(ctx, JobCacheKey(jobID)); err != nil {
		s.logger.Warn("job cache invalidation failed", map[string]interface{}{
			"jobId": jobID,
			"error": err.Error(),
		})
	}
}
