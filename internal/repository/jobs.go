// Package repository holds the relational store access. The row is the
// source of truth; the search index is a derived projection maintained by
// the service layer on top of these writes.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	apperrors "jobboard-api/internal/common/errors"
	"jobboard-api/internal/models"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `j.id, j.title, j.description, j.salary_min, j.salary_max,
       j.location_id, j.work_type_id, j.recruiter_id, j.experience_level,
       j.industry, j.created_at`

// FindByID loads a job row with its tags, location and work type eagerly
// resolved.
func (r *JobRepository) FindByID(ctx context.Context, id int) (*models.Job, error) {
	job, err := r.scanJob(r.db.QueryRowContext(ctx, `
		SELECT `+jobColumns+`
		FROM jobs j
		WHERE j.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("job", id)
		}
		return nil, fmt.Errorf("find job: %w", err)
	}

	if err := r.attachRelations(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

// Insert persists a new job and its tag set in one transaction and returns
// the fully resolved row. Requested tag ids are resolved against the tags
// table first; unknown ids are dropped, never an error.
func (r *JobRepository) Insert(ctx context.Context, input *models.JobInput, recruiterID int) (*models.Job, error) {
	tagIDs, err := r.resolveTagIDs(ctx, input.TagIDs)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin insert job: %w", err)
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO jobs (title, description, salary_min, salary_max,
		                  location_id, work_type_id, recruiter_id,
		                  experience_level, industry, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id`,
		input.Title, input.Description, input.SalaryMin, input.SalaryMax,
		input.LocationID, input.WorkTypeID, recruiterID,
		nullableLevel(input.ExperienceLevel), input.Industry,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	if len(tagIDs) > 0 {
		if err := insertJobTags(ctx, tx, id, tagIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit insert job: %w", err)
	}

	return r.FindByID(ctx, id)
}

// Update rewrites the job row and, when TagIDs is non-nil, replaces the tag
// set wholesale with the resolvable subset of the requested ids. Returns the
// refreshed row.
func (r *JobRepository) Update(ctx context.Context, id int, input *models.JobInput) (*models.Job, error) {
	var tagIDs []int
	if input.TagIDs != nil {
		var err error
		if tagIDs, err = r.resolveTagIDs(ctx, input.TagIDs); err != nil {
			return nil, err
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update job: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE jobs
		SET title = $1, description = $2, salary_min = $3, salary_max = $4,
		    location_id = $5, work_type_id = $6, experience_level = $7,
		    industry = $8
		WHERE id = $9`,
		input.Title, input.Description, input.SalaryMin, input.SalaryMax,
		input.LocationID, input.WorkTypeID, nullableLevel(input.ExperienceLevel),
		input.Industry, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperrors.NewNotFoundError("job", id)
	}

	if input.TagIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM job_tags WHERE job_id = $1`, id); err != nil {
			return nil, fmt.Errorf("clear job tags: %w", err)
		}
		if len(tagIDs) > 0 {
			if err := insertJobTags(ctx, tx, id, tagIDs); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update job: %w", err)
	}

	return r.FindByID(ctx, id)
}

// Delete removes the job row; the join table rows go with it.
func (r *JobRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete job: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM job_tags WHERE job_id = $1`, id); err != nil {
		return fmt.Errorf("delete job tags: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NewNotFoundError("job", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete job: %w", err)
	}
	return nil
}

// List is the non-search relational listing; it never touches the index.
func (r *JobRepository) List(ctx context.Context, filters models.JobListFilters, offset, limit int) ([]*models.Job, error) {
	where := []string{}
	args := []interface{}{}

	addFilter := func(clause string, value interface{}) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if filters.LocationID != nil {
		addFilter("j.location_id = $%d", *filters.LocationID)
	}
	if filters.WorkTypeID != nil {
		addFilter("j.work_type_id = $%d", *filters.WorkTypeID)
	}
	if filters.ExperienceLevel != "" {
		addFilter("j.experience_level = $%d", string(filters.ExperienceLevel))
	}
	if filters.Industry != "" {
		addFilter("j.industry = $%d", filters.Industry)
	}
	if filters.RecruiterID != nil {
		addFilter("j.recruiter_id = $%d", *filters.RecruiterID)
	}

	query := `SELECT ` + jobColumns + ` FROM jobs j`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY j.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		job, err := r.scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	for _, job := range jobs {
		if err := r.attachRelations(ctx, job); err != nil {
			return nil, err
		}
	}

	return jobs, nil
}

// ResolveTags returns the tag rows for the given ids; unknown ids are
// silently dropped.
func (r *JobRepository) ResolveTags(ctx context.Context, ids []int) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM tags WHERE id = ANY($1) ORDER BY id`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// resolveTagIDs narrows requested tag ids to the ones that exist, so a
// write never trips the job_tags foreign key on an unknown id.
func (r *JobRepository) resolveTagIDs(ctx context.Context, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	tags, err := r.ResolveTags(ctx, ids)
	if err != nil {
		return nil, err
	}

	resolved := make([]int, 0, len(tags))
	for _, t := range tags {
		resolved = append(resolved, t.ID)
	}
	return resolved, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *JobRepository) scanJob(s scanner) (*models.Job, error) {
	var job models.Job
	var description, experienceLevel, industry sql.NullString
	var salaryMin, salaryMax, locationID, workTypeID sql.NullInt64

	err := s.Scan(
		&job.ID, &job.Title, &description, &salaryMin, &salaryMax,
		&locationID, &workTypeID, &job.RecruiterID, &experienceLevel,
		&industry, &job.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	job.Description = description.String
	job.ExperienceLevel = models.ExperienceLevel(experienceLevel.String)
	job.Industry = industry.String
	job.SalaryMin = nullableInt64(salaryMin)
	job.SalaryMax = nullableInt64(salaryMax)
	job.LocationID = nullableInt64(locationID)
	job.WorkTypeID = nullableInt64(workTypeID)

	return &job, nil
}

// attachRelations resolves tags, location and work type eagerly so nothing
// downstream ever reaches back into the database.
func (r *JobRepository) attachRelations(ctx context.Context, job *models.Job) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.name
		FROM tags t
		JOIN job_tags jt ON jt.tag_id = t.id
		WHERE jt.job_id = $1
		ORDER BY t.id`, job.ID)
	if err != nil {
		return fmt.Errorf("load job tags: %w", err)
	}
	defer rows.Close()

	job.Tags = []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return fmt.Errorf("scan job tag: %w", err)
		}
		job.Tags = append(job.Tags, t)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load job tags: %w", err)
	}

	if job.LocationID != nil {
		var loc models.Location
		err := r.db.QueryRowContext(ctx,
			`SELECT id, name FROM locations WHERE id = $1`, *job.LocationID,
		).Scan(&loc.ID, &loc.Name)
		if err == nil {
			job.Location = &loc
		} else if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("load job location: %w", err)
		}
	}

	if job.WorkTypeID != nil {
		var wt models.WorkType
		err := r.db.QueryRowContext(ctx,
			`SELECT id, name FROM work_types WHERE id = $1`, *job.WorkTypeID,
		).Scan(&wt.ID, &wt.Name)
		if err == nil {
			job.WorkType = &wt
		} else if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("load job work type: %w", err)
		}
	}

	return nil
}

func insertJobTags(ctx context.Context, tx *sql.Tx, jobID int, tagIDs []int) error {
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO job_tags (job_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, jobID, tagID); err != nil {
			return fmt.Errorf("insert job tag %d: %w", tagID, err)
		}
	}
	return nil
}

func nullableInt64(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullableLevel(level models.ExperienceLevel) interface{} {
	if level == "" {
		return nil
	}
	return string(level)
}
