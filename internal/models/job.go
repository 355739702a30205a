// internal/models/job.go
package models

import "time"

// ExperienceLevel enumerates the seniority levels accepted on a job posting.
type ExperienceLevel string

const (
	ExperienceJunior ExperienceLevel = "Junior"
	ExperienceMid    ExperienceLevel = "Mid"
	ExperienceSenior ExperienceLevel = "Senior"
)

// Valid reports whether the level is one of the known values.
func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceJunior, ExperienceMid, ExperienceSenior:
		return true
	}
	return false
}

// Job is the relational job row with its lookups eagerly resolved.
// No lazy loading happens past this struct: tags, location and work type
// are populated by the repository before the job crosses a service boundary.
type Job struct {
	ID              int             `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	SalaryMin       *int            `json:"salary_min,omitempty"`
	SalaryMax       *int            `json:"salary_max,omitempty"`
	LocationID      *int            `json:"location_id,omitempty"`
	WorkTypeID      *int            `json:"work_type_id,omitempty"`
	RecruiterID     int             `json:"recruiter_id"`
	ExperienceLevel ExperienceLevel `json:"experience_level,omitempty"`
	Industry        string          `json:"industry,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	Tags            []Tag           `json:"tags"`
	Location        *Location       `json:"location,omitempty"`
	WorkType        *WorkType       `json:"work_type,omitempty"`
}

// TagIDs returns the resolved tag ids in declaration order.
func (j *Job) TagIDs() []int {
	ids := make([]int, 0, len(j.Tags))
	for _, t := range j.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Location struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type WorkType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// JobDocument is the denormalized projection of a job stored in the search
// index. It is rebuilt from the full relational state on every index write,
// never patched in place.
type JobDocument struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	SalaryMin       *int   `json:"salary_min"`
	SalaryMax       *int   `json:"salary_max"`
	LocationID      *int   `json:"location_id"`
	WorkTypeID      *int   `json:"work_type_id"`
	RecruiterID     int    `json:"recruiter_id"`
	ExperienceLevel string `json:"experience_level"`
	Industry        string `json:"industry"`
	CreatedAt       string `json:"created_at"`
	Tags            []int  `json:"tags"`
}

// NewJobDocument flattens a resolved Job into its index representation.
func NewJobDocument(job *Job) *JobDocument {
	return &JobDocument{
		ID:              job.ID,
		Title:           job.Title,
		Description:     job.Description,
		SalaryMin:       job.SalaryMin,
		SalaryMax:       job.SalaryMax,
		LocationID:      job.LocationID,
		WorkTypeID:      job.WorkTypeID,
		RecruiterID:     job.RecruiterID,
		ExperienceLevel: string(job.ExperienceLevel),
		Industry:        job.Industry,
		CreatedAt:       job.CreatedAt.UTC().Format(time.RFC3339),
		Tags:            job.TagIDs(),
	}
}

// JobInput carries the client-supplied fields for create and update.
// Nil pointers on update mean "leave unchanged"; TagIDs nil means keep the
// current tag set, empty slice means clear it.
type JobInput struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	SalaryMin       *int            `json:"salary_min"`
	SalaryMax       *int            `json:"salary_max"`
	LocationID      *int            `json:"location_id"`
	WorkTypeID      *int            `json:"work_type_id"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Industry        string          `json:"industry"`
	TagIDs          []int           `json:"tag_ids"`
}

// JobListFilters narrows the non-search relational listing. It bypasses the
// search index entirely.
type JobListFilters struct {
	LocationID      *int
	WorkTypeID      *int
	ExperienceLevel ExperienceLevel
	Industry        string
	RecruiterID     *int
}
