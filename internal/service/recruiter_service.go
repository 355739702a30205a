package service

import (
	"context"

	apperrors "jobboard-api/internal/common/errors"
	"jobboard-api/internal/models"
	"jobboard-api/internal/repository"
)

type RecruiterService struct {
	recruiters *repository.RecruiterRepository
}

func NewRecruiterService(recruiters *repository.RecruiterRepository) *RecruiterService {
	return &RecruiterService{recruiters: recruiters}
}

func (s *RecruiterService) Get(ctx context.Context, id int) (*models.Recruiter, error) {
	return s.recruiters.FindByID(ctx, id)
}

type RecruiterUpdateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CompanySize string `json:"company_size"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
}

// Update lets a recruiter edit their own company profile.
func (s *RecruiterService) Update(ctx context.Context, id int, input *RecruiterUpdateInput, callerRecruiterID int) (*models.Recruiter, error) {
	if id != callerRecruiterID {
		return nil, apperrors.NewForbiddenError("recruiters can only update their own profile")
	}

	rec, err := s.recruiters.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		rec.Name = input.Name
	}
	rec.Description = input.Description
	rec.CompanySize = input.CompanySize
	rec.Industry = input.Industry
	rec.Location = input.Location

	if err := s.recruiters.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
