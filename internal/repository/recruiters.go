package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "jobboard-api/internal/common/errors"
	"jobboard-api/internal/models"
)

type RecruiterRepository struct {
	db *sql.DB
}

func NewRecruiterRepository(db *sql.DB) *RecruiterRepository {
	return &RecruiterRepository{db: db}
}

const recruiterColumns = `id, user_id, name, description, company_size, industry, location, created_at`

func (r *RecruiterRepository) FindByID(ctx context.Context, id int) (*models.Recruiter, error) {
	return r.scanRecruiter(r.db.QueryRowContext(ctx, `
		SELECT `+recruiterColumns+`
		FROM recruiters
		WHERE id = $1`, id), id)
}

// FindByUserID resolves the recruiter profile owned by a user account.
func (r *RecruiterRepository) FindByUserID(ctx context.Context, userID int) (*models.Recruiter, error) {
	return r.scanRecruiter(r.db.QueryRowContext(ctx, `
		SELECT `+recruiterColumns+`
		FROM recruiters
		WHERE user_id = $1`, userID), userID)
}

func (r *RecruiterRepository) Insert(ctx context.Context, rec *models.Recruiter) (*models.Recruiter, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO recruiters (user_id, name, description, company_size, industry, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at`,
		rec.UserID, rec.Name, rec.Description, rec.CompanySize, rec.Industry, rec.Location,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("recruiter profile already exists for user")
		}
		return nil, fmt.Errorf("insert recruiter: %w", err)
	}
	return rec, nil
}

func (r *RecruiterRepository) Update(ctx context.Context, rec *models.Recruiter) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE recruiters
		SET name = $1, description = $2, company_size = $3, industry = $4, location = $5
		WHERE id = $6`,
		rec.Name, rec.Description, rec.CompanySize, rec.Industry, rec.Location, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update recruiter: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NewNotFoundError("recruiter", rec.ID)
	}
	return nil
}

func (r *RecruiterRepository) scanRecruiter(row *sql.Row, ref interface{}) (*models.Recruiter, error) {
	var rec models.Recruiter
	var description, companySize, industry, location sql.NullString

	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Name, &description,
		&companySize, &industry, &location, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("recruiter", ref)
		}
		return nil, fmt.Errorf("find recruiter: %w", err)
	}

	rec.Description = description.String
	rec.CompanySize = companySize.String
	rec.Industry = industry.String
	rec.Location = location.String
	return &rec, nil
}
