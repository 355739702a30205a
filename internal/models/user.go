// internal/models/user.go
package models

import "time"

type UserType string

const (
	UserTypeSeeker    UserType = "seeker"
	UserTypeRecruiter UserType = "recruiter"
)

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name,omitempty"`
	PasswordHash string    `json:"-"`
	Type         UserType  `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
}

// Recruiter is the company-facing profile attached to a recruiter user.
// Jobs belong to recruiters, not directly to users.
type Recruiter struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CompanySize string    `json:"company_size,omitempty"`
	Industry    string    `json:"industry,omitempty"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
