// internal/models/session.go
package models

import "time"

// Session is the server-side record behind an issued access token. Sessions
// live in Redis under "session:<id>" and expire with the token.
type Session struct {
	ID          string    `json:"id"`
	UserID      int       `json:"user_id"`
	UserType    UserType  `json:"user_type"`
	RecruiterID int       `json:"recruiter_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
