// internal/service/auth_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"jobboard-api/internal/common/config"
	"jobboard-api/internal/common/database"
	apperrors "jobboard-api/internal/common/errors"
	"jobboard-api/internal/common/logger"
	"jobboard-api/internal/models"
)

// ==========================
// Test Doubles
// ==========================

type stubUserStore struct {
	byID       map[int]*models.User
	byUsername map[string]*models.User
	nextID     int
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{
		byID:       map[int]*models.User{},
		byUsername: map[string]*models.User{},
		nextID:     0,
	}
}

func (s *stubUserStore) FindByID(ctx context.Context, id int) (*models.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("user", id)
	}
	return user, nil
}

func (s *stubUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := s.byUsername[username]
	if !ok {
		return nil, apperrors.NewNotFoundError("user", username)
	}
	return user, nil
}

func (s *stubUserStore) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	if _, exists := s.byUsername[user.Username]; exists {
		return nil, apperrors.NewConflictError("username already taken")
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now().UTC()
	s.byID[user.ID] = user
	s.byUsername[user.Username] = user
	return user, nil
}

type stubRecruiterProfiles struct {
	byUserID map[int]*models.Recruiter
	nextID   int
}

func (s *stubRecruiterProfiles) FindByUserID(ctx context.Context, userID int) (*models.Recruiter, error) {
	rec, ok := s.byUserID[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("recruiter", userID)
	}
	return rec, nil
}

func (s *stubRecruiterProfiles) Insert(ctx context.Context, rec *models.Recruiter) (*models.Recruiter, error) {
	s.nextID++
	rec.ID = s.nextID
	if s.byUserID == nil {
		s.byUserID = map[int]*models.Recruiter{}
	}
	s.byUserID[rec.UserID] = rec
	return rec, nil
}

func setupAuthService(t *testing.T) (*AuthService, *stubUserStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	sessions, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { sessions.Close() })

	users := newStubUserStore()
	svc := NewAuthService(users, &stubRecruiterProfiles{}, sessions,
		"test-secret", time.Hour, bcrypt.MinCost, logger.NewTestLogger(t))
	return svc, users, mr
}

func seekerInput() *SignupInput {
	return &SignupInput{
		Username: "jane",
		Email:    "jane@example.com",
		Password: "correct horse",
		Type:     models.UserTypeSeeker,
	}
}

// ==========================
// Signup
// ==========================

func TestAuthService_Signup_HashesPassword(t *testing.T) {
	svc, users, _ := setupAuthService(t)

	user, err := svc.Signup(context.Background(), seekerInput())

	require.NoError(t, err)
	stored := users.byUsername["jane"]
	assert.NotEqual(t, "correct horse", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")))
	assert.Equal(t, models.UserTypeSeeker, user.Type)
}

func TestAuthService_Signup_RecruiterGetsProfile(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	input := seekerInput()
	input.Username = "acme-hr"
	input.Type = models.UserTypeRecruiter
	input.RecruiterName = "Acme Corp"

	user, err := svc.Signup(context.Background(), input)
	require.NoError(t, err)

	// Logging in resolves the recruiter profile onto the session.
	_, logged, err := svc.Login(context.Background(), "acme-hr", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestAuthService_Signup_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *SignupInput)
	}{
		{"missing username", func(in *SignupInput) { in.Username = "" }},
		{"missing email", func(in *SignupInput) { in.Email = "" }},
		{"short password", func(in *SignupInput) { in.Password = "short" }},
		{"bad type", func(in *SignupInput) { in.Type = "admin" }},
		{"recruiter without name", func(in *SignupInput) {
			in.Type = models.UserTypeRecruiter
			in.RecruiterName = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := setupAuthService(t)
			in := seekerInput()
			tt.mutate(in)
			_, err := svc.Signup(context.Background(), in)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestAuthService_Signup_DuplicateUsername(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	_, err := svc.Signup(context.Background(), seekerInput())
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), seekerInput())
	assert.Equal(t, apperrors.ErrCodeConflict, apperrors.CodeOf(err))
}

// ==========================
// Login / Authenticate / Logout
// ==========================

func TestAuthService_LoginAuthenticateRoundTrip(t *testing.T) {
	svc, _, _ := setupAuthService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, seekerInput())
	require.NoError(t, err)

	token, logged, err := svc.Login(ctx, "jane", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)

	session, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, models.UserTypeSeeker, session.UserType)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _ := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, seekerInput())
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "jane", "wrong password")
	assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.CodeOf(err))
}

func TestAuthService_Login_UnknownUserIsUnauthorized(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	_, _, err := svc.Login(context.Background(), "nobody", "whatever")

	// Unknown user and wrong password are indistinguishable to the caller.
	assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.CodeOf(err))
}

func TestAuthService_Logout_RevokesSession(t *testing.T) {
	svc, _, _ := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, seekerInput())
	require.NoError(t, err)

	token, _, err := svc.Login(ctx, "jane", "correct horse")
	require.NoError(t, err)

	session, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.ID))

	// The JWT is still within its expiry but no longer resolves.
	_, err = svc.Authenticate(ctx, token)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.CodeOf(err))
}

func TestAuthService_Authenticate_BadTokens(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"empty", ""},
		{"bad signature", "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.e30.invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(context.Background(), tt.token)
			assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.CodeOf(err))
		})
	}
}

func TestAuthService_SessionExpiry(t *testing.T) {
	svc, _, mr := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, seekerInput())
	require.NoError(t, err)

	token, _, err := svc.Login(ctx, "jane", "correct horse")
	require.NoError(t, err)

	// The session record expires with the token TTL.
	mr.FastForward(2 * time.Hour)

	_, err = svc.Authenticate(ctx, token)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.CodeOf(err))
}
