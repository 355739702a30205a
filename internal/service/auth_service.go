package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	apperrors "jobboard-api/internal/common/errors"
	"jobboard-api/internal/common/logger"
	"jobboard-api/internal/models"
)

// SessionCache is the token/session store. Satisfied by database.RedisClient.
type SessionCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type UserStore interface {
	FindByID(ctx context.Context, id int) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
}

type RecruiterProfileStore interface {
	FindByUserID(ctx context.Context, userID int) (*models.Recruiter, error)
	Insert(ctx context.Context, rec *models.Recruiter) (*models.Recruiter, error)
}

type AuthService struct {
	users      UserStore
	recruiters RecruiterProfileStore
	sessions   SessionCache
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	logger     logger.Logger
}

func NewAuthService(users UserStore, recruiters RecruiterProfileStore, sessions SessionCache,
	jwtSecret string, tokenTTL time.Duration, bcryptCost int, log logger.Logger) *AuthService {
	return &AuthService{
		users:      users,
		recruiters: recruiters,
		sessions:   sessions,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		logger:     log.WithFields(map[string]interface{}{"component": "auth-service"}),
	}
}

type SignupInput struct {
	Username      string          `json:"username"`
	Email         string          `json:"email"`
	FullName      string          `json:"full_name"`
	Password      string          `json:"password"`
	Type          models.UserType `json:"type"`
	RecruiterName string          `json:"recruiter_name"`
}

// Signup registers a user and, for recruiters, the recruiter profile jobs
// will belong to.
func (s *AuthService) Signup(ctx context.Context, input *SignupInput) (*models.User, error) {
	if input.Username == "" || input.Password == "" || input.Email == "" {
		return nil, apperrors.NewValidationError("username, email and password are required")
	}
	if len(input.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}
	if input.Type != models.UserTypeSeeker && input.Type != models.UserTypeRecruiter {
		return nil, apperrors.NewValidationError("type must be seeker or recruiter")
	}
	if input.Type == models.UserTypeRecruiter && input.RecruiterName == "" {
		return nil, apperrors.NewValidationError("recruiter_name is required for recruiter accounts")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user, err := s.users.Insert(ctx, &models.User{
		Username:     input.Username,
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: string(hash),
		Type:         input.Type,
	})
	if err != nil {
		return nil, err
	}

	if input.Type == models.UserTypeRecruiter {
		if _, err := s.recruiters.Insert(ctx, &models.Recruiter{
			UserID: user.ID,
			Name:   input.RecruiterName,
		}); err != nil {
			return nil, err
		}
	}

	return user, nil
}

// Login verifies the credentials, records a session in the cache, and
// returns a signed access token carrying the session id.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return "", nil, apperrors.NewUnauthorizedError("invalid credentials")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		UserType:  user.Type,
		CreatedAt: time.Now().UTC(),
	}

	if user.Type == models.UserTypeRecruiter {
		rec, err := s.recruiters.FindByUserID(ctx, user.ID)
		if err == nil {
			session.RecruiterID = rec.ID
		} else if !apperrors.IsNotFound(err) {
			return "", nil, err
		}
	}

	data, _ := json.Marshal(session)
	if err := s.sessions.Set(ctx, sessionKey(session.ID), data, s.tokenTTL); err != nil {
		return "", nil, apperrors.NewServiceUnavailableError("session store", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"sid":  session.ID,
		"role": string(user.Type),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, apperrors.NewInternalError(err)
	}

	return signed, user, nil
}

// Logout invalidates the session behind the token; the JWT itself simply
// stops resolving to a live session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Del(ctx, sessionKey(sessionID)); err != nil {
		return apperrors.NewServiceUnavailableError("session store", err)
	}
	return nil
}

// Authenticate parses a bearer token and resolves its live session.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.NewUnauthorizedError("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.NewUnauthorizedError("invalid token claims")
	}

	sessionID, _ := claims["sid"].(string)
	if sessionID == "" {
		return nil, apperrors.NewUnauthorizedError("token carries no session")
	}

	raw, err := s.sessions.Get(ctx, sessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NewUnauthorizedError("session expired or revoked")
		}
		return nil, apperrors.NewServiceUnavailableError("session store", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, apperrors.NewUnauthorizedError("session record corrupted")
	}

	return &session, nil
}

func sessionKey(id string) string {
	return "session:" + id
}
