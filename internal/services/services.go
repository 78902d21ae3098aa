package services

import (
	"context"
	"errors"
	"time"

	"github.com/jmuhoro/todo-api/internal/models"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrInvalidToken       = errors.New("invalid or missing token")
	ErrTaskNotFound       = errors.New("task not found")
)

type AuthService interface {
	// Register hashes the password, generates a unique ID and
	// stores a new user.
	//
	// It returns ErrMissingFields if name, email or password is
	// empty, or ErrEmailTaken if a user with the given email
	// already exists.
	Register(ctx context.Context, params RegisterParams) error

	// Login authenticates the user by email and password and
	// issues a fresh access/refresh token pair bound to the
	// user's ID.
	//
	// It returns ErrInvalidCredentials if the user doesn't exist
	// or the password doesn't match. The two cases are not
	// distinguished to the caller.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Refresh verifies the refresh token and mints a new access
	// token for its subject. It returns ErrInvalidToken if the
	// token is missing, malformed, expired or of the wrong kind.
	Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error)
}

// TokenService issues and verifies signed identity tokens.
// Access tokens authorize requests; refresh tokens mint new
// access tokens. Both carry the user ID as subject.
type TokenService interface {
	IssueAccessToken(userID string) (string, time.Time, error)
	IssueRefreshToken(userID string) (string, time.Time, error)

	// ParseAccessToken returns the subject user ID, or
	// ErrInvalidToken on a missing, malformed, expired,
	// badly-signed or non-access token.
	ParseAccessToken(token string) (string, error)

	// ParseRefreshToken is ParseAccessToken for refresh tokens.
	ParseRefreshToken(token string) (string, error)
}

type TaskService interface {
	// Add creates a task owned by userID with completed=false
	// and the creation time set to now.
	Add(ctx context.Context, userID, title, description string) (*models.Task, error)

	// List returns one page of the user's tasks plus the
	// unfiltered total. Page defaults to 1, perPage to 5;
	// perPage is silently capped at 100.
	List(ctx context.Context, userID string, page, perPage int) (*TaskPage, error)

	// Get returns ErrTaskNotFound if no task matches both
	// id and userID.
	Get(ctx context.Context, userID string, id int64) (*models.Task, error)

	// Update overwrites title and description, leaving completed
	// and the creation time untouched. It returns ErrTaskNotFound
	// if no task matches both id and userID.
	Update(ctx context.Context, userID string, id int64, title, description string) error

	// Delete returns ErrTaskNotFound if no task matches both
	// id and userID.
	Delete(ctx context.Context, userID string, id int64) error
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type LoginResult struct {
	UserID                string
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

type RefreshResult struct {
	UserID               string
	AccessToken          string
	AccessTokenExpiresAt time.Time
}

type TaskPage struct {
	Page       int
	PerPage    int
	Total      int64
	TotalPages int64
	Tasks      []models.Task
}
