package services

import (
	"context"
	"errors"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jmuhoro/todo-api/internal/models"
	"github.com/jmuhoro/todo-api/internal/storage"
)

type authServiceImpl struct {
	logger zerolog.Logger
	users  storage.UserStore
	tokens TokenService
}

func NewAuthService(
	logger zerolog.Logger,
	users storage.UserStore,
	tokens TokenService,
) AuthService {
	return &authServiceImpl{
		logger: logger,
		users:  users,
		tokens: tokens,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, params RegisterParams) error {
	if params.Name == "" || params.Email == "" || params.Password == "" {
		s.logger.Error().Msg("name, email and password are required")
		return ErrMissingFields
	}

	user := models.User{
		Name:      params.Name,
		Email:     params.Email,
		CreatedAt: time.Now(),
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate user uuid")
		return err
	}
	user.ID = userUUID.String()

	passwordHash, err := argon2id.CreateHash(params.Password, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return err
	}
	user.Password = passwordHash

	err = s.users.CreateUser(ctx, &user)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			s.logger.Error().
				Str("email", user.Email).
				Msg("user with this email already exists")
			return ErrEmailTaken
		}

		s.logger.Error().
			Err(err).
			Msg("failed to create user")
		return err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("registered user")
	return nil
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	if params.Email == "" || params.Password == "" {
		s.logger.Error().Msg("email and password are required")
		return nil, ErrMissingFields
	}

	user, err := s.users.UserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Error().
				Str("email", params.Email).
				Msg("user not found")
			return nil, ErrInvalidCredentials
		}

		s.logger.Error().
			Err(err).
			Str("email", params.Email).
			Msg("failed to select user by email")
		return nil, err
	}

	match, err := argon2id.ComparePasswordAndHash(params.Password, user.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return nil, err
	} else if !match {
		s.logger.Error().Msg("passwords do not match")
		return nil, ErrInvalidCredentials
	}

	accessToken, accessTokenExpiresAt, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to issue access token")
		return nil, err
	}

	refreshToken, refreshTokenExpiresAt, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to issue refresh token")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("logged in")
	return &LoginResult{
		UserID:                user.ID,
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessTokenExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshTokenExpiresAt,
	}, nil
}

func (s *authServiceImpl) Refresh(_ context.Context, refreshToken string) (*RefreshResult, error) {
	userID, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to parse refresh token")
		return nil, err
	}

	accessToken, accessTokenExpiresAt, err := s.tokens.IssueAccessToken(userID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to issue access token")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Msg("refreshed access token")
	return &RefreshResult{
		UserID:               userID,
		AccessToken:          accessToken,
		AccessTokenExpiresAt: accessTokenExpiresAt,
	}, nil
}
