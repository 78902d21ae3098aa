package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
}

type tokenServiceImpl struct {
	issuer          string
	signingKey      []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewTokenService(
	issuer string,
	signingKey []byte,
	accessTokenTTL time.Duration,
	refreshTokenTTL time.Duration,
) TokenService {
	return &tokenServiceImpl{
		issuer:          issuer,
		signingKey:      signingKey,
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

func (s *tokenServiceImpl) IssueAccessToken(userID string) (string, time.Time, error) {
	return s.issueToken(userID, tokenTypeAccess, s.accessTokenTTL)
}

func (s *tokenServiceImpl) IssueRefreshToken(userID string) (string, time.Time, error) {
	return s.issueToken(userID, tokenTypeRefresh, s.refreshTokenTTL)
}

func (s *tokenServiceImpl) ParseAccessToken(token string) (string, error) {
	return s.parseToken(token, tokenTypeAccess)
}

func (s *tokenServiceImpl) ParseRefreshToken(token string) (string, error) {
	return s.parseToken(token, tokenTypeRefresh)
}

func (s *tokenServiceImpl) issueToken(userID, tokenType string, ttl time.Duration) (string, time.Time, error) {
	tokenUUID, err := uuid.NewRandom()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate id: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenUUID.String(),
			Issuer:    s.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TokenType: tokenType,
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *tokenServiceImpl) parseToken(tokenString, wantType string) (string, error) {
	t, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithIssuer(s.issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: token is expired: %w", ErrInvalidToken, err)
		}
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := t.Claims.(*tokenClaims)
	if !ok {
		return "", fmt.Errorf("%w: unexpected claims type", ErrInvalidToken)
	}
	if claims.TokenType != wantType {
		return "", fmt.Errorf("%w: not an %s token", ErrInvalidToken, wantType)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}
