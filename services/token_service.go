package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/mateus/app-pelada/models"
)

const (
	claimUserID = "user_id"
	claimEmail  = "email"
)

// TokenService issues and verifies the bearer tokens handed out on login.
type TokenService interface {
	Issue(user *models.User) (string, error)
	// Parse validates the token and returns the authenticated user id.
	Parse(token string) (int, error)
}

type jwtTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) TokenService {
	return &jwtTokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *jwtTokenService) Issue(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":       strconv.Itoa(user.ID),
		claimUserID: user.ID,
		claimEmail:  user.Email,
		"iat":       now.Unix(),
		"exp":       now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtTokenService) Parse(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, ErrAuthenticationFailed
	}
	return userIDFromClaims(claims)
}

// userIDFromClaims accepts the id as a JSON number or a numeric string.
func userIDFromClaims(claims jwt.MapClaims) (int, error) {
	raw, ok := claims[claimUserID]
	if !ok {
		return 0, fmt.Errorf("%w: missing '%s' claim", ErrAuthenticationFailed, claimUserID)
	}

	var id int
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%w: '%s' claim is not an integer", ErrAuthenticationFailed, claimUserID)
		}
		id = int(v)
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%w: '%s' claim is not numeric", ErrAuthenticationFailed, claimUserID)
		}
		id = parsed
	default:
		return 0, fmt.Errorf("%w: invalid type %T for '%s' claim", ErrAuthenticationFailed, raw, claimUserID)
	}

	if id <= 0 {
		return 0, errors.Join(ErrAuthenticationFailed, fmt.Errorf("invalid user id %d", id))
	}
	return id, nil
}
