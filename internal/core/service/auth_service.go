package service

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bloglist/bloglist-api/internal/api/metrics"
	"github.com/bloglist/bloglist-api/internal/core/domain"
	"github.com/bloglist/bloglist-api/internal/core/ports"
)

// AuthService verifies credentials and issues signed bearer tokens.
//
// Tokens are HS256 JWTs carrying {id, username} and nothing else. There is
// deliberately no exp claim: the tokens are time-unbounded and Verify performs
// no expiry check. Adding expiry later means adding the claim plus a clock
// check in Verify, not inferring it.
type AuthService struct {
	users     ports.UserRepository
	limiter   ports.LoginLimiter
	jwtSecret string
	log       zerolog.Logger
}

// NewAuthService returns an AuthService. limiter may be nil to disable the
// failed-attempt throttle.
func NewAuthService(users ports.UserRepository, limiter ports.LoginLimiter, jwtSecret string, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, limiter: limiter, jwtSecret: jwtSecret, log: log}
}

// Login checks a username/password pair and returns a signed token and the
// user. Unknown username and wrong password produce the same error so the
// response does not reveal which part was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		blocked, err := s.limiter.TooManyAttempts(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("login throttle check failed, allowing attempt")
		} else if blocked {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		return "", nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Clear(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to clear login throttle")
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", username).Msg("user logged in")
	return token, user, nil
}

// Verify validates the signature of a token string and returns the user id
// embedded in it. Empty, malformed, and badly signed tokens all map to
// domain.ErrInvalidToken.
func (s *AuthService) Verify(token string) (string, error) {
	if token == "" {
		return "", domain.ErrInvalidToken
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidToken
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return "", domain.ErrInvalidToken
	}
	return id, nil
}

func (s *AuthService) signToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
	}
}
