package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"safecity/internal/config"
	"safecity/internal/models"
	"safecity/internal/repositories/interfaces"
	"safecity/internal/utils"
	"safecity/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type AuthService interface {
	SignUp(ctx context.Context, name, email, password string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (string, *models.Session, error)
	SignOut(ctx context.Context, token string) error
	SessionFromToken(ctx context.Context, token string) (*models.Session, error)
	User(ctx context.Context, session *models.Session) (*models.User, error)
}

type sessionClaims struct {
	UserID string      `json:"uid"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo interfaces.UserRepository
	cache    Cache
	logger   *logger.Logger
	config   *config.AuthConfig
}

func NewAuthService(userRepo interfaces.UserRepository, cache Cache, logger *logger.Logger, config *config.AuthConfig) AuthService {
	return &authService{
		userRepo: userRepo,
		cache:    cache,
		logger:   logger,
		config:   config,
	}
}

func (s *authService) SignUp(ctx context.Context, name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if fields := validateSignUp(name, email, password); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:     utils.SanitizeString(name),
		Email:    email,
		Password: string(hash),
		Role:     models.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.WithUserID(user.ID).Info("User signed up")

	return user, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (string, *models.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	session := &models.Session{
		ID:        utils.GenerateSessionID(),
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(s.config.SessionTTL),
	}

	// the session must be live in the store; a signed token alone is
	// not enough, which is what makes sign-out effective
	if err := s.cache.Set(ctx, utils.CacheSessionPrefix+session.ID, session, s.config.SessionTTL); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	token, err := s.signToken(session)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}

	s.logger.WithUserID(user.ID).WithField("session_id", session.ID).Info("User signed in")

	return token, session, nil
}

func (s *authService) SignOut(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		// an invalid token has no live session to revoke
		return nil
	}

	if err := s.cache.Delete(ctx, utils.CacheSessionPrefix+claims.ID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	return nil
}

func (s *authService) SessionFromToken(ctx context.Context, token string) (*models.Session, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	var session models.Session
	if err := s.cache.Get(ctx, utils.CacheSessionPrefix+claims.ID, &session); err != nil {
		// revoked or expired out of the store
		return nil, ErrUnauthorized
	}

	if session.Expired() {
		return nil, ErrUnauthorized
	}

	return &session, nil
}

// User loads the account behind a resolved session. A session whose
// account no longer exists surfaces as not found, not as a panic later.
func (s *authService) User(ctx context.Context, session *models.Session) (*models.User, error) {
	if session == nil {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", session.UserID.Hex(), err)
	}

	return user, nil
}

func (s *authService) signToken(session *models.Session) (string, error) {
	claims := sessionClaims{
		UserID: session.UserID.Hex(),
		Role:   session.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

func (s *authService) parseToken(token string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	if _, err := primitive.ObjectIDFromHex(claims.UserID); err != nil {
		return nil, errors.New("malformed user id in token")
	}

	return claims, nil
}

func validateSignUp(name, email, password string) map[string]string {
	fields := make(map[string]string)

	if !utils.IsValidName(name) {
		fields["name"] = "name must be at least 2 characters"
	}
	if !utils.IsValidEmail(email) {
		fields["email"] = "a valid email is required"
	}
	if len(password) < minPasswordLength {
		fields["password"] = fmt.Sprintf("password must be at least %d characters", minPasswordLength)
	}

	return fields
}
