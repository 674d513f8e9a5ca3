package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/auth"
	"github.com/dmitrijs2005/taskboard/internal/server/config"
	"github.com/dmitrijs2005/taskboard/internal/server/events"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskboard/internal/server/validation"
)

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint tokens
// - Authenticate: resolve a bearer token to a user
type UserService struct {
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	events                events.Publisher
	log                   logging.Logger
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(m repomanager.RepositoryManager, cfg *config.Config, pub events.Publisher, log logging.Logger) *UserService {
	return &UserService{
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		events:                pub,
		log:                   log,
	}
}

// Register creates a new account. The email is checked before the username,
// so a request that collides on both reports the email.
func (s *UserService) Register(ctx context.Context, in *validation.RegisterInput) (*AuthResult, error) {
	repo := s.repomanager.Users()

	if err := s.ensureFree(func() error { _, err := repo.GetByEmail(ctx, in.Email); return err }, "Email already exists"); err != nil {
		return nil, err
	}
	if err := s.ensureFree(func() error { _, err := repo.GetByUsername(ctx, in.Username); return err }, "Username already exists"); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := repo.Create(ctx, &models.User{
		Username:     in.Username,
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, s.duplicateOf(ctx, in)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	events.Emit(ctx, s.events, s.log, events.Event{Type: events.UserRegistered, UserID: user.ID, EntityID: user.ID})

	return s.issue(user)
}

// ensureFree runs lookup and turns a hit into a ConflictError with msg.
func (s *UserService) ensureFree(lookup func() error, msg string) error {
	err := lookup()
	switch {
	case err == nil:
		return &ConflictError{Message: msg}
	case errors.Is(err, common.ErrorNotFound):
		return nil
	default:
		return fmt.Errorf("error searching user: %w", err)
	}
}

// duplicateOf names the field behind a unique violation that slipped past
// the checks in Register. Email wins when both collide.
func (s *UserService) duplicateOf(ctx context.Context, in *validation.RegisterInput) error {
	if _, err := s.repomanager.Users().GetByEmail(ctx, in.Email); err == nil {
		return &ConflictError{Message: "Email already exists"}
	}
	return &ConflictError{Message: "Username already exists"}
}

// Login verifies the password for email and, on success, returns a new token.
// Unknown emails and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, in *validation.LoginInput) (*AuthResult, error) {
	user, err := s.repomanager.Users().GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		return nil, common.ErrorUnauthorized
	}

	return s.issue(user)
}

// Authenticate verifies token and loads the user it names. It returns
// common.ErrInvalidToken or common.ErrTokenExpired for bad tokens and
// common.ErrorUnauthorized when the user no longer exists.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	return user, nil
}

// --- helpers below ---

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}
