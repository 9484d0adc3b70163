package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobmatch/internal/observability"
	"jobmatch/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// AuthStore defines the database operations required by AuthProcessor
type AuthStore interface {
	CreateUser(ctx context.Context, user store.User) (store.User, error)
	GetUserByEmail(ctx context.Context, email string) (store.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (store.User, error)
}

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrNotConfigured      = errors.New("token signing is not configured")
)

// AuthConfig holds the token signing settings
type AuthConfig struct {
	JWTSecret string
	JWTExpiry time.Duration
}

type AuthProcessor struct {
	store      AuthStore
	authConfig AuthConfig
	logger     *observability.Logger
	now        func() time.Time
}

func New(store AuthStore, authConfig AuthConfig, logger *observability.Logger) AuthProcessor {
	return AuthProcessor{
		store:      store,
		authConfig: authConfig,
		logger:     logger,
		now:        time.Now,
	}
}

// RegisterParams represents parameters for creating an account
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthResult is returned by register and login
type AuthResult struct {
	Token string     `json:"token"`
	User  store.User `json:"user"`
}

func (p *AuthProcessor) Register(ctx context.Context, params RegisterParams) (AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	ctx = observability.WithFields(ctx, observability.Field{Key: "email", Value: email})

	if params.Role != store.RoleSeeker && params.Role != store.RoleEmployer {
		return AuthResult{}, ErrInvalidRole
	}
	if p.authConfig.JWTSecret == "" {
		p.logger.Warn(ctx, "registration attempted without JWT_SECRET configured")
		return AuthResult{}, ErrNotConfigured
	}

	_, err := p.store.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return AuthResult{}, ErrEmailAlreadyExists
	case !errors.Is(err, store.ErrNotFound):
		p.logger.Error(ctx, "failed to check if email exists", err)
		return AuthResult{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		p.logger.Error(ctx, "failed to hash password", err)
		return AuthResult{}, err
	}

	user, err := p.store.CreateUser(ctx, store.User{
		Name:         strings.TrimSpace(params.Name),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         params.Role,
	})
	if err != nil {
		// Lost a race with a concurrent signup for the same email.
		if errors.Is(err, store.ErrDuplicate) {
			return AuthResult{}, ErrEmailAlreadyExists
		}
		p.logger.Error(ctx, "failed to create user", err)
		return AuthResult{}, err
	}

	token, err := p.GenerateToken(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	p.logger.Info(ctx, "user registered", observability.Field{Key: "user_id", Value: user.ID.Hex()})
	return AuthResult{Token: token, User: user}, nil
}

func (p *AuthProcessor) Login(ctx context.Context, email string, password string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	ctx = observability.WithFields(ctx, observability.Field{Key: "email", Value: email})
	if p.authConfig.JWTSecret == "" {
		p.logger.Warn(ctx, "login attempted without JWT_SECRET configured")
		return AuthResult{}, ErrNotConfigured
	}

	user, err := p.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		p.logger.Error(ctx, "failed to get user by email", err)
		return AuthResult{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		p.logger.Info(ctx, "password mismatch")
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := p.GenerateToken(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: user}, nil
}

// GetUser returns the user identified by a token subject.
func (p *AuthProcessor) GetUser(ctx context.Context, userID string) (store.User, error) {
	id, err := store.ParseID(userID)
	if err != nil {
		return store.User{}, ErrInvalidToken
	}
	user, err := p.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, ErrUserNotFound
		}
		p.logger.Error(ctx, "failed to get user", err)
		return store.User{}, err
	}
	return user, nil
}
