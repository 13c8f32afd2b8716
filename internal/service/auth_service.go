package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/school-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
)

// AuthProvider verifies credentials and returns the matching account.
type AuthProvider interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id string, ts time.Time) error
}

// CredentialStoreProvider authenticates against the users table.
type CredentialStoreProvider struct {
	repo   authUserRepository
	logger *zap.Logger
}

// NewCredentialStoreProvider constructs a database backed AuthProvider.
func NewCredentialStoreProvider(repo authUserRepository, logger *zap.Logger) *CredentialStoreProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CredentialStoreProvider{repo: repo, logger: logger}
}

// Authenticate implements AuthProvider.
func (p *CredentialStoreProvider) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := p.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, storeFailure(err, "failed to fetch user")
	}

	if err := checkAccount(user, password); err != nil {
		return nil, err
	}

	if err := p.repo.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		p.logger.Warn("failed to update last login", zap.String("user_id", user.ID), zap.Error(err))
	}
	return user, nil
}

// StaticProvider authenticates against a fixed account list. It backs tests
// and local demos without a users table.
type StaticProvider struct {
	users map[string]models.User
}

// NewStaticProvider indexes users by lowercase email. PasswordHash must hold a
// bcrypt hash.
func NewStaticProvider(users ...models.User) *StaticProvider {
	index := make(map[string]models.User, len(users))
	for _, u := range users {
		index[strings.ToLower(u.Email)] = u
	}
	return &StaticProvider{users: index}
}

// Authenticate implements AuthProvider.
func (p *StaticProvider) Authenticate(_ context.Context, email, password string) (*models.User, error) {
	user, ok := p.users[strings.ToLower(email)]
	if !ok {
		return nil, appErrors.ErrInvalidCredentials
	}
	if err := checkAccount(&user, password); err != nil {
		return nil, err
	}
	return &user, nil
}

func checkAccount(user *models.User, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return appErrors.ErrInvalidCredentials
	}
	if !user.Active {
		return appErrors.ErrInactiveAccount
	}
	if !user.Role.Valid() {
		return appErrors.Clone(appErrors.ErrForbidden, "account has no dashboard role")
	}
	return nil
}

// AuthConfig defines configuration for token issuance.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
}

// AuthService issues and verifies access tokens.
type AuthService struct {
	provider  AuthProvider
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(provider AuthProvider, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.AccessTokenExpiry <= 0 {
		config.AccessTokenExpiry = 24 * time.Hour
	}
	return &AuthService{provider: provider, validator: validate, logger: logger, config: config, now: time.Now}
}

// Login authenticates a user and returns an access token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInvalidArgument, err, "email and password are required")
	}

	user, err := s.provider.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		s.logger.Info("login rejected", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	loginTime := s.now().UTC()
	token, err := s.generateAccessToken(user, loginTime)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to create access token")
	}

	return &models.LoginResponse{
		User: models.UserInfo{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
		AccessToken: token,
		ExpiresIn:   int64(s.config.AccessTokenExpiry.Seconds()),
		LoginTime:   loginTime,
	}, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrUnauthorized, err, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) generateAccessToken(user *models.User, issuedAt time.Time) (string, error) {
	claims := &models.JWTClaims{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.AccessTokenSecret))
}
