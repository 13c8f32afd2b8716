package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/school-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
)

type mockAuthRepo struct {
	userByEmail      *models.User
	findByEmailErr   error
	lastLoginUpdated bool
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	return m.userByEmail, nil
}

func (m *mockAuthRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginUpdated = true
	return errors.New("read-only replica")
}

func hashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func testAuthConfig() AuthConfig {
	return AuthConfig{AccessTokenSecret: "secret", AccessTokenExpiry: time.Hour, Issuer: "school-dashboard"}
}

func TestAuthServiceLoginWithCredentialStore(t *testing.T) {
	repo := &mockAuthRepo{userByEmail: &models.User{
		ID:           "u-1",
		Email:        "guru@sekolah.id",
		Name:         "Bu Sari",
		Role:         models.RoleGuru,
		Active:       true,
		PasswordHash: hashPassword(t, "rahasia"),
	}}
	svc := NewAuthService(NewCredentialStoreProvider(repo, zap.NewNop()), validator.New(), zap.NewNop(), testAuthConfig())

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "guru@sekolah.id", Password: "rahasia"})
	require.NoError(t, err)
	assert.True(t, repo.lastLoginUpdated)
	assert.Equal(t, models.RoleGuru, resp.User.Role)
	assert.Equal(t, "Bu Sari", resp.User.Name)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.False(t, resp.LoginTime.IsZero())

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, models.RoleGuru, claims.Role)
	assert.Equal(t, "guru@sekolah.id", claims.Email)
}

func TestAuthServiceLoginRejections(t *testing.T) {
	active := models.User{ID: "u-1", Email: "a@sekolah.id", Role: models.RoleSiswa, Active: true, PasswordHash: hashPassword(t, "pw")}
	inactive := models.User{ID: "u-2", Email: "b@sekolah.id", Role: models.RoleSiswa, Active: false, PasswordHash: hashPassword(t, "pw")}
	svc := NewAuthService(NewStaticProvider(active, inactive), nil, nil, testAuthConfig())

	cases := []struct {
		name string
		req  models.LoginRequest
		want *appErrors.Error
	}{
		{"missing password", models.LoginRequest{Email: "a@sekolah.id"}, appErrors.ErrInvalidArgument},
		{"malformed email", models.LoginRequest{Email: "nope", Password: "pw"}, appErrors.ErrInvalidArgument},
		{"unknown email", models.LoginRequest{Email: "x@sekolah.id", Password: "pw"}, appErrors.ErrInvalidCredentials},
		{"wrong password", models.LoginRequest{Email: "a@sekolah.id", Password: "bad"}, appErrors.ErrInvalidCredentials},
		{"inactive account", models.LoginRequest{Email: "b@sekolah.id", Password: "pw"}, appErrors.ErrInactiveAccount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestStaticProviderIgnoresEmailCase(t *testing.T) {
	provider := NewStaticProvider(models.User{ID: "u-1", Email: "Kepala@Sekolah.id", Role: models.RoleKepalaSekolah, Active: true, PasswordHash: hashPassword(t, "pw")})

	user, err := provider.Authenticate(context.Background(), "kepala@sekolah.id", "pw")
	require.NoError(t, err)
	assert.Equal(t, models.RoleKepalaSekolah, user.Role)
}

func TestCredentialStoreProviderMapsLookupFailures(t *testing.T) {
	notFound := NewCredentialStoreProvider(&mockAuthRepo{findByEmailErr: appErrors.Clone(appErrors.ErrNotFound, "")}, nil)
	_, err := notFound.Authenticate(context.Background(), "a@sekolah.id", "pw")
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	down := NewCredentialStoreProvider(&mockAuthRepo{findByEmailErr: appErrors.WrapAs(appErrors.ErrDataUnavailable, errors.New("refused"), "")}, nil)
	_, err = down.Authenticate(context.Background(), "a@sekolah.id", "pw")
	assert.ErrorIs(t, err, appErrors.ErrDataUnavailable)
}

func TestAuthServiceValidateTokenRejects(t *testing.T) {
	svc := NewAuthService(NewStaticProvider(), nil, nil, testAuthConfig())

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JWTClaims{UserID: "u-1"})
	signed, err := other.SignedString([]byte("another-secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestAuthServiceExpiredToken(t *testing.T) {
	svc := NewAuthService(NewStaticProvider(), nil, nil, testAuthConfig())
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.generateAccessToken(&models.User{ID: "u-1", Role: models.RoleGuru}, svc.now())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}
