package identity_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	identityapp "github.com/dairyops/backend/internal/application/identity"
	"github.com/dairyops/backend/internal/domain/audit"
	"github.com/dairyops/backend/internal/domain/identity"
	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/dairyops/backend/internal/infrastructure/auth"
	"github.com/dairyops/backend/internal/infrastructure/config"
	"github.com/dairyops/backend/internal/infrastructure/persistence"
)

type identityFixture struct {
	db        *gorm.DB
	auth      *identityapp.AuthService
	users     *identityapp.UserService
	jwt       *auth.JWTService
	blacklist *auth.InMemoryTokenBlacklist
	actor     identity.Principal
}

func newIdentityFixture(t *testing.T) *identityFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&identity.User{}))

	userRepo := persistence.NewGormUserRepository(db)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-for-access-tokens",
		RefreshSecret:          "test-secret-for-refresh-tokens",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "dairyops-test",
		MaxRefreshCount:        10,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	return &identityFixture{
		db:        db,
		auth:      identityapp.NewAuthService(userRepo, jwtService, blacklist, audit.NopSink{}, zap.NewNop()),
		users:     identityapp.NewUserService(userRepo, audit.NopSink{}),
		jwt:       jwtService,
		blacklist: blacklist,
		actor: identity.Principal{
			UserID:   uuid.New(),
			Username: "bharat",
			Role:     identity.RoleSuperAdmin,
		},
	}
}

func (f *identityFixture) createUser(t *testing.T, username, password string, role identity.Role) *identityapp.UserResponse {
	t.Helper()

	user, err := f.users.Create(context.Background(), f.actor, identityapp.CreateUserRequest{
		Username: username,
		Password: password,
		Role:     role.String(),
	})
	require.NoError(t, err)
	return user
}

func TestAuthService_LoginIssuesTokenPair(t *testing.T) {
	f := newIdentityFixture(t)
	f.createUser(t, "counter1", "milkround8", identity.RoleVendor)

	resp, err := f.auth.Login(context.Background(), identityapp.LoginRequest{
		Username: "counter1",
		Password: "milkround8",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "counter1", resp.User.Username)
	assert.Equal(t, identity.RoleVendor.String(), resp.User.Role)

	claims, err := f.jwt.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "counter1", claims.Username)
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	f := newIdentityFixture(t)
	f.createUser(t, "counter1", "milkround8", identity.RoleVendor)

	var domainErr *shared.DomainError

	_, err := f.auth.Login(context.Background(), identityapp.LoginRequest{
		Username: "counter1",
		Password: "wrong-password",
	})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)

	// Unknown usernames fail with the same error as a wrong password.
	_, err = f.auth.Login(context.Background(), identityapp.LoginRequest{
		Username: "nobody",
		Password: "milkround8",
	})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_LoginRejectsDeactivatedUser(t *testing.T) {
	f := newIdentityFixture(t)
	created := f.createUser(t, "counter1", "milkround8", identity.RoleVendor)

	_, err := f.users.SetActive(context.Background(), f.actor, created.ID, false)
	require.NoError(t, err)

	_, err = f.auth.Login(context.Background(), identityapp.LoginRequest{
		Username: "counter1",
		Password: "milkround8",
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_LogoutBlacklistsAccessToken(t *testing.T) {
	f := newIdentityFixture(t)
	f.createUser(t, "counter1", "milkround8", identity.RoleVendor)

	resp, err := f.auth.Login(context.Background(), identityapp.LoginRequest{
		Username: "counter1",
		Password: "milkround8",
	})
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(context.Background(), resp.AccessToken))

	claims, err := f.jwt.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	revoked, err := f.blacklist.IsBlacklisted(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthService_LogoutRejectsGarbageToken(t *testing.T) {
	f := newIdentityFixture(t)

	err := f.auth.Logout(context.Background(), "not-a-token")
	require.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestAuthService_RefreshRotatesPair(t *testing.T) {
	f := newIdentityFixture(t)
	f.createUser(t, "counter1", "milkround8", identity.RoleVendor)

	login, err := f.auth.Login(context.Background(), identityapp.LoginRequest{
		Username: "counter1",
		Password: "milkround8",
	})
	require.NoError(t, err)

	refreshed, err := f.auth.Refresh(context.Background(), identityapp.RefreshRequest{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "counter1", refreshed.User.Username)

	claims, err := f.jwt.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, identity.RoleVendor.String(), claims.Role)
}

func TestAuthService_RefreshRejectsDeactivatedUser(t *testing.T) {
	f := newIdentityFixture(t)
	created := f.createUser(t, "counter1", "milkround8", identity.RoleVendor)

	login, err := f.auth.Login(context.Background(), identityapp.LoginRequest{
		Username: "counter1",
		Password: "milkround8",
	})
	require.NoError(t, err)

	_, err = f.users.SetActive(context.Background(), f.actor, created.ID, false)
	require.NoError(t, err)

	_, err = f.auth.Refresh(context.Background(), identityapp.RefreshRequest{
		RefreshToken: login.RefreshToken,
	})
	require.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestAuthService_RefreshRejectsAccessToken(t *testing.T) {
	f := newIdentityFixture(t)
	f.createUser(t, "counter1", "milkround8", identity.RoleVendor)

	login, err := f.auth.Login(context.Background(), identityapp.LoginRequest{
		Username: "counter1",
		Password: "milkround8",
	})
	require.NoError(t, err)

	_, err = f.auth.Refresh(context.Background(), identityapp.RefreshRequest{
		RefreshToken: login.AccessToken,
	})
	require.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestUserService_CreateRejectsDuplicateUsername(t *testing.T) {
	f := newIdentityFixture(t)
	f.createUser(t, "counter1", "milkround8", identity.RoleVendor)

	_, err := f.users.Create(context.Background(), f.actor, identityapp.CreateUserRequest{
		Username: "counter1",
		Password: "different8",
		Role:     identity.RoleAdmin.String(),
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestUserService_CreateValidatesRoleAndPassword(t *testing.T) {
	f := newIdentityFixture(t)

	var domainErr *shared.DomainError

	_, err := f.users.Create(context.Background(), f.actor, identityapp.CreateUserRequest{
		Username: "counter1",
		Password: "milkround8",
		Role:     "janitor",
	})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_ROLE", domainErr.Code)

	_, err = f.users.Create(context.Background(), f.actor, identityapp.CreateUserRequest{
		Username: "counter1",
		Password: "short",
		Role:     identity.RoleVendor.String(),
	})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PASSWORD", domainErr.Code)
}

func TestUserService_ChangePassword(t *testing.T) {
	f := newIdentityFixture(t)
	created := f.createUser(t, "counter1", "milkround8", identity.RoleVendor)

	err := f.users.ChangePassword(context.Background(), f.actor, created.ID,
		identityapp.ChangePasswordRequest{Password: "newround9"})
	require.NoError(t, err)

	_, err = f.auth.Login(context.Background(), identityapp.LoginRequest{
		Username: "counter1",
		Password: "milkround8",
	})
	require.Error(t, err)

	resp, err := f.auth.Login(context.Background(), identityapp.LoginRequest{
		Username: "counter1",
		Password: "newround9",
	})
	require.NoError(t, err)
	assert.Equal(t, "counter1", resp.User.Username)
}

func TestUserService_ChangePasswordUnknownUser(t *testing.T) {
	f := newIdentityFixture(t)

	err := f.users.ChangePassword(context.Background(), f.actor, uuid.New(),
		identityapp.ChangePasswordRequest{Password: "newround9"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "USER_NOT_FOUND", domainErr.Code)
}

func TestUserService_ListReturnsAllUsers(t *testing.T) {
	f := newIdentityFixture(t)
	f.createUser(t, "counter1", "milkround8", identity.RoleVendor)
	created := f.createUser(t, "manager1", "milkround8", identity.RoleAdmin)

	_, err := f.users.SetActive(context.Background(), f.actor, created.ID, false)
	require.NoError(t, err)

	users, err := f.users.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
}
