package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/board_go_server/config"
	"github.com/qs3c/board_go_server/internal/model"
	"github.com/qs3c/board_go_server/internal/model/dto"
	"github.com/qs3c/board_go_server/internal/pkg/jwt"
	"github.com/qs3c/board_go_server/internal/repository"
	"github.com/qs3c/board_go_server/internal/testutil"
)

func setupAuthService(t *testing.T) (*AuthService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	memberRepo := repository.NewMemberRepository(db)

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:              "test-secret-key-for-testing",
			AccessExpireMinutes: 30,
			RefreshExpireHours:  168,
		},
	}

	service := NewAuthService(memberRepo, cfg)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, db, cleanup
}

func registerMember(t *testing.T, service *AuthService, email, password string) *dto.RegisterResponse {
	t.Helper()

	resp, err := service.Register(&dto.RegisterRequest{
		Email:    email,
		Password: password,
		Nickname: "tester",
	})
	require.NoError(t, err)
	return resp
}

func TestAuthService_Register_Success(t *testing.T) {
	service, db, cleanup := setupAuthService(t)
	defer cleanup()

	resp, err := service.Register(&dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "password123",
		Nickname: "newbie",
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.MemberID)
	assert.Equal(t, "new@example.com", resp.Email)

	var member model.Member
	require.NoError(t, db.First(&member, resp.MemberID).Error)
	assert.Equal(t, "USER", member.Authorities)
	// Password must be stored hashed
	assert.NotEqual(t, "password123", member.Password)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	registerMember(t, service, "dup@example.com", "password123")

	_, err := service.Register(&dto.RegisterRequest{
		Email:    "dup@example.com",
		Password: "password456",
		Nickname: "dup",
	})
	assert.ErrorIs(t, err, ErrMemberAlreadyExist)
}

func TestAuthService_Login_Success(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	registerMember(t, service, "login@example.com", "password123")

	resp, err := service.Login(&dto.LoginRequest{
		Email:    "login@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "login@example.com", resp.Member.Email)
	assert.Equal(t, []string{"USER"}, resp.Member.Authorities)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	service, db, cleanup := setupAuthService(t)
	defer cleanup()

	registerMember(t, service, "victim@example.com", "password123")

	_, err := service.Login(&dto.LoginRequest{
		Email:    "victim@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Failed login must not issue a refresh token
	var member model.Member
	require.NoError(t, db.Where("email = ?", "victim@example.com").First(&member).Error)
	assert.Nil(t, member.RefreshToken)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	// Unknown email and wrong password are indistinguishable
	_, err := service.Login(&dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_ReplacesRefreshToken(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	registerMember(t, service, "rotate@example.com", "password123")

	first, err := service.Login(&dto.LoginRequest{Email: "rotate@example.com", Password: "password123"})
	require.NoError(t, err)
	second, err := service.Login(&dto.LoginRequest{Email: "rotate@example.com", Password: "password123"})
	require.NoError(t, err)

	// Only the most recent refresh token stays valid
	_, err = service.Refresh(first.RefreshToken)
	assert.ErrorIs(t, err, ErrUnknownRefreshToken)

	resp, err := service.Refresh(second.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestAuthService_Refresh_Success(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	registerMember(t, service, "refresh@example.com", "password123")
	login, err := service.Login(&dto.LoginRequest{Email: "refresh@example.com", Password: "password123"})
	require.NoError(t, err)

	resp, err := service.Refresh(login.RefreshToken)
	require.NoError(t, err)

	claims, err := jwt.ParseToken(resp.AccessToken, "test-secret-key-for-testing")
	require.NoError(t, err)
	assert.Equal(t, jwt.TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "refresh@example.com", claims.Email)
}

func TestAuthService_Refresh_UnknownToken(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.Refresh("never-issued")
	assert.ErrorIs(t, err, ErrUnknownRefreshToken)
}

func TestAuthService_Refresh_AccessTokenRejected(t *testing.T) {
	service, db, cleanup := setupAuthService(t)
	defer cleanup()

	registerMember(t, service, "mixup@example.com", "password123")
	login, err := service.Login(&dto.LoginRequest{Email: "mixup@example.com", Password: "password123"})
	require.NoError(t, err)

	// Plant the access token in the refresh slot: type check must reject it
	require.NoError(t, db.Model(&model.Member{}).
		Where("email = ?", "mixup@example.com").
		Update("refresh_token", login.AccessToken).Error)

	_, err = service.Refresh(login.AccessToken)
	assert.ErrorIs(t, err, ErrUnknownRefreshToken)
}

func TestAuthService_Refresh_ExpiredToken(t *testing.T) {
	service, db, cleanup := setupAuthService(t)
	defer cleanup()

	registerMember(t, service, "stale@example.com", "password123")

	expired, err := jwt.GenerateRefreshToken(1, "stale@example.com", "test-secret-key-for-testing", -1)
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.Member{}).
		Where("email = ?", "stale@example.com").
		Update("refresh_token", expired).Error)

	_, err = service.Refresh(expired)
	assert.ErrorIs(t, err, ErrUnknownRefreshToken)
}

func TestAuthService_Logout(t *testing.T) {
	service, db, cleanup := setupAuthService(t)
	defer cleanup()

	registerMember(t, service, "bye@example.com", "password123")
	login, err := service.Login(&dto.LoginRequest{Email: "bye@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, service.Logout("bye@example.com"))

	var member model.Member
	require.NoError(t, db.Where("email = ?", "bye@example.com").First(&member).Error)
	assert.Nil(t, member.RefreshToken)

	// Refresh token is dead after logout
	_, err = service.Refresh(login.RefreshToken)
	assert.ErrorIs(t, err, ErrUnknownRefreshToken)
}

func TestAuthService_GetMemberByEmail_NotFound(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.GetMemberByEmail("ghost@example.com")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestAuthService_PurgeExpiredRefreshTokens(t *testing.T) {
	service, db, cleanup := setupAuthService(t)
	defer cleanup()

	registerMember(t, service, "fresh@example.com", "password123")
	_, err := service.Login(&dto.LoginRequest{Email: "fresh@example.com", Password: "password123"})
	require.NoError(t, err)

	expired, err := jwt.GenerateRefreshToken(2, "old@example.com", "test-secret-key-for-testing", -1)
	require.NoError(t, err)
	testutil.TestMember(t, db,
		testutil.WithEmail("old@example.com"),
		testutil.WithRefreshToken(expired))

	purged, err := service.PurgeExpiredRefreshTokens()
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	var member model.Member
	require.NoError(t, db.Where("email = ?", "fresh@example.com").First(&member).Error)
	assert.NotNil(t, member.RefreshToken)

	var oldMember model.Member
	require.NoError(t, db.Where("email = ?", "old@example.com").First(&oldMember).Error)
	assert.Nil(t, oldMember.RefreshToken)
}
