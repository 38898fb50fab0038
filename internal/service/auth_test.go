package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitturk/backend/internal/models"
	"github.com/fitturk/backend/internal/testhelpers"
	"github.com/fitturk/backend/internal/types"
)

const testSecret = "auth-test-secret-value"

func newTestAuthService(t *testing.T) (*AuthService, *testhelpers.TestDeps) {
	t.Helper()
	deps := testhelpers.NewTestDeps(t)
	return NewAuthService(deps.DB, deps.Enc, testSecret, time.Hour), deps
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("stores hashed password and empty encrypted profile", func(t *testing.T) {
		svc, deps := newTestAuthService(t)

		err := svc.Register(ctx, &types.RegisterRequest{Name: " Ayşe ", Email: " Ayse@Example.com ", Password: "s3cret-pass"})
		require.NoError(t, err)

		var user models.User
		require.NoError(t, deps.DB.First(&user, "email = ?", "ayse@example.com").Error)
		assert.Equal(t, "Ayşe", user.Name)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))

		cost, err := bcrypt.Cost([]byte(user.PasswordHash))
		require.NoError(t, err)
		assert.Equal(t, PasswordCost, cost)

		var profile types.Profile
		require.NoError(t, deps.Enc.DecryptJSON(user.Profile, &profile))
		assert.Equal(t, types.Profile{}, profile)
	})

	t.Run("duplicate email conflicts regardless of case", func(t *testing.T) {
		svc, _ := newTestAuthService(t)

		require.NoError(t, svc.Register(ctx, &types.RegisterRequest{Email: "dup@example.com", Password: "s3cret-pass"}))
		err := svc.Register(ctx, &types.RegisterRequest{Email: "DUP@example.com", Password: "other-pass"})

		require.Error(t, err)
		assert.Equal(t, KindConflict, KindOf(err))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)
	require.NoError(t, svc.Register(ctx, &types.RegisterRequest{Name: "Deniz", Email: "deniz@example.com", Password: "s3cret-pass"}))

	t.Run("valid credentials", func(t *testing.T) {
		token, user, err := svc.Login(ctx, "Deniz@Example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, "deniz@example.com", user.Email)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.Email, claims.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "deniz@example.com", "wrong-pass")
		assert.Equal(t, KindUnauthorized, KindOf(err))
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email looks the same", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "s3cret-pass")
		assert.Equal(t, KindUnauthorized, KindOf(err))
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	user := &models.User{ID: uuid.New(), Email: "ece@example.com"}

	sign := func(claims *types.TokenClaims, method jwt.SigningMethod, key interface{}) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	t.Run("round trip", func(t *testing.T) {
		token, err := svc.GenerateToken(user)
		require.NoError(t, err)
		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("expired", func(t *testing.T) {
		token := sign(&types.TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
			UserID:           user.ID,
		}, jwt.SigningMethodHS256, []byte(testSecret))
		_, err := svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		token := sign(&types.TokenClaims{UserID: user.ID}, jwt.SigningMethodHS256, []byte(testSecret))
		_, err := svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := sign(&types.TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
			UserID:           user.ID,
		}, jwt.SigningMethodHS256, []byte("some-other-secret"))
		_, err := svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other algorithm", func(t *testing.T) {
		token := sign(&types.TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
			UserID:           user.ID,
		}, jwt.SigningMethodHS512, []byte(testSecret))
		_, err := svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestGetUserByID(t *testing.T) {
	svc, deps := newTestAuthService(t)
	user := testhelpers.CreateTestUser(t, deps.DB, deps.Enc, "found@example.com")

	got, err := svc.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.GetUserByID(context.Background(), uuid.New())
	assert.Equal(t, KindNotFound, KindOf(err))
}
