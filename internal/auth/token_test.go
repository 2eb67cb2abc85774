package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "task-dashboard.com/task-dashboard/internal/errors"
)

func newTestTokenService() *TokenService {
	return NewTokenService(TokenConfig{
		SecretKey: "test-secret-key",
		Issuer:    "test-issuer",
		TTL:       DefaultTokenTTL,
	})
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := newTestTokenService()

	token, expiresAt, err := svc.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
}

func TestTokenService_DefaultTTL(t *testing.T) {
	svc := NewTokenService(TokenConfig{SecretKey: "k"})

	_, expiresAt, err := svc.Issue("u")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), expiresAt, 5*time.Second)
}

func TestTokenService_Expired(t *testing.T) {
	svc := newTestTokenService()
	issuedAt := time.Now().Add(-8 * 24 * time.Hour)
	svc.now = func() time.Time { return issuedAt }

	token, _, err := svc.Issue("user-123")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, _, err := newTestTokenService().Issue("user-123")
	require.NoError(t, err)

	other := NewTokenService(TokenConfig{SecretKey: "another-key"})
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenService_RejectsForeignAlgorithm(t *testing.T) {
	claims := Claims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestTokenService().Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenService_RejectsMissingUserID(t *testing.T) {
	svc := newTestTokenService()
	token, _, err := svc.Issue("")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenService_Malformed(t *testing.T) {
	svc := newTestTokenService()

	for _, token := range []string{"not.a.valid.token", "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid", "garbage"} {
		t.Run(token, func(t *testing.T) {
			_, err := svc.Verify(token)
			assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"bearer abc", "abc", nil},
		{"", "", apperrors.ErrMissingToken},
		{"Bearer", "", apperrors.ErrMissingToken},
		{"Bearer   ", "", apperrors.ErrMissingToken},
		{"Basic dXNlcjpwYXNz", "", apperrors.ErrMissingToken},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
