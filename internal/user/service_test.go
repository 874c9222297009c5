package user

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwttoken "github.com/tanchhohang/airlines-api/internal/jwt_token"
	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

func newTestService(t *testing.T) (*Service, *jwttoken.JWTService) {
	t.Helper()
	tokens := jwttoken.NewJWTService("test-signing-key", "airlines-api", "airlines-api")
	svc, err := NewService(NewInMemory(), tokens, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return svc, tokens
}

func registerInput() RegisterInput {
	return RegisterInput{
		Username:            "sita",
		Password:            "gateway-pass",
		UpstreamUserID:      "agent007",
		UpstreamAPIPassword: "s3cret",
		AgencyID:            "AG123",
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "gateway-pass", created.PasswordHash)
	assert.Equal(t, "AG123", created.AgencyID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)
	_, err = svc.Register(ctx, registerInput())
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeValidation))
}

func TestLoginIssuesTokenWithUpstreamCredentials(t *testing.T) {
	svc, tokens := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	result, err := svc.Login(ctx, "sita", "gateway-pass")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", result.TokenType)

	claims, err := tokens.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "sita", claims.Username)
	assert.Equal(t, "agent007", claims.UserID)
	assert.Equal(t, "s3cret", claims.APIPassword)
	assert.Equal(t, "AG123", claims.AgencyID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	_, err = svc.Login(ctx, "sita", "wrong")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
}

func TestLoginUnknownUserIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody", "whatever")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
	assert.Contains(t, err.Error(), "invalid credentials")
}
