package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfolio/portfolio-backend/errs"
)

var testSecret = []byte("test-signing-secret")

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := IssueToken(userID, testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := VerifyToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, decoded)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := IssueToken(uuid.New(), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(token, testSecret)
	assert.ErrorIs(t, err, errs.ErrExpiredToken)
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := IssueToken(uuid.New(), testSecret, time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken(token, []byte("a different secret"))
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := VerifyToken("not.a.token", testSecret)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}
