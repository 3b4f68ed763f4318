package client_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devfolio/portfolio-backend/api"
	"github.com/devfolio/portfolio-backend/client"
	"github.com/devfolio/portfolio-backend/database"
)

func newTestClient(t *testing.T) client.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:client_%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(gormDB))

	handler := api.NewHandler(database.New(gormDB), map[string]string{
		"JWT_SECRET":  "test-signing-secret",
		"APP_ENV":     "production",
		"CORS_ORIGIN": "*",
	})
	return client.NewWithHandler(handler)
}

func TestHealth(t *testing.T) {
	c := newTestClient(t)
	assert.NoError(t, c.Health())
}

func TestWithTokenCarriesToken(t *testing.T) {
	c := newTestClient(t)

	session, err := c.Register("admin", "owner@example.com", "s3cret-password")
	require.NoError(t, err)

	authed := c.WithToken(session.Token)
	assert.Equal(t, session.Token, authed.Token())
	assert.Empty(t, c.Token())

	// Only the copy carrying the token is authenticated
	_, err = authed.Me()
	assert.NoError(t, err)
	_, err = c.Me()
	assert.Error(t, err)
}

func TestAPIErrorMessage(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Login("nobody@example.com", "wrong")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
	assert.Equal(t, "api error (401): Invalid email or password", apiErr.Error())
}

func TestProfileSubscribers(t *testing.T) {
	c := newTestClient(t)

	session, err := c.Register("admin", "owner@example.com", "s3cret-password")
	require.NoError(t, err)

	var seen []client.Profile
	unsubscribe := c.OnProfileUpdated(func(p client.Profile) {
		seen = append(seen, p)
	})

	// Subscribers registered before WithToken still fire
	authed := c.WithToken(session.Token)
	_, err = authed.UpdateProfile("Jane Doe", "https://example.com/me.png")
	require.NoError(t, err)

	require.Len(t, seen, 1)
	assert.Equal(t, "Jane Doe", seen[0].Name)
	assert.Equal(t, "https://example.com/me.png", seen[0].PhotoURL)

	// After unsubscribing nothing more arrives
	unsubscribe()
	_, err = authed.UpdateProfile("Jane Q. Doe", "")
	require.NoError(t, err)
	assert.Len(t, seen, 1)
}

func TestFailedProfileUpdateDoesNotNotify(t *testing.T) {
	c := newTestClient(t)

	session, err := c.Register("admin", "owner@example.com", "s3cret-password")
	require.NoError(t, err)
	authed := c.WithToken(session.Token)

	notified := 0
	c.OnProfileUpdated(func(client.Profile) { notified++ })

	// Unauthenticated update is rejected before any broadcast
	_, err = c.UpdateProfile("Jane Doe", "")
	require.Error(t, err)
	assert.Zero(t, notified)

	_, err = authed.UpdateProfile("Jane Doe", "")
	require.NoError(t, err)
	assert.Equal(t, 1, notified)
}
