package api

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devfolio/portfolio-backend/client"
	"github.com/devfolio/portfolio-backend/database"
)

// newTestAPI builds the full route tree over a per-test in-memory database
// and returns an in-process client pointed at it.
func newTestAPI(t *testing.T) (client.Client, database.Database) {
	t.Helper()

	dsn := fmt.Sprintf("file:api_%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(gormDB))

	db := database.New(gormDB)
	handler := NewHandler(db, map[string]string{
		"JWT_SECRET":  "test-signing-secret",
		"APP_ENV":     "production",
		"CORS_ORIGIN": "*",
	})

	return client.NewWithHandler(handler), db
}

// registerAdmin provisions the admin account through the API and returns an
// authenticated client alongside the session.
func registerAdmin(t *testing.T, c client.Client) (client.Client, client.Session) {
	t.Helper()

	session, err := c.Register("admin", "owner@example.com", "s3cret-password")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)

	return c.WithToken(session.Token), session
}
