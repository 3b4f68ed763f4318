package database

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfolio/portfolio-backend/models"
)

func TestContactValidation(t *testing.T) {
	repo := newTestDB(t).ContactRepo()

	err := repo.Add(&models.Contact{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Subject: "   ",
		Message: "Hello",
	})
	require.Error(t, err)

	contacts, err := repo.FindAll()
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestContactTrimsFields(t *testing.T) {
	repo := newTestDB(t).ContactRepo()

	contact := &models.Contact{
		Name:    "  Visitor  ",
		Email:   " visitor@example.com ",
		Subject: " Hi ",
		Message: " Hello there ",
	}
	require.NoError(t, repo.Add(contact))

	stored, err := repo.FindByID(contact.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Visitor", stored.Name)
	assert.Equal(t, "visitor@example.com", stored.Email)
	assert.False(t, stored.IsRead)
}

func TestContactListNewestFirst(t *testing.T) {
	repo := newTestDB(t).ContactRepo()

	base := time.Now().Add(-time.Hour)
	older := &models.Contact{Name: "A", Email: "a@b.com", Subject: "First", Message: "Hello"}
	older.CreatedAt = base
	require.NoError(t, repo.Add(older))

	newer := &models.Contact{Name: "B", Email: "b@b.com", Subject: "Second", Message: "Hello"}
	newer.CreatedAt = base.Add(time.Minute)
	require.NoError(t, repo.Add(newer))

	contacts, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Second", contacts[0].Subject)
}

func TestMarkReadIdempotent(t *testing.T) {
	repo := newTestDB(t).ContactRepo()

	contact := &models.Contact{Name: "A", Email: "a@b.com", Subject: "Hi", Message: "Hello"}
	require.NoError(t, repo.Add(contact))

	marked, err := repo.MarkRead(contact.ID)
	require.NoError(t, err)
	require.NotNil(t, marked)
	assert.True(t, marked.IsRead)

	// Marking an already-read message is a no-op success
	marked, err = repo.MarkRead(contact.ID)
	require.NoError(t, err)
	require.NotNil(t, marked)
	assert.True(t, marked.IsRead)

	missing, err := repo.MarkRead(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestContactDelete(t *testing.T) {
	repo := newTestDB(t).ContactRepo()

	contact := &models.Contact{Name: "A", Email: "a@b.com", Subject: "Hi", Message: "Hello"}
	require.NoError(t, repo.Add(contact))
	require.NoError(t, repo.Delete(contact.ID))

	stored, err := repo.FindByID(contact.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}
