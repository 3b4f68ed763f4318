package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfolio/portfolio-backend/client"
	"github.com/devfolio/portfolio-backend/models"
)

func TestCreateProjectDefaults(t *testing.T) {
	c, _ := newTestAPI(t)
	authed, _ := registerAdmin(t, c)

	project, err := authed.CreateProject(client.ProjectDraft{
		Title:        "Portfolio Site",
		Description:  "A full MERN stack app",
		Technologies: []string{"React"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.CategoryWeb, project.Category)
	assert.Equal(t, models.StatusPublished, project.Status)
	assert.False(t, project.Featured)
	assert.Equal(t, models.StringList{"React"}, project.Technologies)
	assert.NotEqual(t, uuid.Nil, project.ID)
}

func TestCreateProjectRequiresAuth(t *testing.T) {
	c, db := newTestAPI(t)
	registerAdmin(t, c)

	_, err := c.CreateProject(client.ProjectDraft{
		Title:       "Portfolio Site",
		Description: "A full MERN stack app",
	})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	// No write happened
	_, total, err := db.ProjectRepo().FindPage(1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreateProjectRequiresTitleAndDescription(t *testing.T) {
	c, _ := newTestAPI(t)
	authed, _ := registerAdmin(t, c)

	_, err := authed.CreateProject(client.ProjectDraft{Title: "Portfolio Site"})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Title and description are required", apiErr.Message)
}

func TestCreateProjectSchemaValidation(t *testing.T) {
	c, _ := newTestAPI(t)
	authed, _ := registerAdmin(t, c)

	// Passes the handler's presence check, rejected by the schema hook
	_, err := authed.CreateProject(client.ProjectDraft{
		Title:       "abcd",
		Description: "A description long enough to pass validation",
	})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	_, err = authed.CreateProject(client.ProjectDraft{
		Title:       "Valid title",
		Description: "too short",
	})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestListProjectsPagination(t *testing.T) {
	c, _ := newTestAPI(t)
	authed, _ := registerAdmin(t, c)

	for i := 0; i < 12; i++ {
		_, err := authed.CreateProject(client.ProjectDraft{
			Title:       fmt.Sprintf("Project number %02d", i),
			Description: "A description long enough to pass validation",
		})
		require.NoError(t, err)
	}

	page, err := c.ListProjects(1, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, page.Count)
	assert.EqualValues(t, 12, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.EqualValues(t, 2, page.Pages)

	second, err := c.ListProjects(2, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Count)

	// Absent or invalid paging parameters fall back to page 1, limit 10
	defaulted, err := c.ListProjects(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, defaulted.Count)
	assert.Equal(t, 1, defaulted.Page)
}

func TestFeaturedListExcludesDrafts(t *testing.T) {
	c, _ := newTestAPI(t)
	authed, _ := registerAdmin(t, c)

	featured, err := authed.CreateProject(client.ProjectDraft{
		Title:       "Featured and published",
		Description: "A description long enough to pass validation",
		Featured:    true,
	})
	require.NoError(t, err)

	_, err = authed.CreateProject(client.ProjectDraft{
		Title:       "Featured but draft",
		Description: "A description long enough to pass validation",
		Featured:    true,
		Status:      models.StatusDraft,
	})
	require.NoError(t, err)

	projects, err := c.FeaturedProjects()
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, featured.ID, projects[0].ID)
}

func TestGetProjectIncrementsViewCount(t *testing.T) {
	c, _ := newTestAPI(t)
	authed, _ := registerAdmin(t, c)

	created, err := authed.CreateProject(client.ProjectDraft{
		Title:       "Counted project",
		Description: "A description long enough to pass validation",
	})
	require.NoError(t, err)
	assert.Zero(t, created.ViewCount)

	got, err := c.GetProject(created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.ViewCount)

	got, err = c.GetProject(created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.ViewCount)

	_, err = c.GetProject(uuid.New())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Project not found", apiErr.Message)
}

func TestUpdateProjectPartial(t *testing.T) {
	c, _ := newTestAPI(t)
	authed, _ := registerAdmin(t, c)

	created, err := authed.CreateProject(client.ProjectDraft{
		Title:        "Original title",
		Description:  "A description long enough to pass validation",
		Technologies: []string{"Go"},
	})
	require.NoError(t, err)

	newDescription := "A freshly rewritten project description"
	updated, err := authed.UpdateProject(created.ID, client.ProjectPatch{
		Description: &newDescription,
	})
	require.NoError(t, err)
	assert.Equal(t, "Original title", updated.Title)
	assert.Equal(t, newDescription, updated.Description)
	assert.Equal(t, models.StringList{"Go"}, updated.Technologies)

	// Schema validation re-runs on the merged record
	shortTitle := "abc"
	_, err = authed.UpdateProject(created.ID, client.ProjectPatch{Title: &shortTitle})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	_, err = authed.UpdateProject(uuid.New(), client.ProjectPatch{Description: &newDescription})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestToggleFeaturedTwiceRestores(t *testing.T) {
	c, _ := newTestAPI(t)
	authed, _ := registerAdmin(t, c)

	created, err := authed.CreateProject(client.ProjectDraft{
		Title:       "Toggled project",
		Description: "A description long enough to pass validation",
	})
	require.NoError(t, err)
	require.False(t, created.Featured)

	toggled, err := authed.ToggleFeatured(created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Featured)

	restored, err := authed.ToggleFeatured(created.ID)
	require.NoError(t, err)
	assert.False(t, restored.Featured)
}

func TestDeleteProject(t *testing.T) {
	c, _ := newTestAPI(t)
	authed, _ := registerAdmin(t, c)

	created, err := authed.CreateProject(client.ProjectDraft{
		Title:       "Short lived project",
		Description: "A description long enough to pass validation",
	})
	require.NoError(t, err)

	deleted, err := authed.DeleteProject(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = c.GetProject(created.ID)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestMutatingProjectRoutesRequireAuth(t *testing.T) {
	c, _ := newTestAPI(t)
	authed, _ := registerAdmin(t, c)

	created, err := authed.CreateProject(client.ProjectDraft{
		Title:       "Guarded project",
		Description: "A description long enough to pass validation",
	})
	require.NoError(t, err)

	title := "Another valid title"
	var apiErr *client.APIError

	_, err = c.UpdateProject(created.ID, client.ProjectPatch{Title: &title})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	_, err = c.ToggleFeatured(created.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	_, err = c.DeleteProject(created.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	// The record is untouched
	got, err := authed.GetProject(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Guarded project", got.Title)
	assert.False(t, got.Featured)
}
