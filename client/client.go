/*
Package client provides typed access to the portfolio REST API.

The client either talks to a live server over a URL or drives an
http.Handler directly, without a listening socket. The direct mode is the
tool of choice for unit tests and for request handlers that need to call
other handlers.

The bearer token obtained from Login or Register is the only session state;
carry it with WithToken. Profile changes made through UpdateProfile are
broadcast to every callback registered with OnProfileUpdated, so independent
consumers can re-render the owner identity without polling.
*/
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devfolio/portfolio-backend/models"
)

// Client provides easy access to the REST API.
type Client struct {
	handler    http.Handler
	httpClient *http.Client
	url        string
	token      string

	watchers *watcherList
}

// NewWithHandler creates a client that makes pseudo-REST requests directly
// against the handler, perfectly suited for unit tests.
func NewWithHandler(handler http.Handler) Client {
	return Client{
		handler:  handler,
		watchers: newWatcherList(),
	}
}

// NewWithURL creates a client that makes REST requests to a running backend.
func NewWithURL(url string) Client {
	return Client{
		url:        url,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		watchers:   newWatcherList(),
	}
}

// WithToken returns a new client carrying the bearer token on every request.
// Profile subscribers registered on the original client stay attached.
func (c Client) WithToken(token string) Client {
	c.token = token
	return c
}

// Token returns the bearer token the client currently carries.
func (c Client) Token() string {
	return c.token
}

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// User is the public view of a user record, as served by the API.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	PhotoURL string    `json:"photoUrl"`
	Role     string    `json:"role"`
}

// Profile is the public site-owner identity.
type Profile struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoUrl"`
}

// Session is an issued token together with the account it belongs to.
type Session struct {
	Token string
	User  User
}

// ProjectPage is one page of the project list.
type ProjectPage struct {
	Count int
	Total int64
	Page  int
	Pages int64
	Items []models.Project
}

// ProjectDraft carries the writable fields for project creation.
type ProjectDraft struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Technologies  []string   `json:"technologies,omitempty"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	LiveURL       string     `json:"liveUrl,omitempty"`
	GithubURL     string     `json:"githubUrl,omitempty"`
	Category      string     `json:"category,omitempty"`
	Featured      bool       `json:"featured,omitempty"`
	Status        string     `json:"status,omitempty"`
	DateCompleted *time.Time `json:"dateCompleted,omitempty"`
}

// ProjectPatch carries a partial update; nil fields are left untouched.
type ProjectPatch struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Technologies  *[]string  `json:"technologies,omitempty"`
	ImageURL      *string    `json:"imageUrl,omitempty"`
	LiveURL       *string    `json:"liveUrl,omitempty"`
	GithubURL     *string    `json:"githubUrl,omitempty"`
	Category      *string    `json:"category,omitempty"`
	Featured      *bool      `json:"featured,omitempty"`
	Status        *string    `json:"status,omitempty"`
	DateCompleted *time.Time `json:"dateCompleted,omitempty"`
}

// response envelopes

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type authEnvelope struct {
	envelope
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type verifyEnvelope struct {
	envelope
	UserID uuid.UUID `json:"userId"`
}

type profileEnvelope struct {
	envelope
	Profile Profile `json:"profile"`
}

type projectEnvelope struct {
	envelope
	Data models.Project `json:"data"`
}

type projectListEnvelope struct {
	envelope
	Count int              `json:"count"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Pages int64            `json:"pages"`
	Data  []models.Project `json:"data"`
}

type contactEnvelope struct {
	envelope
	Data models.Contact `json:"data"`
}

type contactListEnvelope struct {
	envelope
	Count int              `json:"count"`
	Data  []models.Contact `json:"data"`
}

// Auth operations

func (c Client) Register(username, email, password string) (Session, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var out authEnvelope
	if err := c.do(http.MethodPost, "/api/auth/register", body, &out); err != nil {
		return Session{}, err
	}
	return newSession(out), nil
}

func (c Client) Login(email, password string) (Session, error) {
	body := map[string]string{"email": email, "password": password}
	var out authEnvelope
	if err := c.do(http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return Session{}, err
	}
	return newSession(out), nil
}

func newSession(out authEnvelope) Session {
	session := Session{Token: out.Token}
	if out.User != nil {
		session.User = *out.User
	}
	return session
}

// Verify validates the carried token and returns the user id it encodes.
func (c Client) Verify() (uuid.UUID, error) {
	var out verifyEnvelope
	if err := c.do(http.MethodGet, "/api/auth/verify", nil, &out); err != nil {
		return uuid.Nil, err
	}
	return out.UserID, nil
}

func (c Client) Me() (User, error) {
	var out authEnvelope
	if err := c.do(http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return User{}, err
	}
	if out.User == nil {
		return User{}, fmt.Errorf("response carried no user")
	}
	return *out.User, nil
}

// UpdateProfile changes the owner's display name and/or photo. Empty
// arguments leave the corresponding field untouched. Registered profile
// subscribers are notified with the updated identity.
func (c Client) UpdateProfile(name, photoURL string) (User, error) {
	body := map[string]string{}
	if name != "" {
		body["name"] = name
	}
	if photoURL != "" {
		body["photoUrl"] = photoURL
	}

	var out authEnvelope
	if err := c.do(http.MethodPut, "/api/auth/profile", body, &out); err != nil {
		return User{}, err
	}
	if out.User == nil {
		return User{}, fmt.Errorf("response carried no user")
	}

	c.watchers.notify(Profile{Name: out.User.Name, PhotoURL: out.User.PhotoURL})
	return *out.User, nil
}

// AdminProfile fetches the public site-owner identity. No token required.
func (c Client) AdminProfile() (Profile, error) {
	var out profileEnvelope
	if err := c.do(http.MethodGet, "/api/auth/admin-profile", nil, &out); err != nil {
		return Profile{}, err
	}
	return out.Profile, nil
}

func (c Client) Logout() error {
	return c.do(http.MethodPost, "/api/auth/logout", nil, nil)
}

// Project operations

func (c Client) ListProjects(page, limit int) (ProjectPage, error) {
	path := fmt.Sprintf("/api/projects?page=%d&limit=%d", page, limit)
	var out projectListEnvelope
	if err := c.do(http.MethodGet, path, nil, &out); err != nil {
		return ProjectPage{}, err
	}
	return ProjectPage{
		Count: out.Count,
		Total: out.Total,
		Page:  out.Page,
		Pages: out.Pages,
		Items: out.Data,
	}, nil
}

func (c Client) FeaturedProjects() ([]models.Project, error) {
	var out projectListEnvelope
	if err := c.do(http.MethodGet, "/api/projects/featured", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetProject fetches one project; the server counts the view.
func (c Client) GetProject(id uuid.UUID) (models.Project, error) {
	var out projectEnvelope
	if err := c.do(http.MethodGet, "/api/projects/"+id.String(), nil, &out); err != nil {
		return models.Project{}, err
	}
	return out.Data, nil
}

func (c Client) CreateProject(draft ProjectDraft) (models.Project, error) {
	var out projectEnvelope
	if err := c.do(http.MethodPost, "/api/projects", draft, &out); err != nil {
		return models.Project{}, err
	}
	return out.Data, nil
}

func (c Client) UpdateProject(id uuid.UUID, patch ProjectPatch) (models.Project, error) {
	var out projectEnvelope
	if err := c.do(http.MethodPut, "/api/projects/"+id.String(), patch, &out); err != nil {
		return models.Project{}, err
	}
	return out.Data, nil
}

func (c Client) DeleteProject(id uuid.UUID) (models.Project, error) {
	var out projectEnvelope
	if err := c.do(http.MethodDelete, "/api/projects/"+id.String(), nil, &out); err != nil {
		return models.Project{}, err
	}
	return out.Data, nil
}

func (c Client) ToggleFeatured(id uuid.UUID) (models.Project, error) {
	var out projectEnvelope
	if err := c.do(http.MethodPatch, "/api/projects/"+id.String()+"/feature", nil, &out); err != nil {
		return models.Project{}, err
	}
	return out.Data, nil
}

// Contact operations

func (c Client) SubmitContact(name, email, subject, message string) (models.Contact, error) {
	body := map[string]string{"name": name, "email": email, "subject": subject, "message": message}
	var out contactEnvelope
	if err := c.do(http.MethodPost, "/api/contact", body, &out); err != nil {
		return models.Contact{}, err
	}
	return out.Data, nil
}

func (c Client) ListContacts() ([]models.Contact, error) {
	var out contactListEnvelope
	if err := c.do(http.MethodGet, "/api/contact", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c Client) MarkContactRead(id uuid.UUID) (models.Contact, error) {
	var out contactEnvelope
	if err := c.do(http.MethodPatch, "/api/contact/"+id.String()+"/read", nil, &out); err != nil {
		return models.Contact{}, err
	}
	return out.Data, nil
}

func (c Client) DeleteContact(id uuid.UUID) (models.Contact, error) {
	var out contactEnvelope
	if err := c.do(http.MethodDelete, "/api/contact/"+id.String(), nil, &out); err != nil {
		return models.Contact{}, err
	}
	return out.Data, nil
}

// Health checks the liveness probe.
func (c Client) Health() error {
	return c.do(http.MethodGet, "/health", nil, nil)
}

// OnProfileUpdated registers a callback invoked after every successful
// UpdateProfile made through this client (or any client sharing its
// subscriber list via WithToken). Returns an unsubscribe function.
func (c Client) OnProfileUpdated(callback func(Profile)) func() {
	return c.watchers.add(callback)
}

// watcherList fans a profile change out to registered subscribers. Shared by
// pointer so WithToken copies keep the same subscribers.
type watcherList struct {
	mu      sync.Mutex
	nextID  int
	entries map[int]func(Profile)
}

func newWatcherList() *watcherList {
	return &watcherList{entries: map[int]func(Profile){}}
}

func (l *watcherList) add(callback func(Profile)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextID
	l.nextID++
	l.entries[id] = callback
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.entries, id)
	}
}

func (l *watcherList) notify(profile Profile) {
	l.mu.Lock()
	callbacks := make([]func(Profile), 0, len(l.entries))
	for _, callback := range l.entries {
		callbacks = append(callbacks, callback)
	}
	l.mu.Unlock()

	for _, callback := range callbacks {
		callback(profile)
	}
}

// do performs one request, either in-process against the handler or over the
// wire, and decodes the response envelope into out.
func (c Client) do(method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(encoded)
	}

	var res *http.Response
	if c.handler != nil {
		req := httptest.NewRequest(method, path, reqBody)
		c.setHeaders(req)
		rec := httptest.NewRecorder()
		c.handler.ServeHTTP(rec, req)
		res = rec.Result()
	} else {
		req, err := http.NewRequest(method, c.url+path, reqBody)
		if err != nil {
			return err
		}
		c.setHeaders(req)
		res, err = c.httpClient.Do(req)
		if err != nil {
			return err
		}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var env envelope
		message := res.Status
		if err := json.Unmarshal(data, &env); err == nil && env.Message != "" {
			message = env.Message
		}
		return &APIError{Status: res.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (c Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
