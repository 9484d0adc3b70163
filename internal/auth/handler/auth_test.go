package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobmatch/internal/auth/processor"
	"jobmatch/internal/observability"
	"jobmatch/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testConfig = processor.AuthConfig{JWTSecret: "test-secret", JWTExpiry: time.Hour}

// fakeStore keeps users in memory, or fails every call when unavailable is set.
type fakeStore struct {
	users       map[string]store.User
	unavailable bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]store.User{}}
}

func (f *fakeStore) CreateUser(_ context.Context, user store.User) (store.User, error) {
	if f.unavailable {
		return store.User{}, store.ErrDatabaseUnavailable
	}
	user.ID = primitive.NewObjectID()
	f.users[user.Email] = user
	return user, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (store.User, error) {
	if f.unavailable {
		return store.User{}, store.ErrDatabaseUnavailable
	}
	u, ok := f.users[email]
	if !ok {
		return store.User{}, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id primitive.ObjectID) (store.User, error) {
	if f.unavailable {
		return store.User{}, store.ErrDatabaseUnavailable
	}
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return store.User{}, store.ErrNotFound
}

func newTestRouter(fs *fakeStore, cfg processor.AuthConfig) *gin.Engine {
	logger := observability.NewNopLogger()
	h := New(processor.New(fs, cfg, logger), logger)

	r := gin.New()
	r.POST("/api/auth/register", h.HandleRegister)
	r.POST("/api/auth/login", h.HandleLogin)
	r.GET("/api/auth/me", h.RequireAuth, h.HandleMe)
	r.GET("/api/employer-only", h.RequireAuth, RequireRole(store.RoleEmployer), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func doJSON(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r http.Handler, email, role string) processor.AuthResult {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"name":"Jane","email":"`+email+`","password":"password123","role":"`+role+`"}`, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var result processor.AuthResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func TestRegisterLoginMe(t *testing.T) {
	r := newTestRouter(newFakeStore(), testConfig)

	registered := register(t, r, "jane@example.com", store.RoleSeeker)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "jane@example.com", registered.User.Email)

	w := doJSON(r, http.MethodPost, "/api/auth/login", `{"email":"jane@example.com","password":"password123"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var loggedIn processor.AuthResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loggedIn))
	assert.NotContains(t, w.Body.String(), "password")

	w = doJSON(r, http.MethodGet, "/api/auth/me", "", loggedIn.Token)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		User store.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, registered.User.ID, me.User.ID)
}

func TestRegister_Rejections(t *testing.T) {
	fs := newFakeStore()
	r := newTestRouter(fs, testConfig)
	register(t, r, "taken@example.com", store.RoleEmployer)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "duplicate email",
			body:       `{"name":"X","email":"taken@example.com","password":"password123","role":"seeker"}`,
			wantStatus: http.StatusConflict,
			wantCode:   "EMAIL_EXISTS",
		},
		{
			name:       "bad role",
			body:       `{"name":"X","email":"x@example.com","password":"password123","role":"admin"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "malformed body",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/auth/register", tt.body, "")
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
		})
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	r := newTestRouter(newFakeStore(), testConfig)
	register(t, r, "jane@example.com", store.RoleSeeker)

	w := doJSON(r, http.MethodPost, "/api/auth/login", `{"email":"jane@example.com","password":"nope-nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth(t *testing.T) {
	r := newTestRouter(newFakeStore(), testConfig)

	w := doJSON(r, http.MethodGet, "/api/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/api/auth/me", "", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	r := newTestRouter(newFakeStore(), testConfig)
	seeker := register(t, r, "seeker@example.com", store.RoleSeeker)
	employer := register(t, r, "employer@example.com", store.RoleEmployer)

	w := doJSON(r, http.MethodGet, "/api/employer-only", "", seeker.Token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodGet, "/api/employer-only", "", employer.Token)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRegister_DatabaseUnavailable(t *testing.T) {
	fs := newFakeStore()
	fs.unavailable = true
	r := newTestRouter(fs, testConfig)

	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"name":"Jane","email":"jane@example.com","password":"password123","role":"seeker"}`, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "DATABASE_UNAVAILABLE")
}

func TestLogin_NotConfigured(t *testing.T) {
	r := newTestRouter(newFakeStore(), processor.AuthConfig{JWTExpiry: time.Hour})

	w := doJSON(r, http.MethodPost, "/api/auth/login", `{"email":"jane@example.com","password":"password123"}`, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_NOT_CONFIGURED")
}
