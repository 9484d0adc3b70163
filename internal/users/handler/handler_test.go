package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authHandler "jobmatch/internal/auth/handler"
	"jobmatch/internal/observability"
	"jobmatch/internal/store"
	"jobmatch/internal/users/processor"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memoryUsers struct {
	users map[primitive.ObjectID]store.User
}

func (m *memoryUsers) GetUserByID(_ context.Context, id primitive.ObjectID) (store.User, error) {
	u, ok := m.users[id]
	if !ok {
		return store.User{}, store.ErrNotFound
	}
	return u, nil
}

func (m *memoryUsers) UpdateUserProfile(_ context.Context, id primitive.ObjectID, params store.UpdateProfileParams) (store.User, error) {
	u, ok := m.users[id]
	if !ok {
		return store.User{}, store.ErrNotFound
	}
	if params.Name != nil {
		u.Name = *params.Name
	}
	if params.Headline != nil {
		u.Headline = *params.Headline
	}
	if params.Skills != nil {
		u.Skills = params.Skills
	}
	if params.ResumePath != nil {
		u.ResumePath = *params.ResumePath
	}
	m.users[id] = u
	return u, nil
}

func newRouter(t *testing.T, s processor.UserStore, userID string) *gin.Engine {
	logger := observability.NewNopLogger()
	h := New(processor.New(s, t.TempDir(), logger), logger)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(authHandler.UserIDKey, userID)
		c.Next()
	})
	r.GET("/api/users/:id", h.HandleGetUser)
	r.PUT("/api/users/me", h.HandleUpdateMe)
	r.POST("/api/users/me/resume", h.HandleUploadResume)
	return r
}

func resumeRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/users/me/resume", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestGetUser_HidesPasswordHash(t *testing.T) {
	id := primitive.NewObjectID()
	mem := &memoryUsers{users: map[primitive.ObjectID]store.User{
		id: {ID: id, Name: "Jane", PasswordHash: "secret-hash"},
	}}
	r := newRouter(t, mem, id.Hex())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/"+id.Hex(), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jane")
	assert.NotContains(t, w.Body.String(), "secret-hash")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/"+primitive.NewObjectID().Hex(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateMe(t *testing.T) {
	id := primitive.NewObjectID()
	mem := &memoryUsers{users: map[primitive.ObjectID]store.User{id: {ID: id, Name: "Jane"}}}
	r := newRouter(t, mem, id.Hex())

	req := httptest.NewRequest(http.MethodPut, "/api/users/me", strings.NewReader(`{"headline":"Gopher","skills":["go"]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User store.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Gopher", resp.User.Headline)
	assert.Equal(t, "Jane", resp.User.Name)
}

func TestUploadResume(t *testing.T) {
	id := primitive.NewObjectID()
	mem := &memoryUsers{users: map[primitive.ObjectID]store.User{id: {ID: id}}}
	r := newRouter(t, mem, id.Hex())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, resumeRequest(t, ResumeFormField, "cv.pdf", "%PDF-1.4"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, mem.users[id].ResumePath, "/uploads/resumes/")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, resumeRequest(t, "file", "cv.pdf", "%PDF-1.4"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_FILE")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, resumeRequest(t, ResumeFormField, "cv.sh", "#!/bin/sh"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_FILE_TYPE")
}

func TestUsers_DatabaseUnavailable(t *testing.T) {
	r := newRouter(t, store.New(nil, "jobmatch", observability.NewNopLogger()), primitive.NewObjectID().Hex())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/"+primitive.NewObjectID().Hex(), nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
