package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/taskflow-app/taskflow/internal/database"
	"github.com/taskflow-app/taskflow/internal/dto"
	"github.com/taskflow-app/taskflow/internal/middleware"
	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/repository"
	"github.com/taskflow-app/taskflow/internal/services"
)

type authTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, "test-secret")
	handler := NewAuthHandler(authService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/login", handler.Login)
	r.GET("/api/auth/user", middleware.RequireAuth(authService), handler.GetCurrentUser)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		router:      r,
		authService: authService,
	}
}

func (env authTestEnv) postJSON(t *testing.T, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.postJSON(t, "/api/auth/register", map[string]string{
		"name":     "New User",
		"email":    "new@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.User.ID)
	assert.Equal(t, "New User", resp.User.Name)
	assert.Equal(t, "new@example.com", resp.User.Email)

	// The response never carries password material.
	assert.NotContains(t, w.Body.String(), "password")

	// The issued token resolves back to the new user.
	userID, err := env.authService.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.postJSON(t, "/api/auth/register", map[string]string{
		"name": "First", "email": "dup@example.com", "password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.postJSON(t, "/api/auth/register", map[string]string{
		"name": "Second", "email": "dup@example.com", "password": "othersecret",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ALREADY_EXISTS")

	var count int64
	env.db.Model(&models.User{}).Where("email = ?", "dup@example.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	env := setupAuthTestEnv(t)

	cases := []struct {
		name    string
		payload map[string]string
	}{
		{"missing name", map[string]string{"email": "a@example.com", "password": "supersecret"}},
		{"missing email", map[string]string{"name": "A", "password": "supersecret"}},
		{"bad email", map[string]string{"name": "A", "email": "not-an-email", "password": "supersecret"}},
		{"missing password", map[string]string{"name": "A", "email": "a@example.com"}},
		{"short password", map[string]string{"name": "A", "email": "a@example.com", "password": "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.postJSON(t, "/api/auth/register", tc.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	var count int64
	env.db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.postJSON(t, "/api/auth/register", map[string]string{
		"name": "User", "email": "user@example.com", "password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.postJSON(t, "/api/auth/login", map[string]string{
		"email": "user@example.com", "password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "user@example.com", resp.User.Email)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.postJSON(t, "/api/auth/register", map[string]string{
		"name": "User", "email": "user@example.com", "password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Wrong password and unknown email produce the same response.
	wrong := env.postJSON(t, "/api/auth/login", map[string]string{
		"email": "user@example.com", "password": "notthepassword",
	})
	unknown := env.postJSON(t, "/api/auth/login", map[string]string{
		"email": "ghost@example.com", "password": "supersecret",
	})

	require.Equal(t, http.StatusBadRequest, wrong.Code)
	require.Equal(t, http.StatusBadRequest, unknown.Code)
	assert.Contains(t, wrong.Body.String(), "INVALID_CREDENTIALS")
	assert.JSONEq(t, wrong.Body.String(), unknown.Body.String())
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.postJSON(t, "/api/auth/register", map[string]string{
		"name": "User", "email": "user@example.com", "password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var registered dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))

	headers := []struct {
		name  string
		apply func(r *http.Request)
	}{
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+registered.Token) }},
		{"x-auth-token header", func(r *http.Request) { r.Header.Set("x-auth-token", registered.Token) }},
	}
	for _, h := range headers {
		t.Run(h.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
			h.apply(req)
			rec := httptest.NewRecorder()
			env.router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			var user dto.UserDTO
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
			assert.Equal(t, registered.User.ID, user.ID)
			assert.Equal(t, "user@example.com", user.Email)
		})
	}
}

func TestAuthHandler_GetCurrentUser_RejectsBadTokens(t *testing.T) {
	env := setupAuthTestEnv(t)

	otherService := services.NewAuthService(repository.NewUserRepository(env.db), "other-secret")
	foreign, err := otherService.IssueToken("some-user")
	require.NoError(t, err)

	cases := []struct {
		name  string
		apply func(r *http.Request)
	}{
		{"no token", func(r *http.Request) {}},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer garbage") }},
		{"wrong signature", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+foreign) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
			tc.apply(req)
			rec := httptest.NewRecorder()
			env.router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
