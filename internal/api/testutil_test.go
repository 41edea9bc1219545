package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"employee_management/internal/config"
	"employee_management/internal/domain"
	"employee_management/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv bundles the router and its dependencies for handler tests
type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	sessions session.Store
	cfg      *config.Config
}

// setupTest builds a router backed by a throwaway SQLite database and an
// in-memory session store.
func setupTest(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))
	sessions := session.NewMemoryStore(time.Hour)
	cfg := &config.Config{
		SessionTTLHours: 1,
		MediaRoot:       t.TempDir(),
		MediaURL:        "/media/",
	}
	return &testEnv{
		router:   NewRouter(db, sessions, cfg),
		db:       db,
		sessions: sessions,
		cfg:      cfg,
	}
}

// createUser persists a user with a bcrypt-hashed password
func createUser(t *testing.T, db *gorm.DB, username, password string, isAdmin bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		Username:           username,
		Email:              username + "@example.com",
		Password:           string(hash),
		IsAdmin:            isAdmin,
		IsActive:           true,
		IsActivePermission: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// loginCookie establishes a session directly in the store and returns the
// cookie a logged-in client would hold.
func loginCookie(t *testing.T, sessions session.Store, userID uint) *http.Cookie {
	t.Helper()
	token, err := sessions.Create(context.Background(), userID)
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: token}
}

// doJSON performs a JSON request against the router
func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Host = "api.example.com"
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doMultipart performs a multipart request with optional form fields and an
// optional profile_photo file part.
func doMultipart(t *testing.T, router *gin.Engine, method, path string, fields map[string]string, fileName string, fileContent []byte, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("profile_photo", fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Host = "api.example.com"
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a JSON object response
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// decodeListBody unmarshals a JSON array response
func decodeListBody(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// itoa formats a user ID for request paths
func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// sessionCookie extracts the session cookie set by a response, nil if absent
func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			return c
		}
	}
	return nil
}
