package api

import (
	"net/http"
	"testing"

	"employee_management/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEmployeeRequiresAdmin(t *testing.T) {
	env := setupTest(t)
	worker := createUser(t, env.db, "worker", "secret123", false)
	payload := map[string]any{"username": "newhire", "email": "newhire@example.com", "password": "secret123"}

	// Anonymous caller
	w := doJSON(t, env.router, http.MethodPost, "/api/register-employee/", payload, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Only admin can register employees", decodeBody(t, w)["error"])

	// Authenticated employee is still not enough
	w = doJSON(t, env.router, http.MethodPost, "/api/register-employee/", payload, loginCookie(t, env.sessions, worker.ID))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRegisterEmployeeDuplicateUsername(t *testing.T) {
	env := setupTest(t)
	admin := createUser(t, env.db, "boss", "secret123", true)
	createUser(t, env.db, "worker", "secret123", false)
	var before int64
	require.NoError(t, env.db.Model(&domain.User{}).Count(&before).Error)

	w := doJSON(t, env.router, http.MethodPost, "/api/register-employee/", map[string]any{
		"username": "worker", "email": "other@example.com", "password": "secret123",
	}, loginCookie(t, env.sessions, admin.ID))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	errs := body["errors"].(map[string]any)
	usernameErrs := errs["username"].([]any)
	assert.Equal(t, "Username already exists", usernameErrs[0])

	// Nothing was persisted
	var after int64
	require.NoError(t, env.db.Model(&domain.User{}).Count(&after).Error)
	assert.Equal(t, before, after)
}

func TestRegisterEmployeeDuplicateEmail(t *testing.T) {
	env := setupTest(t)
	admin := createUser(t, env.db, "boss", "secret123", true)
	createUser(t, env.db, "worker", "secret123", false)

	w := doJSON(t, env.router, http.MethodPost, "/api/register-employee/", map[string]any{
		"username": "newhire", "email": "worker@example.com", "password": "secret123",
	}, loginCookie(t, env.sessions, admin.ID))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errs := decodeBody(t, w)["errors"].(map[string]any)
	emailErrs := errs["email"].([]any)
	assert.Equal(t, "Email already exists", emailErrs[0])
}

func TestRegisterEmployeeShortPassword(t *testing.T) {
	env := setupTest(t)
	admin := createUser(t, env.db, "boss", "secret123", true)

	w := doJSON(t, env.router, http.MethodPost, "/api/register-employee/", map[string]any{
		"username": "newhire", "email": "newhire@example.com", "password": "abc",
	}, loginCookie(t, env.sessions, admin.ID))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errs := decodeBody(t, w)["errors"].(map[string]any)
	passwordErrs := errs["password"].([]any)
	assert.Equal(t, "Password must be at least 6 characters", passwordErrs[0])
}

func TestRegisterEmployeeIgnoresClientIsAdmin(t *testing.T) {
	env := setupTest(t)
	admin := createUser(t, env.db, "boss", "secret123", true)

	// A client-supplied is_admin flag must not stick
	w := doJSON(t, env.router, http.MethodPost, "/api/register-employee/", map[string]any{
		"username": "newhire", "email": "newhire@example.com", "password": "secret123",
		"is_admin": true,
	}, loginCookie(t, env.sessions, admin.ID))

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Employee registered successfully", body["message"])

	var created domain.User
	require.NoError(t, env.db.Where("username = ?", "newhire").First(&created).Error)
	assert.False(t, created.IsAdmin)
	assert.True(t, created.IsActive)
	assert.NotEqual(t, "secret123", created.Password, "password must be stored hashed")
}

func TestRegisterEmployeeStoresProfileFields(t *testing.T) {
	env := setupTest(t)
	admin := createUser(t, env.db, "boss", "secret123", true)

	w := doJSON(t, env.router, http.MethodPost, "/api/register-employee/", map[string]any{
		"username": "newhire", "email": "newhire@example.com", "password": "secret123",
		"name": "New Hire", "address": "12 Main St", "gender": "Female",
		"mobile_number": "0123456789", "is_active_permission": false,
	}, loginCookie(t, env.sessions, admin.ID))

	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.User
	require.NoError(t, env.db.Where("username = ?", "newhire").First(&created).Error)
	assert.Equal(t, "New Hire", created.Name)
	assert.Equal(t, "Female", created.Gender)
	assert.False(t, created.IsActivePermission)
}

func TestRegisterEmployeeInvalidGender(t *testing.T) {
	env := setupTest(t)
	admin := createUser(t, env.db, "boss", "secret123", true)

	w := doJSON(t, env.router, http.MethodPost, "/api/register-employee/", map[string]any{
		"username": "newhire", "email": "newhire@example.com", "password": "secret123",
		"gender": "Other",
	}, loginCookie(t, env.sessions, admin.ID))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errs := decodeBody(t, w)["errors"].(map[string]any)
	assert.Contains(t, errs, "gender")
}

func TestListEmployeesExcludesAdmins(t *testing.T) {
	env := setupTest(t)
	admin := createUser(t, env.db, "boss", "secret123", true)
	createUser(t, env.db, "worker1", "secret123", false)
	createUser(t, env.db, "worker2", "secret123", false)

	w := doJSON(t, env.router, http.MethodGet, "/api/employees/", nil, loginCookie(t, env.sessions, admin.ID))

	require.Equal(t, http.StatusOK, w.Code)
	listed := decodeListBody(t, w)
	assert.Len(t, listed, 2)
	for _, entry := range listed {
		assert.Equal(t, false, entry["is_admin"])
		assert.NotContains(t, entry, "password")
	}
}

func TestListEmployeesRequiresAdmin(t *testing.T) {
	env := setupTest(t)
	worker := createUser(t, env.db, "worker", "secret123", false)

	w := doJSON(t, env.router, http.MethodGet, "/api/employees/", nil, loginCookie(t, env.sessions, worker.ID))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Only admin can view employees", decodeBody(t, w)["error"])
}

func TestUpdatePermissionsTogglesFlag(t *testing.T) {
	env := setupTest(t)
	admin := createUser(t, env.db, "boss", "secret123", true)
	worker := createUser(t, env.db, "worker", "secret123", false)

	w := doJSON(t, env.router, http.MethodPut, "/api/employees/"+itoa(worker.ID)+"/permissions/", map[string]any{
		"is_active_permission": false,
	}, loginCookie(t, env.sessions, admin.ID))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Permissions updated successfully", body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, false, user["is_active_permission"])

	var reloaded domain.User
	require.NoError(t, env.db.First(&reloaded, worker.ID).Error)
	assert.False(t, reloaded.IsActivePermission)
}

func TestUpdatePermissionsOmittedFieldKeepsValue(t *testing.T) {
	env := setupTest(t)
	admin := createUser(t, env.db, "boss", "secret123", true)
	worker := createUser(t, env.db, "worker", "secret123", false)
	require.NoError(t, env.db.Model(worker).Update("is_active_permission", false).Error)

	// Empty body keeps the stored value
	w := doJSON(t, env.router, http.MethodPut, "/api/employees/"+itoa(worker.ID)+"/permissions/", map[string]any{}, loginCookie(t, env.sessions, admin.ID))

	require.Equal(t, http.StatusOK, w.Code)
	var reloaded domain.User
	require.NoError(t, env.db.First(&reloaded, worker.ID).Error)
	assert.False(t, reloaded.IsActivePermission)
}

func TestUpdatePermissionsAdminIDIsNotFound(t *testing.T) {
	env := setupTest(t)
	admin := createUser(t, env.db, "boss", "secret123", true)
	otherAdmin := createUser(t, env.db, "boss2", "secret123", true)

	// Admin accounts are outside the permission-update lookup scope
	w := doJSON(t, env.router, http.MethodPut, "/api/employees/"+itoa(otherAdmin.ID)+"/permissions/", map[string]any{
		"is_active_permission": false,
	}, loginCookie(t, env.sessions, admin.ID))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Employee not found", decodeBody(t, w)["error"])
}

func TestUpdatePermissionsUnknownIDIsNotFound(t *testing.T) {
	env := setupTest(t)
	admin := createUser(t, env.db, "boss", "secret123", true)

	w := doJSON(t, env.router, http.MethodPut, "/api/employees/9999/permissions/", map[string]any{
		"is_active_permission": false,
	}, loginCookie(t, env.sessions, admin.ID))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
