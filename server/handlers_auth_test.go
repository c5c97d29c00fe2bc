package server_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-server/token"
	"github.com/taskhive/taskhive-server/users"
)

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (f *serverFixture) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()

	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := f.do(jsonRequest(http.MethodPost, "/api/user/login", body))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestLoginSetsSessionCookie(t *testing.T) {
	f := setupServerFixture(t)
	f.createUser(t, testUserEmail, false)

	body := fmt.Sprintf(`{"email":%q,"password":%q}`, testUserEmail, testUserPassword)
	rec := f.do(jsonRequest(http.MethodPost, "/api/user/login", body))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	require.Equal(t, token.CookieName, cookie.Name)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	require.Equal(t, 86400, cookie.MaxAge)

	// The response body is the user record, never the password hash
	var returned users.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &returned))
	require.Equal(t, testUserEmail, returned.Email)
	require.NotContains(t, rec.Body.String(), "passwordHash")

	// The cookie admits the client to protected routes
	req := httptest.NewRequest(http.MethodGet, "/api/task", nil)
	req.AddCookie(cookie)
	rec = f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	f := setupServerFixture(t)
	f.createUser(t, testUserEmail, false)

	body := fmt.Sprintf(`{"email":%q,"password":"wrong-password"}`, testUserEmail)
	rec := f.do(jsonRequest(http.MethodPost, "/api/user/login", body))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"status":false,"message":"Invalid email or password."}`, rec.Body.String())
	require.Empty(t, rec.Result().Cookies())
}

func TestNonAdminCookieOnAdminRoute(t *testing.T) {
	f := setupServerFixture(t)
	f.createUser(t, testUserEmail, false)

	cookie := f.login(t, testUserEmail, testUserPassword)

	req := httptest.NewRequest(http.MethodGet, "/api/user/team", nil)
	req.AddCookie(cookie)
	rec := f.do(req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, notAdminBody, rec.Body.String())
}

func TestRegisterThenLogin(t *testing.T) {
	f := setupServerFixture(t)

	body := `{"name":"Jane Doe","title":"Designer","role":"Designer","email":"jane@example.com","password":"Password123"}`
	rec := f.do(jsonRequest(http.MethodPost, "/api/user/register", body))
	require.Equal(t, http.StatusCreated, rec.Code)

	f.login(t, "jane@example.com", "Password123")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := setupServerFixture(t)
	f.createUser(t, testUserEmail, false)

	body := fmt.Sprintf(`{"name":"Copy Cat","email":%q,"password":"Password123"}`, testUserEmail)
	rec := f.do(jsonRequest(http.MethodPost, "/api/user/register", body))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	f := setupServerFixture(t)

	rec := f.do(jsonRequest(http.MethodPost, "/api/user/logout", ""))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, token.CookieName, cookies[0].Name)
	require.Negative(t, cookies[0].MaxAge)
}

func TestUpdateProfileDoesNotRehashPassword(t *testing.T) {
	f := setupServerFixture(t)
	user := f.createUser(t, testUserEmail, false)
	hashBefore := user.PasswordHash

	cookie := f.login(t, testUserEmail, testUserPassword)

	req := jsonRequest(http.MethodPut, "/api/user/profile", `{"name":"Renamed User","title":"Lead Developer"}`)
	req.AddCookie(cookie)
	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := f.userRepo.GetByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed User", stored.Name)
	require.Equal(t, "Lead Developer", stored.Title)

	// Updating non-password fields must leave the hash byte-identical
	require.Equal(t, hashBefore, stored.PasswordHash)
}

func TestChangePasswordRoute(t *testing.T) {
	f := setupServerFixture(t)
	user := f.createUser(t, testUserEmail, false)
	hashBefore := user.PasswordHash

	cookie := f.login(t, testUserEmail, testUserPassword)

	body := fmt.Sprintf(`{"currentPassword":%q,"newPassword":"NewPassword456"}`, testUserPassword)
	req := jsonRequest(http.MethodPut, "/api/user/change-password", body)
	req.AddCookie(cookie)
	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := f.userRepo.GetByID(user.ID)
	require.NoError(t, err)
	require.NotEqual(t, hashBefore, stored.PasswordHash)

	// Old password no longer works, new one does
	badBody := fmt.Sprintf(`{"email":%q,"password":%q}`, testUserEmail, testUserPassword)
	rec = f.do(jsonRequest(http.MethodPost, "/api/user/login", badBody))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	f.login(t, testUserEmail, "NewPassword456")
}

func TestDeactivatedUserLogin(t *testing.T) {
	f := setupServerFixture(t)
	user := f.createUser(t, testUserEmail, false)
	require.NoError(t, f.userRepo.SetActive(user.ID, false))

	body := fmt.Sprintf(`{"email":%q,"password":%q}`, testUserEmail, testUserPassword)
	rec := f.do(jsonRequest(http.MethodPost, "/api/user/login", body))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"status":false,"message":"User account has been deactivated, contact the administrator"}`, rec.Body.String())
}

func TestActivateAndDeleteUserAsAdmin(t *testing.T) {
	f := setupServerFixture(t)
	f.createUser(t, testAdminEmail, true)
	target := f.createUser(t, testUserEmail, false)

	cookie := f.login(t, testAdminEmail, testUserPassword)

	req := jsonRequest(http.MethodPut, "/api/user/"+target.ID+"/activate", `{"isActive":false}`)
	req.AddCookie(cookie)
	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := f.userRepo.GetByID(target.ID)
	require.NoError(t, err)
	require.False(t, stored.IsActive)

	req = httptest.NewRequest(http.MethodDelete, "/api/user/"+target.ID, nil)
	req.AddCookie(cookie)
	rec = f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	_, err = f.userRepo.GetByID(target.ID)
	require.Error(t, err)
}
