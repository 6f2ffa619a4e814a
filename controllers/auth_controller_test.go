package controllers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pau-arandia/goblog/models"
	"github.com/pau-arandia/goblog/utils"
)

func TestRegister_EmptyUsername(t *testing.T) {
	db := newDB(t)
	r := newRouter(t, db)

	w := postForm(t, r, "/auth/register", url.Values{"username": {""}, "password": {"pw1"}})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, pageText(w), "Username is required.")
	require.EqualValues(t, 0, userCount(t, db))
}

func TestRegister_EmptyPassword(t *testing.T) {
	db := newDB(t)
	r := newRouter(t, db)

	w := postForm(t, r, "/auth/register", url.Values{"username": {"alice"}, "password": {""}})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, pageText(w), "Password is required.")
	require.EqualValues(t, 0, userCount(t, db))
}

func TestRegister_Success(t *testing.T) {
	db := newDB(t)
	r := newRouter(t, db)

	w := postForm(t, r, "/auth/register", url.Values{"username": {"alice"}, "password": {"pw1"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/auth/login", w.Header().Get("Location"))
	// no auto-login
	require.Empty(t, w.Result().Cookies())

	var user models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&user).Error)
	require.NotEqual(t, "pw1", user.PasswordHash)
	require.True(t, utils.CheckPassword(user.PasswordHash, "pw1"))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db := newDB(t)
	r := newRouter(t, db)
	createUser(t, db, "alice", "pw1")

	// duplicate fails regardless of password
	w := postForm(t, r, "/auth/register", url.Values{"username": {"alice"}, "password": {"other"}})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, pageText(w), "User 'alice' is already registered.")
	require.EqualValues(t, 1, userCount(t, db))
}

func TestLogin_UnknownUsername(t *testing.T) {
	db := newDB(t)
	r := newRouter(t, db)
	createUser(t, db, "alice", "pw1")

	w := postForm(t, r, "/auth/login", url.Values{"username": {"bob"}, "password": {"pw1"}})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, pageText(w), "Incorrect username.")
	require.Empty(t, w.Result().Cookies())
}

func TestLogin_WrongPassword(t *testing.T) {
	db := newDB(t)
	r := newRouter(t, db)
	createUser(t, db, "alice", "pw1")

	w := postForm(t, r, "/auth/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, pageText(w), "Incorrect password.")
	require.Empty(t, w.Result().Cookies())
}

func TestLogin_Success(t *testing.T) {
	db := newDB(t)
	r := newRouter(t, db)
	user := createUser(t, db, "alice", "pw1")

	w := postForm(t, r, "/auth/login", url.Values{"username": {"alice"}, "password": {"pw1"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, utils.SessionCookie, cookies[0].Name)

	userID, err := utils.ParseSession(cookies[0].Value)
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
}

func TestRegisterThenLogin(t *testing.T) {
	db := newDB(t)
	r := newRouter(t, db)

	w := postForm(t, r, "/auth/register", url.Values{"username": {"alice"}, "password": {"pw1"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = postForm(t, r, "/auth/login", url.Values{"username": {"alice"}, "password": {"pw1"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
}

func TestLogout_ClearsSession(t *testing.T) {
	db := newDB(t)
	r := newRouter(t, db)
	user := createUser(t, db, "alice", "pw1")

	w := getPage(t, r, "/auth/logout", sessionCookie(t, user.ID))
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, utils.SessionCookie, cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.Equal(t, -1, cookies[0].MaxAge)
}

func TestLogout_IdempotentWithoutSession(t *testing.T) {
	db := newDB(t)
	r := newRouter(t, db)

	// logging out twice with no session behaves like logging out once
	for i := 0; i < 2; i++ {
		w := getPage(t, r, "/auth/logout")
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/", w.Header().Get("Location"))
	}
}

func TestRegisterForm_Renders(t *testing.T) {
	r := newRouter(t, newDB(t))
	w := getPage(t, r, "/auth/register")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Register")
}

func TestLoginForm_Renders(t *testing.T) {
	r := newRouter(t, newDB(t))
	w := getPage(t, r, "/auth/login")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Log In")
}
