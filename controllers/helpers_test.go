package controllers

import (
	"html"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pau-arandia/goblog/middleware"
	"github.com/pau-arandia/goblog/models"
	"github.com/pau-arandia/goblog/templates"
	"github.com/pau-arandia/goblog/utils"
)

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// in-memory sqlite: every pooled connection is a distinct database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}))
	return db
}

// newRouter wires the controllers the way the real router does, minus the
// access log and rate limiting.
func newRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("").ParseFS(templates.FS, "*.html")))
	r.Use(middleware.CurrentUser(db))

	authController := NewAuthController(db)
	postController := NewPostController(db)

	auth := r.Group("/auth")
	auth.GET("/register", authController.RegisterForm)
	auth.POST("/register", authController.Register)
	auth.GET("/login", authController.LoginForm)
	auth.POST("/login", authController.Login)
	auth.GET("/logout", authController.Logout)

	r.GET("/", postController.Index)

	create := r.Group("/create")
	create.Use(middleware.LoginRequired())
	create.GET("", postController.CreateForm)
	create.POST("", postController.Create)

	return r
}

func getPage(t *testing.T, r *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(t *testing.T, r *gin.Engine, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// pageText returns the response body with HTML entities decoded, so tests
// can assert on the exact user-facing messages.
func pageText(w *httptest.ResponseRecorder) string {
	return html.UnescapeString(w.Body.String())
}

func createUser(t *testing.T, db *gorm.DB, username, password string) models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user := models.User{Username: username, PasswordHash: hash}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func sessionCookie(t *testing.T, userID uint) *http.Cookie {
	t.Helper()
	token, err := utils.SignSession(userID)
	require.NoError(t, err)
	return &http.Cookie{Name: utils.SessionCookie, Value: token}
}

func userCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
	return n
}

func postCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Post{}).Count(&n).Error)
	return n
}
