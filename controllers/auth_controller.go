package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pau-arandia/goblog/middleware"
	"github.com/pau-arandia/goblog/models"
	"github.com/pau-arandia/goblog/utils"
)

// Fixed user-facing messages for the auth flows. Tests depend on the exact
// wording.
const (
	msgUsernameRequired = "Username is required."
	msgPasswordRequired = "Password is required."
	msgIncorrectUser    = "Incorrect username."
	msgIncorrectPass    = "Incorrect password."
)

// AuthController handles registration, login and logout.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// RegisterForm renders the registration form.
func (a *AuthController) RegisterForm(ctx *gin.Context) {
	renderForm(ctx, "register.html", "")
}

// Register creates a new user from the submitted form. Validation is
// short-circuit: empty username, then empty password, then the insert
// itself, whose unique-index violation means the username is taken. On
// success the user is sent to the login page without being logged in.
func (a *AuthController) Register(ctx *gin.Context) {
	username := ctx.PostForm("username")
	password := ctx.PostForm("password")

	if username == "" {
		renderForm(ctx, "register.html", msgUsernameRequired)
		return
	}
	if password == "" {
		renderForm(ctx, "register.html", msgPasswordRequired)
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		utils.Sugar.Errorf("failed to hash password: %v", err)
		ctx.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	user := models.User{Username: username, PasswordHash: hash}
	if err := a.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			renderForm(ctx, "register.html", fmt.Sprintf("User '%s' is already registered.", username))
			return
		}
		utils.Sugar.Errorf("failed to create user: %v", err)
		ctx.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/auth/login")
}

// LoginForm renders the login form.
func (a *AuthController) LoginForm(ctx *gin.Context) {
	renderForm(ctx, "login.html", "")
}

// Login verifies credentials and opens a fresh session. The username is
// checked before the password, and only hashes are ever compared.
func (a *AuthController) Login(ctx *gin.Context) {
	username := ctx.PostForm("username")
	password := ctx.PostForm("password")

	var user models.User
	if err := a.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderForm(ctx, "login.html", msgIncorrectUser)
			return
		}
		utils.Sugar.Errorf("failed to look up user: %v", err)
		ctx.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		renderForm(ctx, "login.html", msgIncorrectPass)
		return
	}

	// A fresh token replaces any prior session state on the client.
	if err := utils.SetSession(ctx, user.ID); err != nil {
		utils.Sugar.Errorf("failed to sign session: %v", err)
		ctx.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/")
}

// Logout clears the session and returns to the index. Calling it without an
// active session is a no-op that still redirects.
func (a *AuthController) Logout(ctx *gin.Context) {
	utils.ClearSession(ctx)
	ctx.Redirect(http.StatusFound, "/")
}

// renderForm renders one of the form templates, optionally with a
// validation error message.
func renderForm(ctx *gin.Context, name, errMsg string) {
	user, _ := middleware.Current(ctx)
	ctx.HTML(http.StatusOK, name, gin.H{
		"user":  user,
		"error": errMsg,
	})
}
