package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pau-arandia/goblog/middleware"
	"github.com/pau-arandia/goblog/models"
	"github.com/pau-arandia/goblog/utils"
)

const msgTitleRequired = "Title is required."

// PostController serves the shared feed and post creation.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

// Index lists all posts with their author, most recent first. Ties on the
// creation timestamp fall back to id order.
func (p *PostController) Index(ctx *gin.Context) {
	var posts []models.Post
	if err := p.db.Preload("Author").Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		utils.Sugar.Errorf("failed to list posts: %v", err)
		ctx.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	user, _ := middleware.Current(ctx)
	ctx.HTML(http.StatusOK, "index.html", gin.H{
		"user":  user,
		"posts": posts,
	})
}

// CreateForm renders the post creation form. Reaching it requires a
// logged-in user; the router applies the gate.
func (p *PostController) CreateForm(ctx *gin.Context) {
	renderForm(ctx, "create.html", "")
}

// Create inserts a new post owned by the current user. An empty title
// re-renders the form with an error and inserts nothing.
func (p *PostController) Create(ctx *gin.Context) {
	title := strings.TrimSpace(ctx.PostForm("title"))
	body := ctx.PostForm("body")

	if title == "" {
		renderForm(ctx, "create.html", msgTitleRequired)
		return
	}

	user, ok := middleware.Current(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/auth/login")
		return
	}

	post := models.Post{
		AuthorID: user.ID,
		Title:    title,
		Body:     utils.Sanitize(body),
	}

	if err := p.db.Create(&post).Error; err != nil {
		utils.Sugar.Errorf("failed to create post: %v", err)
		ctx.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/")
}
