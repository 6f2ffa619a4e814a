package routes

import (
	"html/template"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pau-arandia/goblog/config"
	"github.com/pau-arandia/goblog/controllers"
	"github.com/pau-arandia/goblog/middleware"
	"github.com/pau-arandia/goblog/templates"
	"github.com/pau-arandia/goblog/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap access logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl))
		r.Use(utils.RecoveryWithZap(gl))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.SetHTMLTemplate(template.Must(template.New("").ParseFS(templates.FS, "*.html")))

	// Identity runs before every handler so current_user is always resolved.
	r.Use(middleware.CurrentUser(db))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db)

	auth := r.Group("/auth")
	auth.Use(middleware.RateLimitMiddleware())
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
