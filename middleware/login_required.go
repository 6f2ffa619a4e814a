package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LoginRequired guards handlers that need an authenticated user. Without a
// current user the request is redirected to the login page and the wrapped
// handler never runs; otherwise the chain continues untouched.
func LoginRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := Current(ctx); !ok {
			ctx.Redirect(http.StatusFound, "/auth/login")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
