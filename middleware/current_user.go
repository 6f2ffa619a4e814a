package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pau-arandia/goblog/models"
	"github.com/pau-arandia/goblog/utils"
)

// ContextUserKey is the key under which the resolved user record is stored
// in the Gin context for the duration of one request.
const ContextUserKey = "current_user"

// CurrentUser resolves the session cookie to a full user record before any
// handler runs. A missing, invalid, or expired session, or a session whose
// user id no longer exists in storage, resolves to no user without error;
// any other storage fault fails the request. The lookup happens at most
// once per request.
func CurrentUser(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := utils.ReadSession(ctx)
		if !ok {
			ctx.Next()
			return
		}

		var user models.User
		err := db.First(&user, userID).Error
		switch {
		case err == nil:
			ctx.Set(ContextUserKey, &user)
		case errors.Is(err, gorm.ErrRecordNotFound):
			// stale session: the referenced user is gone
		default:
			utils.Sugar.Errorf("failed to resolve session user: %v", err)
			ctx.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		ctx.Next()
	}
}

// Current returns the user attached to the request, if any.
func Current(ctx *gin.Context) (*models.User, bool) {
	v, ok := ctx.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
