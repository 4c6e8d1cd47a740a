package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kashafah/scouthub/internal/model"
	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
	"github.com/kashafah/scouthub/internal/pkg/response"
	"github.com/kashafah/scouthub/internal/repo"
)

const ContextUserKey = "current_user"

// RequireRole loads the authenticated user and rejects callers below the
// given role. The loaded user is left in the context so handlers do not hit
// the database twice.
func RequireRole(users *repo.UserRepo, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(ContextUserIDKey)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "unauthorized", "missing identity")
			c.Abort()
			return
		}
		userID, _ := v.(int64)
		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if appErr.IsNotFound(err) {
				response.Error(c, http.StatusUnauthorized, "unauthorized", "unknown user")
			} else {
				response.Error(c, http.StatusInternalServerError, "internal_error", "load user failed")
			}
			c.Abort()
			return
		}
		if !user.IsActive {
			response.Error(c, http.StatusUnauthorized, "unauthorized", "account disabled")
			c.Abort()
			return
		}
		if !user.HasPermission(role) {
			response.Error(c, http.StatusForbidden, "forbidden", "insufficient role")
			c.Abort()
			return
		}
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser pulls the user loaded by RequireRole out of the context.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}
