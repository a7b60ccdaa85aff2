package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/svuportal/portal-backend/internal/response"
	"github.com/svuportal/portal-backend/internal/service"
)

// CheckActiveSession verifies the token's subject against the persisted
// session record. The portal holds at most one identity: a logout or a
// login by someone else empties or replaces the slot, and any token
// minted for the previous occupant is rejected from then on.
func CheckActiveSession(sessions *service.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		identity, err := sessions.Load(c.Request.Context())
		if err != nil {
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		if identity == nil || identity.ID != claims.Subject {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
			return
		}

		c.Next()
	}
}
