package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/justsurfingit/senior-job-match/internal/common"
	"github.com/justsurfingit/senior-job-match/internal/session"
)

const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

// Actor reads the caller from the X-Actor-ID and X-Actor-Role headers and
// stores it on the request context. Requests without either header proceed
// anonymously; a malformed pair is rejected.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := strings.TrimSpace(c.GetHeader(HeaderActorID))
		rawRole := strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderActorRole)))
		if rawID == "" && rawRole == "" {
			c.Next()
			return
		}

		id, err := uuid.Parse(rawID)
		if err != nil {
			abort(c, http.StatusUnauthorized, common.CodeUnauthorized, "invalid actor id")
			return
		}
		role := session.Role(rawRole)
		if !role.Valid() {
			abort(c, http.StatusUnauthorized, common.CodeUnauthorized, "invalid actor role")
			return
		}

		actor := session.Actor{ID: id, Role: role}
		c.Request = c.Request.WithContext(session.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

// RequireRole lets the request through only for the given roles.
func RequireRole(roles ...session.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := session.FromContext(c.Request.Context())
		if actor.Anonymous() {
			abort(c, http.StatusUnauthorized, common.CodeUnauthorized, "login required")
			return
		}
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, common.CodeForbidden, "not allowed for role "+string(actor.Role))
	}
}

func abort(c *gin.Context, status int, code common.Code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}
