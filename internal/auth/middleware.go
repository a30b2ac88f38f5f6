package auth

import (
	"net/http"

	dom "taskboard/internal/domain"

	"github.com/gin-gonic/gin"
)

const sessionCookieName = "session_id"

const contextKeyActor = "actor"

// ActorFromContext returns the actor resolved by the session middleware.
// Anonymous if no session middleware ran or no session was presented.
func ActorFromContext(c *gin.Context) dom.Actor {
	v, ok := c.Get(contextKeyActor)
	if !ok {
		return dom.Anonymous()
	}
	actor, ok := v.(dom.Actor)
	if !ok {
		return dom.Anonymous()
	}
	return actor
}

// RequireSession returns a middleware that checks for a valid session cookie
// and sets the resolved actor in context. If missing or invalid, responds
// with 401.
func RequireSession(sessions *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookieName)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		sess, ok := sessions.Get(c.Request.Context(), sessionID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		c.Set(contextKeyActor, dom.Authenticated(sess.Role))
		c.Next()
	}
}
