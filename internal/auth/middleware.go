package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

type contextKey string

const actorContextKey contextKey = "galleryActor"

// AuthMiddleware validates bearer tokens and injects the authenticated actor.
func AuthMiddleware(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "missing authorization header"})
			return
		}

		token := extractBearerToken(authHeader)
		if token == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := service.ValidateAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(string(actorContextKey), claims.Actor())
		c.Next()
	}
}

// CurrentActor extracts the authenticated actor from the context.
func CurrentActor(c *gin.Context) (Actor, bool) {
	value, exists := c.Get(string(actorContextKey))
	if !exists {
		return Actor{}, false
	}
	actor, ok := value.(Actor)
	return actor, ok
}

// RequireActor fetches the authenticated actor, requiring a usable identity.
func RequireActor(c *gin.Context) (Actor, bool) {
	actor, ok := CurrentActor(c)
	if !ok || actor.ID == "" {
		return Actor{}, false
	}
	return actor, true
}

func extractBearerToken(header string) string {
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
