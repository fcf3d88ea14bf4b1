package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/drop/pkg/auth"
	pkglog "github.com/thereayou/drop/pkg/log"
)

const (
	ViewerKey = "viewer"
	TokenKey  = "token"
)

// Viewer вошедший пользователь
type Viewer struct {
	ID       string
	Username string
}

// ViewerFrom возвращает зрителя, если запрос аутентифицирован
func ViewerFrom(c *gin.Context) (Viewer, bool) {
	v, ok := c.Get(ViewerKey)
	if !ok {
		return Viewer{}, false
	}
	viewer, ok := v.(Viewer)
	return viewer, ok
}

// AuthMiddleware пропускает только запросы с валидным JWT
func AuthMiddleware(jwtManager *auth.JWTManager, blacklist auth.TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		if msg := authenticate(c, jwtManager, blacklist, token); msg != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		c.Next()
	}
}

// OptionalAuth как AuthMiddleware, но без токена пускает анонимно.
// Кривой или отозванный токен всё равно отклоняется.
func OptionalAuth(jwtManager *auth.JWTManager, blacklist auth.TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		if msg := authenticate(c, jwtManager, blacklist, token); msg != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, jwtManager *auth.JWTManager, blacklist auth.TokenBlacklist, token string) string {
	revoked, err := blacklist.IsRevoked(c.Request.Context(), token)
	if err != nil || revoked {
		return "token is blacklisted"
	}

	claims, err := jwtManager.Verify(token)
	if err != nil {
		return "invalid token"
	}

	c.Set(ViewerKey, Viewer{ID: claims.Subject, Username: claims.Username})
	c.Set(TokenKey, token)
	c.Set(pkglog.FieldViewerID, claims.Subject)
	return ""
}
