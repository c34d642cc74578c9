package middleware

import (
	"net/http"
	"strings"

	"github.com/davidsantoszx/gerenciadorsalario/internal/auth"
	"github.com/davidsantoszx/gerenciadorsalario/internal/models"
	"github.com/davidsantoszx/gerenciadorsalario/internal/util"

	"github.com/gin-gonic/gin"
)

const userKey = "currentUser"

// RequireAuth resolves the current identity and puts the user into the
// gin context. API-style requests get a 401 JSON body; page requests are
// redirected to /login.
func RequireAuth(svc *auth.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, cookieName)
		if token == "" {
			reject(c)
			return
		}

		user, err := svc.Resolve(token)
		if err != nil {
			reject(c)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// sessionToken extracts the session token: cookie first (pages and the
// browser API calls), then Authorization: Bearer.
func sessionToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	return ""
}

func reject(c *gin.Context) {
	if wantsJSON(c) {
		util.Error(c, http.StatusUnauthorized, "Faça login para salvar seus planos.")
	} else {
		c.Redirect(http.StatusFound, "/login")
	}
	c.Abort()
}

// wantsJSON matches the historical unauthorized handler: anything under
// /api/ or any JSON request gets a structured error instead of a redirect.
func wantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return true
	}
	if strings.Contains(c.ContentType(), "application/json") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

// CurrentUser returns the user placed in the context by RequireAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
