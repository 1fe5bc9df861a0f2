package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"safecity/internal/config"
	"safecity/internal/handlers"
	"safecity/internal/models"
	"safecity/internal/services"
	"safecity/internal/utils"
	"safecity/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SessionRequired resolves the session cookie and aborts with 401 when
// it is missing, invalid, or revoked. API routes use this; page routes
// use AccessGate instead.
func SessionRequired(authService services.AuthService, authConfig *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(authConfig.SessionCookie)
		if err != nil || token == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		session, err := authService.SessionFromToken(c.Request.Context(), token)
		if err != nil {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		c.Set(handlers.SessionContextKey, session)
		c.Set("user_id", session.UserID)
		c.Next()
	}
}

// CapabilityRequired gates a route on a capability of the session role.
// Must run after SessionRequired.
func CapabilityRequired(capability models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(handlers.SessionContextKey)
		if !exists {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		session, ok := value.(*models.Session)
		if !ok || !session.Role.HasCapability(capability) {
			utils.ForbiddenResponse(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

type verifyRoleResponse struct {
	Authorized bool        `json:"authorized"`
	Role       models.Role `json:"role"`
}

// AccessGate protects browser-facing pages by asking the verify-role
// endpoint whether the caller may enter. Every failure mode short of an
// explicit "authorized" answer redirects away: no cookie, network
// error, non-OK status, and undecodable bodies all deny access.
func AccessGate(authConfig *config.AuthConfig, capability models.Capability, log *logger.Logger) gin.HandlerFunc {
	client := &http.Client{Timeout: 5 * time.Second}

	return func(c *gin.Context) {
		cookie, err := c.Request.Cookie(authConfig.SessionCookie)
		if err != nil || cookie.Value == "" {
			c.Redirect(http.StatusFound, authConfig.SignInPath)
			c.Abort()
			return
		}

		req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, authConfig.VerifyRoleURL, nil)
		if err != nil {
			c.Redirect(http.StatusFound, authConfig.SignInPath)
			c.Abort()
			return
		}

		query := req.URL.Query()
		query.Set("capability", string(capability))
		req.URL.RawQuery = query.Encode()
		req.AddCookie(cookie)

		resp, err := client.Do(req)
		if err != nil {
			log.WithError(err).Warn("Role verification unreachable, denying access")
			c.Redirect(http.StatusFound, authConfig.SignInPath)
			c.Abort()
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			c.Redirect(http.StatusFound, authConfig.SignInPath)
			c.Abort()
			return
		}

		var verdict verifyRoleResponse
		if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
			log.WithError(err).Warn("Role verification returned malformed body, denying access")
			c.Redirect(http.StatusFound, authConfig.SignInPath)
			c.Abort()
			return
		}

		if !verdict.Authorized {
			c.Redirect(http.StatusFound, authConfig.DeniedPath)
			c.Abort()
			return
		}

		c.Next()
	}
}
