package handlers

import (
	"net/http"

	"safecity/internal/config"
	"safecity/internal/models"
	"safecity/internal/services"
	"safecity/internal/utils"
	"safecity/internal/validators"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
	config      *config.AuthConfig
	secure      bool
}

func NewAuthHandler(authService services.AuthService, authConfig *config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		config:      authConfig,
		secure:      config.IsProduction(),
	}
}

// SignUp registers a new user account
func (h *AuthHandler) SignUp(c *gin.Context) {
	var request validators.SignUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if fields := validators.ValidateSignUpRequest(&request); fields != nil {
		utils.ValidationErrorResponse(c, fields)
		return
	}

	user, err := h.authService.SignUp(c.Request.Context(), request.Name, request.Email, request.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Account created successfully", user)
}

// SignIn authenticates a user and issues the session cookie
func (h *AuthHandler) SignIn(c *gin.Context) {
	var request validators.SignInRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if fields := validators.ValidateSignInRequest(&request); fields != nil {
		utils.ValidationErrorResponse(c, fields)
		return
	}

	token, session, err := h.authService.SignIn(c.Request.Context(), request.Email, request.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, token, int(h.config.SessionTTL.Seconds()))

	utils.SuccessResponse(c, "Signed in successfully", gin.H{
		"user_id":    session.UserID.Hex(),
		"role":       session.Role,
		"expires_at": session.ExpiresAt,
	})
}

// SignOut revokes the session and clears the cookie
func (h *AuthHandler) SignOut(c *gin.Context) {
	token, err := c.Cookie(h.config.SessionCookie)
	if err == nil && token != "" {
		if err := h.authService.SignOut(c.Request.Context(), token); err != nil {
			handleServiceError(c, err)
			return
		}
	}

	h.setSessionCookie(c, "", -1)

	utils.SuccessResponse(c, "Signed out successfully", nil)
}

// Me returns the account behind the current session
func (h *AuthHandler) Me(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		utils.UnauthorizedResponse(c)
		return
	}

	user, err := h.authService.User(c.Request.Context(), session)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Session retrieved successfully", gin.H{
		"user":       user,
		"expires_at": session.ExpiresAt,
	})
}

// VerifyRole answers capability checks for the access gate. An
// unauthenticated caller gets 401; an authenticated caller always gets
// 200 with an explicit authorized flag.
func (h *AuthHandler) VerifyRole(c *gin.Context) {
	token, err := c.Cookie(h.config.SessionCookie)
	if err != nil || token == "" {
		utils.UnauthorizedResponse(c)
		return
	}

	session, err := h.authService.SessionFromToken(c.Request.Context(), token)
	if err != nil {
		utils.UnauthorizedResponse(c)
		return
	}

	authorized := true
	if capability := c.Query("capability"); capability != "" {
		authorized = session.Role.HasCapability(models.Capability(capability))
	}

	c.JSON(http.StatusOK, gin.H{
		"authorized": authorized,
		"role":       session.Role,
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.config.SessionCookie, value, maxAge, "/", "", h.secure, true)
}
