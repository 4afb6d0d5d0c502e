package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tanwartailor/tailor-api/internal/application/service"
	"github.com/tanwartailor/tailor-api/internal/presentation/http/dto/request"
	"github.com/tanwartailor/tailor-api/internal/presentation/http/dto/response"
	"github.com/tanwartailor/tailor-api/pkg/oauth"
)

const oauthStateCookie = "oauth_state"

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService  *service.AuthService
	oauthService *oauth.GoogleOAuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, oauthService *oauth.GoogleOAuthService) *AuthHandler {
	return &AuthHandler{authService: authService, oauthService: oauthService}
}

// Login handles admin login
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"user": gin.H{
			"id":    output.User.ID,
			"email": output.User.Email,
		},
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
		"token_type":    "Bearer",
	})
}

// RefreshToken handles token refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed successfully", gin.H{
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
		"token_type":    "Bearer",
	})
}

// GetProfile returns the authenticated admin
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", user)
}

// GoogleLogin redirects the browser to Google's consent screen
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	if !h.oauthService.IsConfigured() {
		response.InternalServerError(c, "Google OAuth is not configured")
		return
	}

	state := uuid.New().String()
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)

	c.Redirect(http.StatusTemporaryRedirect, h.oauthService.GetAuthURL(state))
}

// GoogleCallback completes the OAuth flow and redirects back to the frontend
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		h.redirectWithError(c, "invalid_state")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		h.redirectWithError(c, "missing_code")
		return
	}

	output, err := h.authService.LoginWithGoogle(c.Request.Context(), code)
	if err != nil {
		h.redirectWithError(c, "unauthorized")
		return
	}

	successURL := h.oauthService.GetFrontendSuccessURL()
	if successURL == "" {
		response.OK(c, "Login successful", gin.H{
			"access_token":  output.AccessToken,
			"refresh_token": output.RefreshToken,
			"token_type":    "Bearer",
		})
		return
	}

	query := url.Values{}
	query.Set("access_token", output.AccessToken)
	query.Set("refresh_token", output.RefreshToken)
	c.Redirect(http.StatusTemporaryRedirect, successURL+"?"+query.Encode())
}

func (h *AuthHandler) redirectWithError(c *gin.Context, reason string) {
	errorURL := h.oauthService.GetFrontendErrorURL()
	if errorURL == "" {
		response.Unauthorized(c, "Google sign-in failed")
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, errorURL+"?error="+url.QueryEscape(reason))
}
