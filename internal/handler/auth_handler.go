package handler

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/logger"
	"quizcraft/internal/service"
)

const oauthStateCookie = "oauth_state"

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// GoogleLogin godoc
// @Summary Redirect to the Google OAuth consent screen
// @Tags auth
// @Success 307
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	state, err := generateState()
	if err != nil {
		return domain.NewInternalError("failed to generate oauth state", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect(h.service.GetGoogleLoginURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback godoc
// @Summary Complete the Google OAuth flow and issue a token pair
// @Tags auth
// @Produce json
// @Param code query string true "OAuth authorization code"
// @Param state query string true "OAuth state"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	expectedState := c.Cookies(oauthStateCookie)
	c.ClearCookie(oauthStateCookie)

	accessToken, refreshToken, learner, err := h.service.HandleGoogleCallback(
		c.Context(), c.Query("code"), c.Query("state"), expectedState)
	if err != nil {
		logger.Get().Warn("Google OAuth callback failed", zap.Error(err))
		return domain.NewUnauthorizedError("google login failed")
	}

	logger.Get().Info("Learner authenticated", zap.String("learner_id", learner.ID))
	return c.JSON(dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Refresh godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return domain.NewInvalidInputError("refresh_token is required")
	}

	accessToken, refreshToken, err := h.service.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		return domain.NewUnauthorizedError("refresh token is invalid or expired")
	}

	return c.JSON(dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Logout godoc
// @Summary Revoke the learner's refresh token
// @Tags auth
// @Success 204
// @Failure 401 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	id, err := learnerID(c)
	if err != nil {
		return err
	}
	if err := h.service.Logout(c.Context(), id); err != nil {
		return domain.NewInternalError("logout failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func generateState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
