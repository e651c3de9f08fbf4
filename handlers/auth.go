package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medibook/services/auth"
	"medibook/utils"
)

// AuthHandler exchanges third-party identity tokens for first-party ones.
type AuthHandler struct {
	Verifier auth.TokenVerifier
}

func NewAuthHandler(verifier auth.TokenVerifier) *AuthHandler {
	return &AuthHandler{Verifier: verifier}
}

// OAuthLogin accepts an OAuth identity token, validates it, and returns a
// session JWT. The booking flow listens only for this call's success or
// failure.
func (h *AuthHandler) OAuthLogin(c *gin.Context) {
	var req struct {
		IDToken string `json:"idToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	token, subject, email, err := auth.ExchangeToken(c.Request.Context(), h.Verifier, req.IDToken)
	if err != nil {
		utils.GetLogger().Warn("oauth login failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login failed. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "patientId": subject, "email": email})
}
