package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medibook/middleware"
	"medibook/services/profile"
)

// ProfileHandler serves the authenticated patient's profile, used by the
// flow to prefill identity fields when booking for "Self".
type ProfileHandler struct {
	Profiles profile.ProfileService
}

func NewProfileHandler(profiles profile.ProfileService) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles}
}

// Me returns the current patient's profile.
func (h *ProfileHandler) Me(c *gin.Context) {
	prof, err := h.Profiles.GetCurrentPatientProfile(c.Request.Context(), middleware.PatientID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, prof)
}
