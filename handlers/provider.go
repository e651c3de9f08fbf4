package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	providerRepo "medibook/database/repository/provider"
	"medibook/utils"
)

// ProviderHandler serves the provider catalog consumed by the booking UI.
type ProviderHandler struct {
	Repo providerRepo.ProviderRepository
}

func NewProviderHandler(repo providerRepo.ProviderRepository) *ProviderHandler {
	return &ProviderHandler{Repo: repo}
}

// Get returns one provider with its services and working hours.
func (h *ProviderHandler) Get(c *gin.Context) {
	provider, err := h.Repo.GetByID(c.Param("providerID"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "provider not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, provider)
}

// List returns all providers.
func (h *ProviderHandler) List(c *gin.Context) {
	providers, err := h.Repo.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list providers", err.Error())
		return
	}
	c.JSON(http.StatusOK, providers)
}
