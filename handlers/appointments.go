package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	appointmentRepo "medibook/database/repository/appointment"
	"medibook/middleware"
	"medibook/models"
	"medibook/utils"
)

const appointmentListCacheTTL = 5 * time.Minute

// AppointmentsHandler serves the patient's appointment list with a Redis
// read cache. The cache entry is invalidated by the booking flow on every
// successful appointment creation, so the list is refetched with the new
// appointment included.
type AppointmentsHandler struct {
	Repo  appointmentRepo.AppointmentRepository
	Cache *redis.Client
}

func NewAppointmentsHandler(repo appointmentRepo.AppointmentRepository, cache *redis.Client) *AppointmentsHandler {
	return &AppointmentsHandler{Repo: repo, Cache: cache}
}

// List returns the authenticated patient's appointments.
func (h *AppointmentsHandler) List(c *gin.Context) {
	patientID := middleware.PatientID(c)
	ctx := c.Request.Context()
	key := utils.AppointmentListCacheKey(patientID)

	if cached, err := h.Cache.Get(ctx, key).Result(); err == nil {
		var appts []models.Appointment
		if json.Unmarshal([]byte(cached), &appts) == nil {
			c.JSON(http.StatusOK, appts)
			return
		}
	}

	appts, err := h.Repo.ListForPatient(ctx, patientID)
	if err != nil {
		utils.GetLogger().Error("failed to list appointments",
			zap.String("patientID", patientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load appointments. Please try again."})
		return
	}

	if data, err := json.Marshal(appts); err == nil {
		if err := h.Cache.Set(ctx, key, data, appointmentListCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache appointment list", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, appts)
}
