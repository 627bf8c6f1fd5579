package catalog

import (
	"net/http"
	"strconv"
	"time"

	"barberq/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/barbers", h.ListBarbers)
	rg.GET("/barbers/:id", h.GetBarber)
	rg.GET("/barbers/:id/schedule", h.GetSchedule)
	rg.GET("/services", h.ListServices)
}

func (h *Handler) ListBarbers(c *gin.Context) {
	barbers, err := h.service.ListBarbers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load barbers")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"barbers": barbers})
}

func (h *Handler) GetBarber(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid barber ID")
		return
	}

	b, err := h.service.GetBarber(c.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Barber not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load barber")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"barber": b})
}

func (h *Handler) GetSchedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid barber ID")
		return
	}

	day := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		day, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, expected YYYY-MM-DD")
			return
		}
	}

	schedule, err := h.service.ScheduleFor(c.Request.Context(), id, day)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Barber not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load schedule")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"schedule": schedule})
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load services")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": services})
}
