package queue

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"barberq/internal/domain"
	"barberq/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

// BarberResolver maps the authenticated user to their barber profile.
type BarberResolver interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Barber, error)
}

type Handler struct {
	service *Service
	hub     *Hub
	barbers BarberResolver
}

func NewHandler(service *Service, hub *Hub, barbers BarberResolver) *Handler {
	return &Handler{service: service, hub: hub, barbers: barbers}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// RegisterPublicRoutes exposes the read-only queue surfaces (customer queue
// view and shop display).
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/queue/:barberID", h.GetQueue)
	rg.GET("/queue/:barberID/ws", h.WatchQueue)
}

// RegisterBarberRoutes exposes the station controls. Callers must hold the
// barber role; each barber only ever drives their own station.
func (h *Handler) RegisterBarberRoutes(rg *gin.RouterGroup) {
	rg.GET("/station/queue", h.MyQueue)
	rg.POST("/station/call-next", h.CallNext)
	rg.POST("/station/complete", h.CompleteCurrent)
	rg.POST("/station/walk-in", h.AddWalkIn)
	rg.POST("/station/break/start", h.StartBreak)
	rg.POST("/station/break/end", h.EndBreak)
	rg.POST("/station/emergency", h.TriggerEmergency)
	rg.POST("/station/emergency/resolve", h.ResolveEmergency)
}

func (h *Handler) GetQueue(c *gin.Context) {
	barberID, err := strconv.ParseInt(c.Param("barberID"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid barber ID")
		return
	}

	snap, err := h.service.Snapshot(c.Request.Context(), barberID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load queue")
		return
	}

	response.Success(c, http.StatusOK, snap)
}

// WatchQueue upgrades to a websocket, sends the current snapshot and keeps
// the connection subscribed until the client goes away.
func (h *Handler) WatchQueue(c *gin.Context) {
	barberID, err := strconv.ParseInt(c.Param("barberID"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid barber ID")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.hub.Subscribe(barberID, conn)

	if snap, err := h.service.Snapshot(c.Request.Context(), barberID); err == nil {
		h.hub.Send(barberID, conn, snap)
	}

	go func() {
		defer h.hub.Unsubscribe(barberID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Handler) resolveBarber(c *gin.Context) (int64, bool) {
	userID := c.GetInt64("user_id")
	barber, err := h.barbers.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "No barber profile for this account")
		} else {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to resolve barber")
		}
		return 0, false
	}
	return barber.ID, true
}

func (h *Handler) MyQueue(c *gin.Context) {
	barberID, ok := h.resolveBarber(c)
	if !ok {
		return
	}

	snap, err := h.service.Snapshot(c.Request.Context(), barberID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load queue")
		return
	}
	response.Success(c, http.StatusOK, snap)
}

func (h *Handler) CallNext(c *gin.Context) {
	barberID, ok := h.resolveBarber(c)
	if !ok {
		return
	}

	snap, err := h.service.CallNext(c.Request.Context(), barberID)
	if err != nil {
		h.writeTransitionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, snap)
}

func (h *Handler) CompleteCurrent(c *gin.Context) {
	barberID, ok := h.resolveBarber(c)
	if !ok {
		return
	}

	snap, err := h.service.CompleteCurrent(c.Request.Context(), barberID)
	if err != nil {
		h.writeTransitionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, snap)
}

func (h *Handler) AddWalkIn(c *gin.Context) {
	barberID, ok := h.resolveBarber(c)
	if !ok {
		return
	}

	// body is optional: a bare walk-in gets the default name and service
	var req WalkInRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
	}

	snap, err := h.service.AddWalkIn(c.Request.Context(), barberID, WalkInInput{
		CustomerName: req.CustomerName,
		ServiceName:  req.ServiceName,
		Price:        req.Price,
		Duration:     req.Duration,
	})
	if err != nil {
		h.writeTransitionError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, snap)
}

func (h *Handler) StartBreak(c *gin.Context) {
	h.stationAction(c, func(ctx context.Context, barberID int64) (*Snapshot, error) {
		return h.service.StartBreak(ctx, barberID)
	})
}

func (h *Handler) EndBreak(c *gin.Context) {
	h.stationAction(c, func(ctx context.Context, barberID int64) (*Snapshot, error) {
		return h.service.EndBreak(ctx, barberID)
	})
}

func (h *Handler) TriggerEmergency(c *gin.Context) {
	var req ConfirmRequest
	_ = c.ShouldBindJSON(&req)
	h.stationAction(c, func(ctx context.Context, barberID int64) (*Snapshot, error) {
		return h.service.TriggerEmergency(ctx, barberID, req.Confirm)
	})
}

func (h *Handler) ResolveEmergency(c *gin.Context) {
	var req ConfirmRequest
	_ = c.ShouldBindJSON(&req)
	h.stationAction(c, func(ctx context.Context, barberID int64) (*Snapshot, error) {
		return h.service.ResolveEmergency(ctx, barberID, req.Confirm)
	})
}

func (h *Handler) stationAction(c *gin.Context, fn func(ctx context.Context, barberID int64) (*Snapshot, error)) {
	barberID, ok := h.resolveBarber(c)
	if !ok {
		return
	}

	snap, err := fn(c.Request.Context(), barberID)
	if err != nil {
		h.writeTransitionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, snap)
}

// writeTransitionError maps precondition failures to non-fatal 409s the
// client renders as a notice, never as a crash.
func (h *Handler) writeTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrQueueEmpty):
		response.Error(c, http.StatusConflict, "QUEUE_EMPTY", "No next customer in the queue")
	case errors.Is(err, ErrNoCurrentCustomer):
		response.Error(c, http.StatusConflict, "NO_CURRENT_CUSTOMER", "No customer is currently being served")
	case errors.Is(err, ErrStationPaused):
		response.Error(c, http.StatusConflict, "STATION_PAUSED", "Station is on break or stopped")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Station cannot change to that state")
	case errors.Is(err, ErrConfirmationRequired):
		response.Error(c, http.StatusBadRequest, "CONFIRMATION_REQUIRED", "This action must be confirmed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Queue operation failed")
	}
}
