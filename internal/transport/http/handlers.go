package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Motalib01/Ihjizely-sub000/internal/domain"
	"github.com/Motalib01/Ihjizely-sub000/internal/service"
)

// statusFor maps domain errors onto HTTP statuses so clients can tell
// business-rule failures from infrastructure ones.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrOverlap):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidRange), errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

type BookingHandler struct {
	svc *service.BookingSvc
}

func NewBookingHandler(svc *service.BookingSvc) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// POST /v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var in struct {
		UnitID        uuid.UUID `json:"unit_id" binding:"required"`
		GuestID       uuid.UUID `json:"guest_id" binding:"required"`
		StartDate     string    `json:"start_date" binding:"required"` // YYYY-MM-DD
		EndDate       string    `json:"end_date" binding:"required"`
		PriceAmount   int64     `json:"price_amount" binding:"required"`
		PriceCurrency string    `json:"price_currency" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := time.Parse(time.DateOnly, in.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(time.DateOnly, in.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return
	}
	b, err := h.svc.Create(c.Request.Context(), service.CreateBookingInput{
		UnitID:        in.UnitID,
		GuestID:       in.GuestID,
		StartDate:     start,
		EndDate:       end,
		PriceAmount:   in.PriceAmount,
		PriceCurrency: in.PriceCurrency,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// POST /v1/bookings/:id/confirm | /reject | /cancel
func (h *BookingHandler) transitionTo(to domain.BookingStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
			return
		}
		b, err := h.svc.Transition(c.Request.Context(), id, to)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// GET /v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	b, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

type PropertyHandler struct {
	svc *service.PropertySvc
}

func NewPropertyHandler(svc *service.PropertySvc) *PropertyHandler {
	return &PropertyHandler{svc: svc}
}

// POST /v1/properties
func (h *PropertyHandler) Create(c *gin.Context) {
	var in struct {
		OwnerID    uuid.UUID      `json:"owner_id" binding:"required"`
		Title      string         `json:"title" binding:"required"`
		Type       string         `json:"type" binding:"required"`
		Details    datatypes.JSON `json:"details"`
		Images     datatypes.JSON `json:"images"`
		Facilities datatypes.JSON `json:"facilities"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.svc.Create(c.Request.Context(), service.CreatePropertyInput{
		OwnerID:    in.OwnerID,
		Title:      in.Title,
		Type:       domain.PropertyType(in.Type),
		Details:    in.Details,
		Images:     in.Images,
		Facilities: in.Facilities,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /v1/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
