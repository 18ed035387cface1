package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"farmstay/internal/app/dto"
	bookingapp "farmstay/internal/app/services/booking"
)

type BookingHandler struct {
	Service *bookingapp.Service
}

// Quote prices a request without persisting anything. Validation problems
// come back as a violations list so the form can show all of them at once.
func (h BookingHandler) Quote(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "booking service unavailable"})
		return
	}
	var req dto.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Service.Quote(c.Request.Context(), req.ToDomainRequest())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(result.Violations) > 0 {
		c.JSON(http.StatusUnprocessableEntity, dto.QuoteResponse{Violations: result.Violations})
		return
	}
	quote := dto.MapQuote(result.Quote)
	c.JSON(http.StatusOK, dto.QuoteResponse{Violations: []string{}, Quote: &quote})
}

func (h BookingHandler) Create(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "booking service unavailable"})
		return
	}
	var req dto.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Service.Submit(c.Request.Context(), req.ToDomainRequest())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(result.Violations) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"violations": result.Violations})
		return
	}
	c.JSON(http.StatusCreated, dto.MapReservationSummary(result.Reservation))
}

var _ BookingHTTP = BookingHandler{}
