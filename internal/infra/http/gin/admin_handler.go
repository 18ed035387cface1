package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"farmstay/internal/app/dto"
	adminapp "farmstay/internal/app/services/admin"
	domainreservation "farmstay/internal/domain/reservation"
)

type AdminHandler struct {
	Service *adminapp.Service
	Logger  *slog.Logger
}

func (h AdminHandler) List(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin service unavailable"})
		return
	}
	items, err := h.Service.List(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("list reservations failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list reservations"})
		return
	}
	resp := dto.ReservationCollection{
		Items: make([]dto.ReservationSummary, 0, len(items)),
		Total: len(items),
	}
	for _, res := range items {
		resp.Items = append(resp.Items, dto.MapReservationSummary(res))
	}
	c.JSON(http.StatusOK, resp)
}

func (h AdminHandler) Get(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin service unavailable"})
		return
	}
	res, err := h.Service.Reservations.ByID(c.Request.Context(), domainreservation.ID(c.Param("id")))
	if err != nil {
		if errors.Is(err, domainreservation.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load reservation"})
		return
	}
	c.JSON(http.StatusOK, dto.MapReservationSummary(res))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h AdminHandler) UpdateStatus(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin service unavailable"})
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status required"})
		return
	}
	res, err := h.Service.ChangeStatus(c.Request.Context(), domainreservation.ID(c.Param("id")), domainreservation.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainreservation.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
		case errors.Is(err, domainreservation.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			if h.Logger != nil {
				h.Logger.Error("status change failed", "reservation_id", c.Param("id"), "error", err)
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update reservation"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.MapReservationSummary(res))
}

type updatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
}

func (h AdminHandler) UpdatePaymentStatus(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin service unavailable"})
		return
	}
	var req updatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PaymentStatus == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_status required"})
		return
	}
	res, err := h.Service.SetPaymentStatus(c.Request.Context(), domainreservation.ID(c.Param("id")), domainreservation.PaymentStatus(req.PaymentStatus))
	if err != nil {
		if errors.Is(err, domainreservation.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.MapReservationSummary(res))
}

func (h AdminHandler) Dashboard(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin service unavailable"})
		return
	}
	board, err := h.Service.DashboardStats(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("dashboard stats failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot compute dashboard"})
		return
	}
	c.JSON(http.StatusOK, dto.Dashboard{
		OccupancyRate: board.OccupancyRate,
		RevenueToday:  board.RevenueToday,
		RevenueWeek:   board.RevenueWeek,
		RevenueMonth:  board.RevenueMonth,
		AverageTicket: board.AverageTicket,
		LeadTimes:     board.LeadTimes,
	})
}

var _ AdminHTTP = AdminHandler{}
