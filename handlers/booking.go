package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"locart/cron"
	"locart/middleware"
	"locart/models"
	"locart/services/booking"
	"locart/utils"
)

// reminderLead is how far ahead of the appointment the reminder fires.
const reminderLead = 2 * time.Hour

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	svc booking.Service
}

func NewBookingHandler(svc booking.Service) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// respondError maps a service failure onto the JSON error envelope.
func respondError(c *gin.Context, err error) {
	if se, ok := booking.AsServiceError(err); ok {
		utils.JSONError(c, se.Status, se.Message, se.Reason)
		return
	}
	utils.GetLogger().Error("request failed",
		zap.String("path", c.FullPath()), zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "internal server error", "")
}

// CreateBooking handles POST /bookings (store mode).
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var in models.CreateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.svc.CreateBooking(c.Request.Context(), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := cron.ScheduleBookingReminder(&models.Booking{
		ID:               created.BookingID,
		UserID:           created.Client.ID,
		ServiceDate:      in.Date,
		ServiceStartTime: in.TimeSlot,
	}, reminderLead); err != nil {
		utils.GetLogger().Warn("failed to schedule reminder",
			zap.String("bookingID", created.BookingID), zap.Error(err))
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "booking created", "data": created})
}

// CreateOnlineBooking handles POST /bookings/online (customer checkout).
func (h *BookingHandler) CreateOnlineBooking(c *gin.Context) {
	var in models.CreateOnlineBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	userID := c.GetString(middleware.CtxUserID)

	created, err := h.svc.CreateOnlineBooking(c.Request.Context(), userID, &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "checkout started", "data": created})
}

// VerifyPayment handles GET /bookings/verify-payment?session_id=...
func (h *BookingHandler) VerifyPayment(c *gin.Context) {
	b, err := h.svc.VerifyPayment(c.Query("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if b.PaymentStatus == models.PaymentStatusPaid {
		if err := cron.ScheduleBookingReminder(b, reminderLead); err != nil {
			utils.GetLogger().Warn("failed to schedule reminder",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "payment verified", "data": b})
}

// UpdateBooking handles PATCH /bookings/:id.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var in models.UpdateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.svc.UpdateBooking(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "booking updated", "data": b})
}

// BulkUpdateStatus handles POST /bookings/bulk-status.
func (h *BookingHandler) BulkUpdateStatus(c *gin.Context) {
	var in models.BulkStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.svc.BulkUpdateStatus(c.Request.Context(), &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "statuses updated", "data": result})
}

// MarkCompleted handles POST /bookings/mark-completed.
func (h *BookingHandler) MarkCompleted(c *gin.Context) {
	var in struct {
		BookingIDs []string `json:"booking_ids"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.svc.MarkCompleted(in.BookingIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "bookings completed", "data": result})
}

// RefundBooking handles POST /bookings/:id/refund (merchant side).
func (h *BookingHandler) RefundBooking(c *gin.Context) {
	var in models.RefundBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.svc.RefundBooking(c.Request.Context(), c.Param("id"), &in); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "booking refunded"})
}

// CancelOwnBooking handles POST /bookings/:id/cancel (customer side).
func (h *BookingHandler) CancelOwnBooking(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	result, err := h.svc.CancelOwnBooking(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "booking cancelled", "data": result})
}

// RefundSummary handles GET /bookings/:id/refund-summary.
func (h *BookingHandler) RefundSummary(c *gin.Context) {
	summary, err := h.svc.RefundSummary(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": summary})
}

// GetBooking handles GET /bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	detail, err := h.svc.GetBookingDetail(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": detail})
}

// ListBookings handles GET /bookings with filters and pagination.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	filter := parseBookingFilter(c)

	items, pagination, err := h.svc.ListBookings(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       items,
		"pagination": pagination,
	})
}

// ExportCalendar handles GET /bookings/:id/calendar as a text/calendar download.
func (h *BookingHandler) ExportCalendar(c *gin.Context) {
	filename, ics, err := h.svc.ExportCalendar(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/calendar", ics)
}
