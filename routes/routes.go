package routes

import (
	"github.com/gin-gonic/gin"

	"locart/handlers"
	"locart/middleware"
)

// Handlers groups the constructed handler set for registration.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Booking *handlers.BookingHandler
	Stylist *handlers.StylistHandler
	Webhook *handlers.WebhookHandler
}

// Register wires every route group onto the engine.
func Register(r *gin.Engine, h *Handlers) {
	registerAuthRoutes(r, h.Auth)
	registerBookingRoutes(r, h.Booking)
	registerStylistRoutes(r, h.Stylist)
	registerWebhookRoutes(r, h.Webhook)
}

func registerAuthRoutes(r *gin.Engine, h *handlers.AuthHandler) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}
}

func registerBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	bookings := r.Group("/api/bookings", middleware.JWTAuthMiddleware())
	{
		// Store-side management.
		staff := bookings.Group("", middleware.RequireCapability(middleware.CapManageBookings))
		{
			staff.POST("", h.CreateBooking)
			staff.GET("", h.ListBookings)
			staff.PATCH("/:id", h.UpdateBooking)
			staff.POST("/bulk-status", h.BulkUpdateStatus)
			staff.POST("/mark-completed", h.MarkCompleted)
			staff.POST("/:id/refund", h.RefundBooking)
			staff.GET("/:id/refund-summary", h.RefundSummary)
		}

		// Customer self-service.
		customer := bookings.Group("", middleware.RequireCapability(middleware.CapBookOnline))
		{
			customer.POST("/online", h.CreateOnlineBooking)
			customer.POST("/:id/cancel", h.CancelOwnBooking)
		}

		// Shared reads.
		bookings.GET("/:id", h.GetBooking)
		bookings.GET("/:id/calendar", h.ExportCalendar)
		bookings.GET("/verify-payment", h.VerifyPayment)
	}
}

func registerStylistRoutes(r *gin.Engine, h *handlers.StylistHandler) {
	stylists := r.Group("/api/stylists")
	{
		stylists.POST("", middleware.JWTAuthMiddleware(), middleware.RequireCapability(middleware.CapManageStylists), h.Onboard)
		stylists.GET("/:id/timeslots", h.Timeslots)
		stylists.GET("/:id/timeslots/week", h.WeekTimeslots)
	}
}

// Webhooks carry their own gateway signature auth, never JWT.
func registerWebhookRoutes(r *gin.Engine, h *handlers.WebhookHandler) {
	webhooks := r.Group("/webhooks")
	{
		webhooks.POST("/bookings", h.HandleBookingEvents)
		webhooks.POST("/orders", h.HandleOrderEvents)
	}
}
