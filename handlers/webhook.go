package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"

	"locart/config"
	"locart/services/reconcile"
	"locart/utils"
)

// maxWebhookBody caps the webhook payload read.
const maxWebhookBody = 65536

// WebhookHandler terminates the two Stripe webhook channels. Each channel
// verifies its own signing secret; a valid event that fails processing for a
// transient reason returns 500 so the gateway redelivers, while unknown or
// unusable events are acknowledged with 200.
type WebhookHandler struct {
	listener *reconcile.Listener
}

func NewWebhookHandler(listener *reconcile.Listener) *WebhookHandler {
	return &WebhookHandler{listener: listener}
}

// HandleBookingEvents handles POST /webhooks/bookings.
func (h *WebhookHandler) HandleBookingEvents(c *gin.Context) {
	h.handle(c, config.AppConfig.StripeBookingWebhookSecret, h.listener.HandleBookingEvent)
}

// HandleOrderEvents handles POST /webhooks/orders.
func (h *WebhookHandler) HandleOrderEvents(c *gin.Context) {
	h.handle(c, config.AppConfig.StripeOrderWebhookSecret, h.listener.HandleOrderEvent)
}

func (h *WebhookHandler) handle(c *gin.Context, secret string, process func(stripe.Event) error) {
	logger := utils.GetLogger()

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to read payload", "")
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), secret)
	if err != nil {
		logger.Warn("webhook signature verification failed",
			zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "invalid signature", "")
		return
	}

	if err := process(event); err != nil {
		logger.Error("webhook processing failed",
			zap.String("path", c.FullPath()),
			zap.String("eventID", event.ID),
			zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "event processing failed", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
