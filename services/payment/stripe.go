package payment

import (
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"

	"locart/config"
)

// CheckoutParams describes one hosted checkout session for a booking.
type CheckoutParams struct {
	BookingID     string
	CustomerEmail string
	Description   string
	Amount        float64 // major units in the configured currency
}

// Gateway is the payment processor surface the booking engine consumes.
// Amounts cross this boundary in major units; conversion to the processor's
// minor units happens inside the implementation.
type Gateway interface {
	CreateCheckoutSession(p CheckoutParams) (sessionID, checkoutURL string, err error)
	RetrieveSession(sessionID string) (*stripe.CheckoutSession, error)
	RetrieveIntent(intentID string) (*stripe.PaymentIntent, error)
	CreateRefund(intentID string, amount float64) (*stripe.Refund, error)
}

// StripeGateway implements Gateway against the Stripe API. The package-level
// stripe.Key is set once at startup.
type StripeGateway struct{}

func NewStripeGateway() *StripeGateway {
	return &StripeGateway{}
}

// minorUnits converts a major-unit amount to the processor's integer minor
// units (cents).
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateCheckoutSession opens a hosted checkout page for the booking's
// payable amount. The booking id rides along as session metadata so webhook
// events can be correlated back.
func (g *StripeGateway) CreateCheckoutSession(p CheckoutParams) (string, string, error) {
	cfg := config.AppConfig

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(cfg.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.Description),
					},
					UnitAmount: stripe.Int64(minorUnits(p.Amount)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(cfg.FrontendURL + "/booking/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(cfg.FrontendURL + "/booking/cancelled"),
	}
	if p.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(p.CustomerEmail)
	}
	// The id rides on both the session and the payment intent so webhook
	// events can be correlated from either object.
	params.AddMetadata("bookingId", p.BookingID)
	params.PaymentIntentData = &stripe.CheckoutSessionPaymentIntentDataParams{
		Metadata: map[string]string{"bookingId": p.BookingID},
	}

	s, err := session.New(params)
	if err != nil {
		return "", "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return s.ID, s.URL, nil
}

func (g *StripeGateway) RetrieveSession(sessionID string) (*stripe.CheckoutSession, error) {
	s, err := session.Get(sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session %s: %w", sessionID, err)
	}
	return s, nil
}

func (g *StripeGateway) RetrieveIntent(intentID string) (*stripe.PaymentIntent, error) {
	pi, err := paymentintent.Get(intentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payment intent %s: %w", intentID, err)
	}
	return pi, nil
}

// CreateRefund issues a partial or full refund against the intent. A zero
// amount refunds the full remaining charge.
func (g *StripeGateway) CreateRefund(intentID string, amount float64) (*stripe.Refund, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(intentID),
	}
	if amount > 0 {
		params.Amount = stripe.Int64(minorUnits(amount))
	}
	r, err := refund.New(params)
	if err != nil {
		return nil, fmt.Errorf("refund failed for intent %s: %w", intentID, err)
	}
	return r, nil
}
