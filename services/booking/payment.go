package booking

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"

	"medibook/config"
	"medibook/models"
)

// PaymentGateway initializes a payment for a confirmed appointment and
// returns the URL the browser is redirected to. The flow treats the gateway
// as opaque: it only ever consumes success or failure plus the
// authorization URL.
type PaymentGateway interface {
	InitializePayment(ctx context.Context, req models.PaymentInitRequest) (*models.PaymentInit, error)
}

// StripeCheckoutGateway implements PaymentGateway with Stripe Checkout: a
// hosted checkout session whose URL serves as the authorization URL.
type StripeCheckoutGateway struct {
	logger *zap.Logger
}

func NewStripeCheckoutGateway(logger *zap.Logger) *StripeCheckoutGateway {
	return &StripeCheckoutGateway{logger: logger}
}

func (g *StripeCheckoutGateway) InitializePayment(ctx context.Context, req models.PaymentInitRequest) (*models.PaymentInit, error) {
	currency := req.Currency
	if currency == "" {
		currency = config.AppConfig.PaymentCurrency
	}
	description := req.Description
	if description == "" {
		description = "Appointment booking"
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail:     stripe.String(req.Email),
		ClientReferenceID: stripe.String(req.AppointmentID),
		SuccessURL:        stripe.String(config.AppConfig.PaymentSuccessURL),
		CancelURL:         stripe.String(config.AppConfig.PaymentCancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(int64(math.Round(req.Amount * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
				},
			},
		},
	}
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		g.logger.Error("failed to create checkout session",
			zap.String("appointmentID", req.AppointmentID), zap.Error(err))
		return nil, fmt.Errorf("failed to initialize payment: %w", err)
	}

	g.logger.Info("checkout session created",
		zap.String("appointmentID", req.AppointmentID), zap.String("sessionID", s.ID))
	return &models.PaymentInit{AuthorizationURL: s.URL, Reference: s.ID}, nil
}
