package payment

import (
	"context"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
)

// LineItem describes one purchasable line handed to the processor:
// display name, unit price in minor currency units, and quantity.
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

// Session is the opaque handle the client uses to complete payment
// out-of-band on the processor's hosted page.
type Session struct {
	ID  string
	URL string
}

// SessionCreator creates a hosted payment session for a set of line
// items. Implemented by StripeCheckout; faked in tests.
type SessionCreator interface {
	CreateSession(ctx context.Context, lines []LineItem) (*Session, error)
}

// StripeCheckout creates Stripe Checkout Sessions in payment mode.
type StripeCheckout struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

func NewStripeCheckout(secretKey, currency, successURL, cancelURL string) *StripeCheckout {
	stripe.Key = secretKey
	return &StripeCheckout{Currency: currency, SuccessURL: successURL, CancelURL: cancelURL}
}

func (s *StripeCheckout) CreateSession(ctx context.Context, lines []LineItem) (*Session, error) {
	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	for _, l := range lines {
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(s.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(l.Name),
				},
				UnitAmount: stripe.Int64(l.UnitAmount),
			},
			Quantity: stripe.Int64(l.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          items,
		SuccessURL:         stripe.String(s.SuccessURL),
		CancelURL:          stripe.String(s.CancelURL),
	}

	out, err := session.New(params)
	if err != nil {
		return nil, err
	}
	return &Session{ID: out.ID, URL: out.URL}, nil
}

var _ SessionCreator = (*StripeCheckout)(nil)
