// Package payment creates hosted payment sessions. The visitor is redirected
// to the provider's page to enter card details; the shop never sees them.
package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/himanshuchauhan33/cracker-shop/internal/order"
)

// Provider is the hosted-payment port. CreateSession returns the URL the
// visitor must be redirected to. A failure after the order is persisted must
// never be treated as a reason to roll the order back — the caller reports
// the error and leaves the order unpaid for later reconciliation.
type Provider interface {
	CreateSession(ctx context.Context, orderID int64, items []order.LineItem) (string, error)
}

// StripeProvider implements Provider on Stripe Checkout.
type StripeProvider struct {
	api      *client.API
	currency string
	baseURL  string
}

var _ Provider = (*StripeProvider)(nil)

// NewStripeProvider returns a Provider backed by Stripe Checkout in
// single-payment mode. baseURL is the externally reachable origin of this
// shop, used to build the success and cancel callbacks.
func NewStripeProvider(secretKey, currency, baseURL string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api, currency: currency, baseURL: baseURL}
}

// CreateSession requests a hosted checkout session with one line per item.
// Unit amounts are sent in minor currency units (price x100).
func (p *StripeProvider) CreateSession(ctx context.Context, orderID int64, items []order.LineItem) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, it := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(p.currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
				UnitAmount: stripe.Int64(int64(math.Round(it.UnitPrice * 100))),
			},
			Quantity: stripe.Int64(int64(it.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(fmt.Sprintf("%s/success?order_id=%d", p.baseURL, orderID)),
		CancelURL:          stripe.String(p.baseURL + "/checkout"),
	}

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("payment: create session for order %d: %w", orderID, err)
	}
	return sess.URL, nil
}
