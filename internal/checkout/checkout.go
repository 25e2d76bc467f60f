// Package checkout turns a session-held cart into a durable order and a
// redirect outcome.
//
// The submission sequence is strictly ordered: validate, persist, clear the
// cart, notify, and only then hand off to the payment provider. Persistence
// comes before the payment session so that an order row always exists once
// money may change hands — a provider outage leaves an unpaid order that the
// operator can reconcile, instead of a charge with no record.
package checkout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/himanshuchauhan33/cracker-shop/internal/cart"
	"github.com/himanshuchauhan33/cracker-shop/internal/catalog"
	"github.com/himanshuchauhan33/cracker-shop/internal/notify"
	"github.com/himanshuchauhan33/cracker-shop/internal/order"
	"github.com/himanshuchauhan33/cracker-shop/internal/payment"
)

// PayMethodStripe is the form value that requests the hosted payment
// redirect. Any other value completes the order as pay-on-delivery.
const PayMethodStripe = "stripe"

// Submission carries the checkout form fields.
type Submission struct {
	Name         string
	Email        string
	Phone        string
	Address      string
	DeliveryType string
	PayMethod    string
}

// Result is the outcome of a successful submission. The order always exists
// by the time a Result is returned.
type Result struct {
	OrderID int64

	// PaymentURL is the hosted payment page to redirect to. Empty when no
	// external payment was requested or configured.
	PaymentURL string

	// PaymentErr is set when the provider session could not be created after
	// the order was already persisted. The order is not rolled back; it stays
	// unpaid for reconciliation.
	PaymentErr error
}

// Service orchestrates the checkout flow.
type Service struct {
	catalog  *catalog.Store
	orders   order.Repository
	mailer   *notify.Mailer
	payments payment.Provider // nil disables the payment handoff
}

// NewService wires the checkout flow. payments may be nil when no provider
// is configured; checkout then always completes as a direct success.
func NewService(cat *catalog.Store, orders order.Repository, mailer *notify.Mailer, payments payment.Provider) *Service {
	return &Service{catalog: cat, orders: orders, mailer: mailer, payments: payments}
}

// Review derives the priced line items and total for the current cart
// without mutating anything.
func (s *Service) Review(c cart.Cart) ([]order.LineItem, float64) {
	return c.LineItems(s.catalog)
}

// Submit runs the checkout flow for the given cart and form data.
//
// On error nothing durable exists and the cart is untouched. On success the
// cart value has been cleared — the caller must persist that to the session
// store regardless of the Result's payment outcome, because order durability
// takes priority over cart retention.
func (s *Service) Submit(ctx context.Context, c cart.Cart, sub Submission) (*Result, error) {
	if c.Empty() {
		return nil, ErrEmptyCart
	}

	if err := validate(sub); err != nil {
		return nil, err
	}

	items, total := c.LineItems(s.catalog)
	if len(items) == 0 {
		// Every cart entry pointed at a product that has since vanished from
		// the catalog. Same exit as an empty cart: no order is created.
		return nil, ErrEmptyCart
	}

	o := &order.Order{
		CustomerName: sub.Name,
		Email:        sub.Email,
		Phone:        sub.Phone,
		Address:      sub.Address,
		DeliveryType: sub.DeliveryType,
		Items:        items,
		Total:        total,
		Paid:         false,
	}

	id, err := s.orders.Create(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("checkout: persist order: %w", err)
	}
	o.ID = id

	// The order is durable. From here on the cart stays cleared and the
	// order stays put no matter what notification or payment do.
	c.Clear()

	slog.InfoContext(ctx, "order persisted", "order_id", id, "total", total, "items", len(items))

	s.mailer.SendOrderConfirmation(ctx, o)

	result := &Result{OrderID: id}

	if sub.PayMethod == PayMethodStripe && s.payments != nil {
		url, err := s.payments.CreateSession(ctx, id, items)
		if err != nil {
			slog.ErrorContext(ctx, "payment session failed, order stays unpaid",
				"order_id", id, "error", err)
			result.PaymentErr = err
			return result, nil
		}
		result.PaymentURL = url
	}

	return result, nil
}

func validate(sub Submission) error {
	var missing []string
	if sub.Name == "" {
		missing = append(missing, "name")
	}
	if sub.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
