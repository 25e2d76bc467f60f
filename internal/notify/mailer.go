// Package notify sends the order-confirmation email. Delivery is strictly
// best-effort: checkout has already succeeded by the time a mail is
// attempted, so nothing here may fail loudly.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/himanshuchauhan33/cracker-shop/internal/order"
)

// Sender is the mail transport port. The SMTP implementation lives in
// smtp.go; tests inject a fake.
type Sender interface {
	Send(to, subject, body string) error
}

// Mailer composes and sends order confirmations.
type Mailer struct {
	sender   Sender // nil when the transport is unconfigured
	shopName string
}

// NewMailer returns a Mailer. A nil sender disables sending; every
// confirmation attempt then reports false.
func NewMailer(sender Sender, shopName string) *Mailer {
	return &Mailer{sender: sender, shopName: shopName}
}

// SendOrderConfirmation attempts to mail the order confirmation exactly
// once. It returns false — never an error — when the recipient address is
// empty, the transport is unconfigured, or the send fails. Failures are
// logged and otherwise absorbed.
func (m *Mailer) SendOrderConfirmation(ctx context.Context, o *order.Order) bool {
	if m.sender == nil {
		slog.WarnContext(ctx, "mail transport unconfigured, skipping confirmation", "order_id", o.ID)
		return false
	}
	if o.Email == "" {
		return false
	}

	subject := fmt.Sprintf("Order Confirmation #%d - %s", o.ID, m.shopName)
	if err := m.sender.Send(o.Email, subject, m.body(o)); err != nil {
		slog.ErrorContext(ctx, "confirmation email failed", "order_id", o.ID, "error", err)
		return false
	}

	slog.InfoContext(ctx, "confirmation email sent", "order_id", o.ID)
	return true
}

func (m *Mailer) body(o *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", o.CustomerName)
	b.WriteString("Thank you for your order.\n")
	fmt.Fprintf(&b, "Order ID: %d\n", o.ID)
	fmt.Fprintf(&b, "Delivery: %s\n", o.DeliveryType)
	fmt.Fprintf(&b, "Total: %g\n\nItems:\n", o.Total)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "- %s x%d @ %g\n", it.Name, it.Quantity, it.UnitPrice)
	}
	fmt.Fprintf(&b, "\nWe will contact you soon.\n\nRegards,\n%s\n", m.shopName)
	return b.String()
}
