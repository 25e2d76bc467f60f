package checkout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCart is returned when checkout is attempted with no resolvable
// items. No order is created and the cart is untouched.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// ValidationError reports the required submission fields that were missing.
// The cart is left intact so the visitor can fix the form and resubmit.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout: missing required fields: %s", strings.Join(e.Missing, ", "))
}
