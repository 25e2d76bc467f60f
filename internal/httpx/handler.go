package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/himanshuchauhan33/cracker-shop/internal/admin"
	"github.com/himanshuchauhan33/cracker-shop/internal/cart"
	"github.com/himanshuchauhan33/cracker-shop/internal/catalog"
	"github.com/himanshuchauhan33/cracker-shop/internal/checkout"
)

// Handler implements the storefront HTTP surface. Rendering is someone
// else's job; handlers answer JSON for reads and redirects for mutations so
// any front end can sit on top.
type Handler struct {
	catalog  *catalog.Store
	carts    cart.Store
	checkout *checkout.Service
	admin    *admin.Service

	shopName string
	contact  string
}

// NewHandler wires the handler with its collaborators.
func NewHandler(cat *catalog.Store, carts cart.Store, co *checkout.Service, adm *admin.Service, shopName, contact string) *Handler {
	return &Handler{
		catalog:  cat,
		carts:    carts,
		checkout: co,
		admin:    adm,
		shopName: shopName,
		contact:  contact,
	}
}

// Index lists the catalog.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, IndexResponse{
		Shop:     h.shopName,
		Contact:  h.contact,
		Products: h.catalog.All(),
	})
}

// Health is the liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AddToCart increments the quantity for one product and bounces back to the
// listing. An unknown product id also bounces back; surfacing a message for
// it is the front end's concern.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	c, ok := h.loadCart(w, r)
	if !ok {
		return
	}

	if err := c.Add(h.catalog, id); err != nil {
		slog.WarnContext(r.Context(), "add-to-cart for unknown product", "product_id", id)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if !h.saveCart(w, r, c) {
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// ShowCart returns the priced cart contents.
func (h *Handler) ShowCart(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCart(w, r)
	if !ok {
		return
	}

	items, total := h.checkout.Review(c)
	writeJSON(w, http.StatusOK, CartResponse{Items: mapItems(items), Total: total})
}

// UpdateCart replaces the whole cart from qty-<id> form fields.
func (h *Handler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_form", err.Error())
		return
	}

	quantities := make(map[string]string)
	for field := range r.PostForm {
		if id, ok := strings.CutPrefix(field, "qty-"); ok {
			quantities[id] = r.PostForm.Get(field)
		}
	}

	c, ok := h.loadCart(w, r)
	if !ok {
		return
	}
	c.SetQuantities(quantities)

	if !h.saveCart(w, r, c) {
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// ReviewCheckout shows the line items and total about to be ordered. An
// empty cart bounces back to the listing without attempting anything.
func (h *Handler) ReviewCheckout(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCart(w, r)
	if !ok {
		return
	}
	if c.Empty() {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	items, total := h.checkout.Review(c)
	writeJSON(w, http.StatusOK, CartResponse{Items: mapItems(items), Total: total})
}

// SubmitCheckout runs the checkout flow and redirects to the outcome:
// the payment page, the confirmation view, or back to checkout on a
// recoverable failure.
func (h *Handler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_form", err.Error())
		return
	}

	sub := checkout.Submission{
		Name:         r.PostForm.Get("name"),
		Email:        r.PostForm.Get("email"),
		Phone:        r.PostForm.Get("phone"),
		Address:      r.PostForm.Get("address"),
		DeliveryType: r.PostForm.Get("delivery_type"),
		PayMethod:    r.PostForm.Get("pay_method"),
	}

	c, ok := h.loadCart(w, r)
	if !ok {
		return
	}

	res, err := h.checkout.Submit(r.Context(), c, sub)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		// Validation or persistence failure: the cart is intact, the visitor
		// returns to the review step.
		slog.WarnContext(r.Context(), "checkout rejected", "error", err)
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	// The order is durable; drop the session cart no matter what follows.
	if err := h.carts.Delete(r.Context(), SessionID(r.Context())); err != nil {
		slog.ErrorContext(r.Context(), "failed to drop session cart after order",
			"order_id", res.OrderID, "error", err)
	}

	switch {
	case res.PaymentErr != nil:
		// The order exists and stays unpaid; keep its id in the redirect so
		// the visitor (and support) can still reference it.
		http.Redirect(w, r, fmt.Sprintf("/checkout?error=payment&order_id=%d", res.OrderID), http.StatusSeeOther)
	case res.PaymentURL != "":
		http.Redirect(w, r, res.PaymentURL, http.StatusSeeOther)
	default:
		http.Redirect(w, r, fmt.Sprintf("/success?order_id=%d", res.OrderID), http.StatusSeeOther)
	}
}

// Success confirms an order by id. The id comes back from the redirect (or
// the payment provider's success callback).
func (h *Handler) Success(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SuccessResponse{OrderID: r.URL.Query().Get("order_id")})
}

// Admin lists all orders behind the shared secret (?p=).
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	if !h.admin.Authorize(r.URL.Query().Get("p")) {
		writeJSON(w, http.StatusUnauthorized, AdminResponse{Denied: true})
		return
	}

	orders := h.admin.ListOrders(r.Context())
	out := make([]OrderDTO, len(orders))
	for i, o := range orders {
		out[i] = mapOrder(o)
	}
	writeJSON(w, http.StatusOK, AdminResponse{Denied: false, Orders: out})
}

// loadCart fetches the session cart, answering a 500 itself on store
// failure. The bool reports whether the caller may proceed.
func (h *Handler) loadCart(w http.ResponseWriter, r *http.Request) (cart.Cart, bool) {
	c, err := h.carts.Get(r.Context(), SessionID(r.Context()))
	if err != nil {
		slog.ErrorContext(r.Context(), "session cart load failed", "error", err)
		writeError(w, http.StatusInternalServerError, "session_store_error", "")
		return nil, false
	}
	return c, true
}

func (h *Handler) saveCart(w http.ResponseWriter, r *http.Request, c cart.Cart) bool {
	if err := h.carts.Put(r.Context(), SessionID(r.Context()), c); err != nil {
		slog.ErrorContext(r.Context(), "session cart save failed", "error", err)
		writeError(w, http.StatusInternalServerError, "session_store_error", "")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: msg})
}
