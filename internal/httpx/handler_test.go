package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himanshuchauhan33/cracker-shop/internal/admin"
	"github.com/himanshuchauhan33/cracker-shop/internal/cart"
	"github.com/himanshuchauhan33/cracker-shop/internal/catalog"
	"github.com/himanshuchauhan33/cracker-shop/internal/checkout"
	"github.com/himanshuchauhan33/cracker-shop/internal/notify"
	"github.com/himanshuchauhan33/cracker-shop/internal/order"
)

const testSession = "sess-test"

type mockRepository struct {
	created   []*order.Order
	nextID    int64
	createErr error
	listErr   error
}

func (m *mockRepository) Create(_ context.Context, o *order.Order) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.nextID++
	copied := *o
	copied.ID = m.nextID
	m.created = append(m.created, &copied)
	return m.nextID, nil
}

func (m *mockRepository) Get(_ context.Context, id int64) (*order.Order, error) {
	for _, o := range m.created {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockRepository) ListAll(context.Context) ([]order.Order, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]order.Order, 0, len(m.created))
	for i := len(m.created) - 1; i >= 0; i-- {
		out = append(out, *m.created[i])
	}
	return out, nil
}

func (m *mockRepository) MarkPaid(context.Context, int64) error { return nil }

type mockProvider struct {
	url string
	err error
}

func (m *mockProvider) CreateSession(context.Context, int64, []order.LineItem) (string, error) {
	return m.url, m.err
}

type fixture struct {
	router http.Handler
	carts  cart.Store
	repo   *mockRepository
}

func newFixture(t *testing.T, provider *mockProvider) *fixture {
	t.Helper()

	cat := catalog.New([]catalog.Product{
		{ID: 1, Name: "Sparkler", Price: 10},
		{ID: 2, Name: "Flower Pot", Price: 25},
	})
	repo := &mockRepository{}
	carts := cart.NewMemoryStore()
	mailer := notify.NewMailer(nil, "Cracker Shop")

	var svc *checkout.Service
	if provider != nil {
		svc = checkout.NewService(cat, repo, mailer, provider)
	} else {
		svc = checkout.NewService(cat, repo, mailer, nil)
	}

	adm := admin.NewService("s3cret", repo)
	h := NewHandler(cat, carts, svc, adm, "Cracker Shop", "911234567890")

	return &fixture{
		router: NewRouter(h, "shop_session"),
		carts:  carts,
		repo:   repo,
	}
}

func (f *fixture) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.AddCookie(&http.Cookie{Name: "shop_session", Value: testSession})

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) storedCart(t *testing.T) cart.Cart {
	t.Helper()
	c, err := f.carts.Get(context.Background(), testSession)
	require.NoError(t, err)
	return c
}

func checkoutForm() url.Values {
	return url.Values{
		"name":          {"A"},
		"email":         {"a@example.com"},
		"phone":         {"123"},
		"address":       {"Main St 1"},
		"delivery_type": {"delivery"},
	}
}

func TestIndex(t *testing.T) {
	f := newFixture(t, nil)
	rec := f.do(http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp IndexResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Cracker Shop", resp.Shop)
	assert.Len(t, resp.Products, 2)
}

func TestAddToCart(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodGet, "/add-to-cart/1", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	f.do(http.MethodGet, "/add-to-cart/1", nil)
	assert.Equal(t, cart.Cart{"1": 2}, f.storedCart(t))
}

func TestAddToCart_UnknownProductRedirectsWithoutChange(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodGet, "/add-to-cart/99", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.True(t, f.storedCart(t).Empty())
}

func TestUpdateCart_DropsZeroAndGarbage(t *testing.T) {
	f := newFixture(t, nil)
	f.do(http.MethodGet, "/add-to-cart/1", nil)

	rec := f.do(http.MethodPost, "/update-cart", url.Values{
		"qty-1": {"0"},
		"qty-2": {"3"},
		"other": {"ignored"},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, cart.Cart{"2": 3}, f.storedCart(t))
}

func TestShowCart(t *testing.T) {
	f := newFixture(t, nil)
	f.do(http.MethodGet, "/add-to-cart/1", nil)
	f.do(http.MethodGet, "/add-to-cart/2", nil)

	rec := f.do(http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 35.0, resp.Total)
}

func TestReviewCheckout_EmptyCartRedirects(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodGet, "/checkout", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestSubmitCheckout_DirectSuccess(t *testing.T) {
	f := newFixture(t, nil)
	f.do(http.MethodGet, "/add-to-cart/1", nil)
	f.do(http.MethodGet, "/add-to-cart/1", nil)
	f.do(http.MethodGet, "/add-to-cart/2", nil)

	rec := f.do(http.MethodPost, "/checkout", checkoutForm())

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/success?order_id=1", rec.Header().Get("Location"))

	require.Len(t, f.repo.created, 1)
	assert.Equal(t, 45.0, f.repo.created[0].Total)
	assert.False(t, f.repo.created[0].Paid)
	assert.True(t, f.storedCart(t).Empty())
}

func TestSubmitCheckout_EmptyCart(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodPost, "/checkout", checkoutForm())
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Empty(t, f.repo.created)
}

func TestSubmitCheckout_ValidationFailureKeepsCart(t *testing.T) {
	f := newFixture(t, nil)
	f.do(http.MethodGet, "/add-to-cart/1", nil)

	form := checkoutForm()
	form.Del("phone")
	rec := f.do(http.MethodPost, "/checkout", form)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/checkout", rec.Header().Get("Location"))
	assert.Empty(t, f.repo.created)
	assert.Equal(t, cart.Cart{"1": 1}, f.storedCart(t))
}

func TestSubmitCheckout_PersistFailureKeepsCart(t *testing.T) {
	f := newFixture(t, nil)
	f.do(http.MethodGet, "/add-to-cart/1", nil)
	f.repo.createErr = errors.New("db locked")

	rec := f.do(http.MethodPost, "/checkout", checkoutForm())

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/checkout", rec.Header().Get("Location"))
	assert.Equal(t, cart.Cart{"1": 1}, f.storedCart(t))
}

func TestSubmitCheckout_PaymentRedirect(t *testing.T) {
	f := newFixture(t, &mockProvider{url: "https://pay.example/session/abc"})
	f.do(http.MethodGet, "/add-to-cart/1", nil)

	form := checkoutForm()
	form.Set("pay_method", "stripe")
	rec := f.do(http.MethodPost, "/checkout", form)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "https://pay.example/session/abc", rec.Header().Get("Location"))
	assert.True(t, f.storedCart(t).Empty())
}

func TestSubmitCheckout_PaymentFailureReferencesOrder(t *testing.T) {
	f := newFixture(t, &mockProvider{err: errors.New("provider outage")})
	f.do(http.MethodGet, "/add-to-cart/1", nil)

	form := checkoutForm()
	form.Set("pay_method", "stripe")
	rec := f.do(http.MethodPost, "/checkout", form)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/checkout?error=payment&order_id=1", rec.Header().Get("Location"))

	// Order exists unpaid; the cart is not restored.
	require.Len(t, f.repo.created, 1)
	assert.False(t, f.repo.created[0].Paid)
	assert.True(t, f.storedCart(t).Empty())
}

func TestSuccess(t *testing.T) {
	f := newFixture(t, nil)
	rec := f.do(http.MethodGet, "/success?order_id=7", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "7", resp.OrderID)
}

func TestAdmin_WrongSecretLeaksNothing(t *testing.T) {
	f := newFixture(t, nil)
	f.do(http.MethodGet, "/add-to-cart/1", nil)
	f.do(http.MethodPost, "/checkout", checkoutForm())

	rec := f.do(http.MethodGet, "/admin?p=wrong", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp AdminResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Denied)
	assert.Empty(t, resp.Orders)
}

func TestAdmin_ListsOrdersNewestFirst(t *testing.T) {
	f := newFixture(t, nil)
	f.do(http.MethodGet, "/add-to-cart/1", nil)
	f.do(http.MethodPost, "/checkout", checkoutForm())
	f.do(http.MethodGet, "/add-to-cart/2", nil)
	f.do(http.MethodPost, "/checkout", checkoutForm())

	rec := f.do(http.MethodGet, "/admin?p=s3cret", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AdminResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Denied)
	require.Len(t, resp.Orders, 2)
	assert.Equal(t, int64(2), resp.Orders[0].ID)
	assert.Equal(t, int64(1), resp.Orders[1].ID)
}

func TestAdmin_StorageFailureDegradesToEmptyListing(t *testing.T) {
	f := newFixture(t, nil)
	f.repo.listErr = errors.New("db gone")

	rec := f.do(http.MethodGet, "/admin?p=s3cret", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AdminResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Denied)
	assert.Empty(t, resp.Orders)
}
