package httpx

import (
	"time"

	"github.com/himanshuchauhan33/cracker-shop/internal/catalog"
	"github.com/himanshuchauhan33/cracker-shop/internal/order"
)

type IndexResponse struct {
	Shop     string            `json:"shop"`
	Contact  string            `json:"contact"`
	Products []catalog.Product `json:"products"`
}

type LineItemDTO struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type CartResponse struct {
	Items []LineItemDTO `json:"items"`
	Total float64       `json:"total"`
}

type SuccessResponse struct {
	OrderID string `json:"order_id"`
}

type OrderDTO struct {
	ID           int64         `json:"id"`
	CustomerName string        `json:"customer_name"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	Address      string        `json:"address"`
	DeliveryType string        `json:"delivery_type"`
	Items        []LineItemDTO `json:"items"`
	Total        float64       `json:"total"`
	Paid         bool          `json:"paid"`
	CreatedAt    string        `json:"created_at"`
}

type AdminResponse struct {
	Denied bool       `json:"denied"`
	Orders []OrderDTO `json:"orders"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func mapItems(items []order.LineItem) []LineItemDTO {
	out := make([]LineItemDTO, len(items))
	for i, it := range items {
		out[i] = LineItemDTO{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal(),
		}
	}
	return out
}

func mapOrder(o order.Order) OrderDTO {
	return OrderDTO{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Email:        o.Email,
		Phone:        o.Phone,
		Address:      o.Address,
		DeliveryType: o.DeliveryType,
		Items:        mapItems(o.Items),
		Total:        o.Total,
		Paid:         o.Paid,
		CreatedAt:    o.CreatedAt.UTC().Format(time.RFC3339),
	}
}
