// Package checkout renders the cart summary and accepts the shipping form.
// No order is transmitted or stored; placing an order only produces a
// confirmation for display.
package checkout

import (
	"strings"

	"github.com/google/uuid"

	"pixibai/internal/domain"
	"pixibai/internal/money"
)

// Summary is the read-only order recap shown next to the shipping form.
type Summary struct {
	Lines []Line `json:"lines"`
	Total string `json:"total"`
}

type Line struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
}

// ShippingDetails is the checkout form. All fields are required; there is no
// deeper validation since nothing is actually shipped.
type ShippingDetails struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Phone    string `json:"phone"`
}

type Confirmation struct {
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// Summarize builds the display summary for the current cart contents.
func Summarize(items []domain.CartItem) Summary {
	lines := make([]Line, 0, len(items))
	var total int64
	for _, item := range items {
		lines = append(lines, Line{
			Name:        item.Product.Name,
			Quantity:    item.Quantity,
			Description: item.Description,
			Price:       money.FormatPEN(item.PriceCents),
		})
		total += item.PriceCents
	}
	return Summary{Lines: lines, Total: money.FormatPEN(total)}
}

// PlaceOrder validates the form and returns a confirmation. This is a stub:
// the confirmation is the only artifact, nothing persists.
func PlaceOrder(items []domain.CartItem, details ShippingDetails) (Confirmation, error) {
	if len(items) == 0 {
		return Confirmation{}, domain.ErrEmptyCart
	}
	for _, field := range []string{details.FullName, details.Address, details.City, details.Phone} {
		if strings.TrimSpace(field) == "" {
			return Confirmation{}, domain.ErrMissingShippingField
		}
	}
	return Confirmation{
		OrderID: uuid.NewString(),
		Message: "¡Pedido realizado! Gracias por tu compra. Tus recuerdos están siendo preparados con mucho cariño y serán enviados pronto.",
	}, nil
}
