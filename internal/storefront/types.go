package storefront

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/pkg/types"
	"github.com/angelmondragon/storefront/pkg/validate"
)

// Product is a catalog entry as served by the backend.
type Product struct {
	ID          types.ProductID `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       types.Money     `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
}

// CartItem is one line of a cart snapshot. Product is denormalized at fetch time.
type CartItem struct {
	ProductID types.ProductID `json:"productId"`
	Quantity  int             `json:"quantity"`
	Product   Product         `json:"product"`
}

// LineTotal is price × quantity for the line.
func (i CartItem) LineTotal() types.Money {
	return types.NewMoney(i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity))))
}

// Cart is the backend's authoritative cart payload.
type Cart struct {
	Items []CartItem   `json:"items"`
	Total *types.Money `json:"total,omitempty"`
}

// DisplayTotal returns the server total when present, otherwise the sum of line totals.
func (c Cart) DisplayTotal() types.Money {
	if c.Total != nil {
		return *c.Total
	}
	sum := decimal.Zero
	for _, item := range c.Items {
		sum = sum.Add(item.LineTotal().Decimal)
	}
	return types.NewMoney(sum)
}

// ItemCount sums the quantity of every line.
func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Find returns the line for productID, if present.
func (c Cart) Find(productID types.ProductID) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

// CustomerInfo holds the contact and delivery fields collected at checkout.
type CustomerInfo struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// Normalized trims surrounding whitespace from every field.
func (c CustomerInfo) Normalized() CustomerInfo {
	return CustomerInfo{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
	}
}

// Validate checks the normalized form before it is submitted.
func (c CustomerInfo) Validate() error {
	normalized := c.Normalized()
	return validate.Struct(&normalized)
}

// Order is the immutable record returned by checkout.
type Order struct {
	ID            string       `json:"id"`
	EstimatedTime string       `json:"estimatedTime"`
	Items         []CartItem   `json:"items"`
	CustomerInfo  CustomerInfo `json:"customerInfo"`
	Total         types.Money  `json:"total"`
}
