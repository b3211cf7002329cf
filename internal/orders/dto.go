// Package orders stores the immutable records produced by checkout.
package orders

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/internal/storefront"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/angelmondragon/storefront/pkg/types"
)

// LinesFromCart snapshots cart lines with their current name and price.
func LinesFromCart(rows []models.CartItem) ([]models.OrderLine, decimal.Decimal) {
	lines := make([]models.OrderLine, 0, len(rows))
	total := decimal.Zero
	for _, row := range rows {
		lines = append(lines, models.OrderLine{
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
			Name:      row.Product.Name,
			Price:     row.Product.Price,
		})
		total = total.Add(row.Product.Price.Mul(decimal.NewFromInt(int64(row.Quantity))))
	}
	return lines, total
}

// ToDTO maps a persisted order to its wire shape. Line products carry only
// the fields snapshotted at checkout.
func ToDTO(o models.Order) storefront.Order {
	items := make([]storefront.CartItem, 0, len(o.Items))
	for _, line := range o.Items {
		id := types.ProductIDFromInt64(line.ProductID)
		items = append(items, storefront.CartItem{
			ProductID: id,
			Quantity:  line.Quantity,
			Product: storefront.Product{
				ID:    id,
				Name:  line.Name,
				Price: types.NewMoney(line.Price),
			},
		})
	}
	return storefront.Order{
		ID:            o.ID,
		EstimatedTime: o.EstimatedTime,
		Items:         items,
		CustomerInfo: storefront.CustomerInfo{
			Name:    o.CustomerName,
			Email:   o.CustomerEmail,
			Phone:   o.CustomerPhone,
			Address: o.CustomerAddress,
		},
		Total: types.NewMoney(o.Total),
	}
}
