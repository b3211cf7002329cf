package cart

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/internal/storefront"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/angelmondragon/storefront/pkg/types"
)

// ToDTO maps persisted lines to the cart payload, totalling at current prices.
func ToDTO(rows []models.CartItem) storefront.Cart {
	items := make([]storefront.CartItem, 0, len(rows))
	total := decimal.Zero
	for _, row := range rows {
		items = append(items, storefront.CartItem{
			ProductID: types.ProductIDFromInt64(row.ProductID),
			Quantity:  row.Quantity,
			Product:   products.ToDTO(row.Product),
		})
		total = total.Add(row.Product.Price.Mul(decimal.NewFromInt(int64(row.Quantity))))
	}
	money := types.NewMoney(total)
	return storefront.Cart{Items: items, Total: &money}
}
