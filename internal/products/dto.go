package products

import (
	"github.com/angelmondragon/storefront/internal/storefront"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/angelmondragon/storefront/pkg/types"
)

// ToDTO maps a catalog row to its wire shape.
func ToDTO(p models.Product) storefront.Product {
	return storefront.Product{
		ID:          types.ProductIDFromInt64(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Price:       types.NewMoney(p.Price),
		Image:       p.Image,
		Category:    p.Category,
	}
}
