package cart

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/storefront/pkg/db/models"
)

// Repository persists cart lines keyed by (session_id, product_id).
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, sessionID string) ([]models.CartItem, error)
	// Increment adds quantity to the line, creating it when absent.
	Increment(ctx context.Context, sessionID string, productID int64, quantity int) error
	// Set writes the exact quantity, creating the line when absent.
	Set(ctx context.Context, sessionID string, productID int64, quantity int) error
	Delete(ctx context.Context, sessionID string, productID int64) error
	Clear(ctx context.Context, sessionID string) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository binds the cart repository to the provided DB handle.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) List(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	var rows []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("session_id = ?", sessionID).
		Order("created_at ASC, product_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Increment(ctx context.Context, sessionID string, productID int64, quantity int) error {
	return r.upsert(ctx, sessionID, productID, quantity, gorm.Expr("cart_items.quantity + excluded.quantity"))
}

func (r *repository) Set(ctx context.Context, sessionID string, productID int64, quantity int) error {
	return r.upsert(ctx, sessionID, productID, quantity, gorm.Expr("excluded.quantity"))
}

func (r *repository) upsert(ctx context.Context, sessionID string, productID int64, quantity int, onConflict clause.Expr) error {
	row := models.CartItem{SessionID: sessionID, ProductID: productID, Quantity: quantity}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   onConflict,
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(&row).Error
}

func (r *repository) Delete(ctx context.Context, sessionID string, productID int64) error {
	return r.db.WithContext(ctx).
		Where("session_id = ? AND product_id = ?", sessionID, productID).
		Delete(&models.CartItem{}).Error
}

func (r *repository) Clear(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.CartItem{}).Error
}
