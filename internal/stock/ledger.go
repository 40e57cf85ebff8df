package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hovo33651/shoppingcart-backend/pkg/db/models"
	pkgerrors "github.com/hovo33651/shoppingcart-backend/pkg/errors"
)

// Ledger adjusts the stock counter on products. All writes go through
// conditional UPDATEs so concurrent reservations can never drive the
// counter negative.
type Ledger struct{}

// NewLedger exposes the default stock ledger implementation.
func NewLedger() Ledger {
	return Ledger{}
}

// ShortfallDetails describes a denied reservation.
type ShortfallDetails struct {
	ProductID string `json:"product_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// Reserve decrements the product's stock counter by qty inside the caller's
// transaction. The decrement only applies when enough stock remains; a denied
// reservation leaves the counter untouched.
func (Ledger) Reserve(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "reservation quantity must be positive")
	}
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for stock reservation")
	}

	res := tx.WithContext(ctx).Exec(`
		UPDATE products
		SET count_in_stock = count_in_stock - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND count_in_stock >= ?
	`, qty, productID, qty)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "reserve stock")
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Zero rows means the product is missing or under-stocked; a follow-up
	// read inside the same transaction tells the two apart.
	var product models.Product
	err := tx.WithContext(ctx).Select("id", "count_in_stock").First(&product, "id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", productID))
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product stock")
	}

	return pkgerrors.New(pkgerrors.CodeInsufficientStock, "not enough stock to reserve").
		WithDetails(ShortfallDetails{
			ProductID: productID.String(),
			Requested: qty,
			Available: product.CountInStock,
		})
}

// Release returns qty units to the product's stock counter inside the
// caller's transaction.
func (Ledger) Release(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "release quantity must be positive")
	}
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for stock release")
	}

	res := tx.WithContext(ctx).Exec(`
		UPDATE products
		SET count_in_stock = count_in_stock + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, qty, productID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "release stock")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", productID))
	}
	return nil
}
