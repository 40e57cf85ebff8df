package stock

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hovo33651/shoppingcart-backend/pkg/db/models"
	pkgerrors "github.com/hovo33651/shoppingcart-backend/pkg/errors"
)

func TestReserveDecrementsStock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	ledger := NewLedger()

	product := seedProduct(t, db, 5)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.Reserve(ctx, tx, product.ID, 3)
	})
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	if got := loadStock(t, db, product.ID); got != 2 {
		t.Fatalf("expected 2 remaining, got %d", got)
	}
}

func TestReserveDeniesShortfallWithoutDraining(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	ledger := NewLedger()

	product := seedProduct(t, db, 5)

	// Five attempts of two units against five in stock: exactly two may win.
	granted := 0
	for i := 0; i < 5; i++ {
		err := db.Transaction(func(tx *gorm.DB) error {
			return ledger.Reserve(ctx, tx, product.ID, 2)
		})
		if err == nil {
			granted++
			continue
		}
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
			t.Fatalf("unexpected error: %v", err)
		}
		details, ok := typed.Details().(ShortfallDetails)
		if !ok {
			t.Fatalf("expected shortfall details, got %T", typed.Details())
		}
		if details.Requested != 2 || details.Available != 1 {
			t.Fatalf("unexpected shortfall details: %+v", details)
		}
	}

	if granted != 2 {
		t.Fatalf("expected exactly 2 grants, got %d", granted)
	}
	if got := loadStock(t, db, product.ID); got != 1 {
		t.Fatalf("expected 1 remaining, got %d", got)
	}
}

func TestReserveUnknownProduct(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ledger := NewLedger()

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.Reserve(context.Background(), tx, uuid.New(), 1)
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReserveInvalidQty(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ledger := NewLedger()

	err := ledger.Reserve(context.Background(), db, uuid.New(), 0)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReleaseRestoresStock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	ledger := NewLedger()

	product := seedProduct(t, db, 5)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := ledger.Reserve(ctx, tx, product.ID, 4); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return ledger.Release(ctx, tx, product.ID, 4)
	})
	if err != nil {
		t.Fatalf("release: %v", err)
	}

	if got := loadStock(t, db, product.ID); got != 5 {
		t.Fatalf("expected 5 after release, got %d", got)
	}
}

func TestReleaseUnknownProduct(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ledger := NewLedger()

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.Release(context.Background(), tx, uuid.New(), 1)
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func seedProduct(t *testing.T, db *gorm.DB, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:           uuid.New(),
		Name:         "test product",
		CountInStock: stock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func loadStock(t *testing.T, db *gorm.DB, productID uuid.UUID) int {
	t.Helper()
	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	return product.CountInStock
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:stock_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate products: %v", err)
	}
	return db
}
