package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hovo33651/shoppingcart-backend/pkg/enums"
)

// Product represents a catalog listing. CountInStock is the single source of
// truth for availability and is only ever adjusted through the stock ledger's
// conditional updates; the schema backs that up with a CHECK (count_in_stock >= 0).
type Product struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string            `gorm:"column:name;not null"`
	Description  string            `gorm:"column:description;not null;default:''"`
	Type         enums.ProductType `gorm:"column:type;type:text;not null"`
	Price        decimal.Decimal   `gorm:"column:price;type:numeric(10,2);not null"`
	CountInStock int               `gorm:"column:count_in_stock;not null;default:0"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
