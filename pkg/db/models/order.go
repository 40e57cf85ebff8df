package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hovo33651/shoppingcart-backend/pkg/enums"
)

// Order records a reservation of product stock by a customer. Quantity is
// fixed at creation; only Status changes afterwards.
type Order struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID   uuid.UUID         `gorm:"column:owner_id;type:uuid;not null;index"`
	ProductID uuid.UUID         `gorm:"column:product_id;type:uuid;not null;index"`
	Quantity  int               `gorm:"column:quantity;not null"`
	Status    enums.OrderStatus `gorm:"column:status;type:text;not null;default:'AWAITING_FOR_PAYMENT'"`
	Product   *Product          `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
