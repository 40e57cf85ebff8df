package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/hovo33651/shoppingcart-backend/pkg/db/models"
	"github.com/hovo33651/shoppingcart-backend/pkg/enums"
)

// OrderDTO is the transport shape for order reads.
type OrderDTO struct {
	ID        uuid.UUID         `json:"id"`
	OwnerID   uuid.UUID         `json:"owner_id"`
	ProductID uuid.UUID         `json:"product_id"`
	Quantity  int               `json:"quantity"`
	Status    enums.OrderStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// CreateOrderInput holds the validated payload to place an order.
type CreateOrderInput struct {
	ProductID uuid.UUID
	Quantity  int
}

func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	return &OrderDTO{
		ID:        o.ID,
		OwnerID:   o.OwnerID,
		ProductID: o.ProductID,
		Quantity:  o.Quantity,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func fromModels(items []models.Order) []OrderDTO {
	dtos := make([]OrderDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *FromModel(&items[i]))
	}
	return dtos
}
