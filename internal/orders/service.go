package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hovo33651/shoppingcart-backend/internal/authz"
	"github.com/hovo33651/shoppingcart-backend/pkg/config"
	"github.com/hovo33651/shoppingcart-backend/pkg/db/models"
	"github.com/hovo33651/shoppingcart-backend/pkg/enums"
	pkgerrors "github.com/hovo33651/shoppingcart-backend/pkg/errors"
	"github.com/hovo33651/shoppingcart-backend/pkg/metrics"
)

// Service exposes the order lifecycle. Every mutation takes the acting
// principal explicitly; authorization happens here, not in middleware.
type Service interface {
	Create(ctx context.Context, actor authz.Principal, input CreateOrderInput) (*OrderDTO, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]OrderDTO, error)
	FindByID(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error)
	ChangeStatus(ctx context.Context, actor authz.Principal, orderID uuid.UUID, newStatus enums.OrderStatus) (*OrderDTO, error)
	Delete(ctx context.Context, actor authz.Principal, orderID uuid.UUID) error
}

type service struct {
	repo    Repository
	tx      txRunner
	ledger  StockLedger
	cfg     config.OrdersConfig
	metrics *metrics.OrderMetrics
}

// NewService builds an order service with the required dependencies.
// Metrics may be nil.
func NewService(repo Repository, tx txRunner, ledger StockLedger, cfg config.OrdersConfig, m *metrics.OrderMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("stock ledger required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		ledger:  ledger,
		cfg:     cfg,
		metrics: m,
	}, nil
}

// Create reserves stock and persists the order atomically. A denied
// reservation rolls the transaction back so no order row survives.
func (s *service) Create(ctx context.Context, actor authz.Principal, input CreateOrderInput) (*OrderDTO, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}

	order := &models.Order{
		ID:        uuid.New(),
		OwnerID:   actor.ID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		Status:    enums.OrderStatusInitial,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.ledger.Reserve(ctx, tx, input.ProductID, input.Quantity); err != nil {
			return err
		}
		_, err := s.repo.WithTx(tx).Create(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeInsufficientStock {
			s.metrics.IncStockDenied(input.ProductID.String())
		}
		return nil, err
	}

	s.metrics.IncCreated()
	return FromModel(order), nil
}

// ListForOwner returns the owner's orders in insertion order.
func (s *service) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]OrderDTO, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return fromModels(items), nil
}

// FindByID loads a single order.
func (s *service) FindByID(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

// ChangeStatus moves the order to newStatus. Only admins may call it, and
// a delivered order never moves again.
func (s *service) ChangeStatus(ctx context.Context, actor authz.Principal, orderID uuid.UUID, newStatus enums.OrderStatus) (*OrderDTO, error) {
	if err := authz.RequireRole(actor, enums.UserRoleAdmin); err != nil {
		return nil, err
	}
	if !newStatus.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", newStatus))
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransition() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order in status %s cannot transition", order.Status)).
			WithDetails(map[string]string{
				"current":   order.Status.String(),
				"requested": newStatus.String(),
			})
	}

	if err := s.repo.UpdateStatus(ctx, orderID, newStatus); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	s.metrics.IncTransition(newStatus.String())

	order.Status = newStatus
	return FromModel(order), nil
}

// Delete removes the order for its owner or an admin. When release-on-delete
// is configured the reserved quantity returns to the product counter in the
// same transaction.
func (s *service) Delete(ctx context.Context, actor authz.Principal, orderID uuid.UUID) error {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if err := authz.RequireOwnerOrAdmin(actor, order.OwnerID); err != nil {
		return err
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if s.cfg.ReleaseOnDelete {
			if err := s.ledger.Release(ctx, tx, order.ProductID, order.Quantity); err != nil {
				return err
			}
		}
		if err := s.repo.WithTx(tx).Delete(ctx, orderID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
		}
		return nil
	})
}

func (s *service) loadOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("order %s not found", orderID))
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}
