package service

import (
	"context"
	"errors"
	"time"

	"github.com/mirstone/ordermart/internal/core/domain"
	"github.com/mirstone/ordermart/internal/core/port"
	"go.uber.org/zap"
)

// Service implements port.Service. It owns no business rules itself:
// every rule lives in the Order aggregate, and every mutating command
// runs as one unit-of-work cycle against one aggregate.
type Service struct {
	repo    port.OrderRepository
	uow     port.UnitOfWork
	catalog port.ProductCatalog
	logger  *zap.Logger
}

func NewService(repo port.OrderRepository, uow port.UnitOfWork,
	catalog port.ProductCatalog, logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:    repo,
		uow:     uow,
		catalog: catalog,
		logger:  logger,
	}, nil
}

func (s *Service) CreateOrder(ctx context.Context, customerID domain.CustomerID,
	lines []port.OrderLine, shipping *domain.Address) (*domain.Order, error) {
	return s.uow.ExecuteNew(ctx, func() (*domain.Order, error) {
		now := time.Now()
		order, err := domain.NewOrder(s.repo.NextIdentity(), customerID, now)
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			product, err := s.catalog.GetProduct(ctx, line.ProductID)
			if err != nil {
				return nil, err
			}
			if err := order.AddItem(*product, line.Quantity, time.Now()); err != nil {
				return nil, err
			}
		}
		if shipping != nil {
			if err := order.SetShippingAddress(*shipping, time.Now()); err != nil {
				return nil, err
			}
		}
		return order, nil
	})
}

func (s *Service) AddItem(ctx context.Context, orderID domain.OrderID,
	productID domain.ProductID, quantity int) (*domain.Order, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("catalog lookup", zap.String("product", productID.String()), zap.Error(err))
		}
		return nil, err
	}

	return s.uow.Execute(ctx, orderID, func(order *domain.Order) error {
		return order.AddItem(*product, quantity, time.Now())
	})
}

func (s *Service) RemoveItem(ctx context.Context, orderID domain.OrderID,
	productID domain.ProductID) (*domain.Order, error) {
	return s.uow.Execute(ctx, orderID, func(order *domain.Order) error {
		return order.RemoveItem(productID, time.Now())
	})
}

func (s *Service) UpdateItemQuantity(ctx context.Context, orderID domain.OrderID,
	productID domain.ProductID, quantity int) (*domain.Order, error) {
	return s.uow.Execute(ctx, orderID, func(order *domain.Order) error {
		return order.UpdateItemQuantity(productID, quantity, time.Now())
	})
}

func (s *Service) SetShippingAddress(ctx context.Context, orderID domain.OrderID,
	address domain.Address) (*domain.Order, error) {
	return s.uow.Execute(ctx, orderID, func(order *domain.Order) error {
		return order.SetShippingAddress(address, time.Now())
	})
}

func (s *Service) SetBillingAddress(ctx context.Context, orderID domain.OrderID,
	address domain.Address) (*domain.Order, error) {
	return s.uow.Execute(ctx, orderID, func(order *domain.Order) error {
		return order.SetBillingAddress(address, time.Now())
	})
}

func (s *Service) PlaceOrder(ctx context.Context, orderID domain.OrderID) (*domain.Order, error) {
	return s.uow.Execute(ctx, orderID, func(order *domain.Order) error {
		return order.Place(time.Now())
	})
}

func (s *Service) ConfirmOrder(ctx context.Context, orderID domain.OrderID) (*domain.Order, error) {
	return s.uow.Execute(ctx, orderID, func(order *domain.Order) error {
		return order.Confirm(time.Now())
	})
}

func (s *Service) StartPreparing(ctx context.Context, orderID domain.OrderID) (*domain.Order, error) {
	return s.uow.Execute(ctx, orderID, func(order *domain.Order) error {
		return order.StartPreparing(time.Now())
	})
}

func (s *Service) ShipOrder(ctx context.Context, orderID domain.OrderID,
	trackingNumber, carrier string) (*domain.Order, error) {
	return s.uow.Execute(ctx, orderID, func(order *domain.Order) error {
		return order.Ship(trackingNumber, carrier, time.Now())
	})
}

func (s *Service) DeliverOrder(ctx context.Context, orderID domain.OrderID) (*domain.Order, error) {
	return s.uow.Execute(ctx, orderID, func(order *domain.Order) error {
		return order.Deliver(time.Now())
	})
}

func (s *Service) CancelOrder(ctx context.Context, orderID domain.OrderID, reason string) (*domain.Order, error) {
	return s.uow.Execute(ctx, orderID, func(order *domain.Order) error {
		return order.Cancel(reason, time.Now())
	})
}

func (s *Service) ReturnOrder(ctx context.Context, orderID domain.OrderID) (*domain.Order, error) {
	return s.uow.Execute(ctx, orderID, func(order *domain.Order) error {
		return order.Return(time.Now())
	})
}

func (s *Service) GetOrder(ctx context.Context, orderID domain.OrderID) (*domain.Order, error) {
	return s.repo.FindByID(ctx, orderID)
}

func (s *Service) ListOrdersByCustomer(ctx context.Context, customerID domain.CustomerID) ([]domain.OrderSummary, error) {
	list, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		s.logger.Error("list orders by customer", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *Service) ListOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.OrderSummary, error) {
	list, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		s.logger.Error("list orders by status", zap.Error(err))
		return nil, err
	}
	return list, nil
}
