// Package service implements the order lifecycle engine and the order query
// paths.
package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	ordererrors "github.com/avlasov/sneakerhub/internal/order/errors"
	"github.com/avlasov/sneakerhub/internal/order/store"
	"github.com/google/uuid"
)

// deliveryLeadTime is the fixed estimated-delivery policy: creation + 7 days.
const deliveryLeadTime = 7 * 24 * time.Hour

// totalTolerance bounds the accepted difference between the submitted total
// and the recomputed item sum (half a cent, to absorb float wire encoding).
const totalTolerance = 0.005

// createIDAttempts limits order-id regeneration on unique-constraint
// collisions.
const createIDAttempts = 3

// OrderService defines the order lifecycle and query operations.
type OrderService interface {
	// Create places a new order in Processing status. The submitted total
	// must match the recomputed item sum.
	Create(ctx context.Context, userID uuid.UUID, order OrderCreateDto) (*OrderCreatedDto, error)

	// UpdateStatus is the administrative transition path: it forces any
	// valid status regardless of the current one. The first transition to
	// Shipped assigns a tracking number; later ones preserve it.
	UpdateStatus(ctx context.Context, orderID string, status string) (*StatusUpdateDto, error)

	// Cancel is the user-initiated transition path, restricted to orders the
	// user owns that are still Processing.
	Cancel(ctx context.Context, orderID string, userID uuid.UUID) (*CancelDto, error)

	// ListActive returns the user's non-cancelled orders, newest first.
	ListActive(ctx context.Context, userID uuid.UUID) ([]OrderDto, error)

	// ListHistory returns all of the user's orders, cancelled included.
	ListHistory(ctx context.Context, userID uuid.UUID) ([]OrderDto, error)

	// FindByID returns the full order aggregate. An order owned by another
	// user is reported as ErrOrderNotFound.
	FindByID(ctx context.Context, orderID string, userID uuid.UUID) (*OrderDto, error)
}

// Service implements OrderService on top of an injected OrderStore.
type Service struct {
	orderStore store.OrderStore
	logger     *slog.Logger
}

func NewService(orderStore store.OrderStore, logger *slog.Logger) *Service {
	return &Service{
		orderStore: orderStore,
		logger:     logger.With("component", "order_service"),
	}
}

// AddressDto is the shipping address as it travels on the wire.
type AddressDto struct {
	Name    string `json:"name"    validate:"required"`
	Street  string `json:"street"  validate:"required"`
	City    string `json:"city"    validate:"required"`
	State   string `json:"state"   validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
}

type OrderItemDto struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"     validate:"required"`
	Size      int32   `json:"size"     validate:"required"`
	Price     float64 `json:"price"    validate:"required,gte=0"`
	Quantity  int32   `json:"quantity" validate:"required,gt=0"`
}

type OrderCreateDto struct {
	Items           []OrderItemDto `json:"items"           validate:"required,gt=0,dive"`
	ShippingAddress AddressDto     `json:"shippingAddress" validate:"required"`
	TotalAmount     float64        `json:"totalAmount"     validate:"required,gte=0"`
}

type OrderCreatedDto struct {
	OrderID           string `json:"orderId"`
	Status            string `json:"status"`
	EstimatedDelivery string `json:"estimatedDelivery"`
}

type StatusUpdateDto struct {
	OrderID        string  `json:"orderId"`
	Status         string  `json:"status"`
	TrackingNumber *string `json:"trackingNumber"`
}

type CancelDto struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// OrderDto is the full order aggregate: header, shipping address and items.
type OrderDto struct {
	OrderID           string         `json:"orderId"`
	Status            string         `json:"status"`
	TotalAmount       float64        `json:"totalAmount"`
	OrderDate         string         `json:"orderDate"`
	StatusUpdatedAt   string         `json:"statusUpdatedAt"`
	EstimatedDelivery string         `json:"estimatedDelivery"`
	TrackingNumber    *string        `json:"trackingNumber"`
	ShippingAddress   AddressDto     `json:"shippingAddress"`
	Items             []OrderItemDto `json:"items"`
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, order OrderCreateDto) (*OrderCreatedDto, error) {
	// The submitted total is not trusted: recompute from the line items and
	// reject a disagreement.
	var sum float64
	for _, item := range order.Items {
		sum += item.Price * float64(item.Quantity)
	}
	if math.Abs(sum-order.TotalAmount) > totalTolerance {
		return nil, ordererrors.ErrTotalMismatch
	}

	estimatedDelivery := time.Now().Add(deliveryLeadTime)

	items := make([]store.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, store.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Size:      item.Size,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	var orderID string
	for attempt := 0; attempt < createIDAttempts; attempt++ {
		id, err := newOrderID()
		if err != nil {
			return nil, err
		}
		err = s.orderStore.Create(ctx, &store.Order{
			OrderID:           id,
			UserID:            userID,
			Status:            string(StatusProcessing),
			TotalAmount:       order.TotalAmount,
			EstimatedDelivery: estimatedDelivery,
			ShippingName:      order.ShippingAddress.Name,
			ShippingStreet:    order.ShippingAddress.Street,
			ShippingCity:      order.ShippingAddress.City,
			ShippingState:     order.ShippingAddress.State,
			ShippingZipCode:   order.ShippingAddress.ZipCode,
		}, items)
		if errors.Is(err, ordererrors.ErrDuplicateOrderID) {
			s.logger.WarnContext(ctx, "Order id collision, regenerating", "order_id", id)
			continue
		}
		if err != nil {
			return nil, err
		}
		orderID = id
		break
	}
	if orderID == "" {
		return nil, ordererrors.ErrCreateOrder
	}

	return &OrderCreatedDto{
		OrderID:           orderID,
		Status:            string(StatusProcessing),
		EstimatedDelivery: estimatedDelivery.Format(time.RFC3339),
	}, nil
}

func (s *Service) UpdateStatus(ctx context.Context, orderID string, status string) (*StatusUpdateDto, error) {
	if !Status(status).Valid() {
		return nil, ordererrors.ErrInvalidStatus
	}

	// Only a transition to Shipped carries a tracking-number candidate; the
	// store assigns it just when the order has none yet.
	var tracking *string
	if Status(status) == StatusShipped {
		generated, err := newTrackingNumber()
		if err != nil {
			return nil, err
		}
		tracking = &generated
	}

	updated, err := s.orderStore.UpdateStatus(ctx, orderID, status, tracking)
	if err != nil {
		return nil, err
	}

	return &StatusUpdateDto{
		OrderID:        updated.OrderID,
		Status:         updated.Status,
		TrackingNumber: updated.TrackingNumber,
	}, nil
}

func (s *Service) Cancel(ctx context.Context, orderID string, userID uuid.UUID) (*CancelDto, error) {
	cancelled, err := s.orderStore.Cancel(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	return &CancelDto{OrderID: cancelled.OrderID, Status: cancelled.Status}, nil
}

func (s *Service) ListActive(ctx context.Context, userID uuid.UUID) ([]OrderDto, error) {
	return s.list(ctx, userID, false)
}

func (s *Service) ListHistory(ctx context.Context, userID uuid.UUID) ([]OrderDto, error) {
	return s.list(ctx, userID, true)
}

func (s *Service) list(ctx context.Context, userID uuid.UUID, includeCancelled bool) ([]OrderDto, error) {
	orders, itemsByOrder, err := s.orderStore.ListByUser(ctx, userID, includeCancelled)
	if err != nil {
		return nil, err
	}

	dtos := make([]OrderDto, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, *toDto(&orders[i], itemsByOrder[orders[i].OrderID]))
	}
	return dtos, nil
}

func (s *Service) FindByID(ctx context.Context, orderID string, userID uuid.UUID) (*OrderDto, error) {
	order, items, err := s.orderStore.FindByID(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	return toDto(order, items), nil
}

// toDto assembles the order aggregate. All read paths go through here.
func toDto(order *store.Order, items []store.OrderItem) *OrderDto {
	itemDtos := make([]OrderItemDto, 0, len(items))
	for _, item := range items {
		itemDtos = append(itemDtos, OrderItemDto{
			ProductID: item.ProductID,
			Name:      item.Name,
			Size:      item.Size,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return &OrderDto{
		OrderID:           order.OrderID,
		Status:            order.Status,
		TotalAmount:       order.TotalAmount,
		OrderDate:         order.OrderDate.Format(time.RFC3339),
		StatusUpdatedAt:   order.StatusUpdatedAt.Format(time.RFC3339),
		EstimatedDelivery: order.EstimatedDelivery.Format(time.RFC3339),
		TrackingNumber:    order.TrackingNumber,
		ShippingAddress: AddressDto{
			Name:    order.ShippingName,
			Street:  order.ShippingStreet,
			City:    order.ShippingCity,
			State:   order.ShippingState,
			ZipCode: order.ShippingZipCode,
		},
		Items: itemDtos,
	}
}
