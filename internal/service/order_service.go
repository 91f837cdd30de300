package service

import (
	"context"
	"fmt"

	"jewelkart/internal/model"
	"jewelkart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository, logger zerolog.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// GetByID retrieves an order. Customers can only see their own orders; a
// mismatch reports not-found rather than forbidden so order IDs cannot be
// probed.
func (s *orderService) GetByID(ctx context.Context, user model.User, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order by ID")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if !user.IsAdmin() && order.UserID != user.ID {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("user_id", user.ID).
			Msg("order access denied for non-owner")
		return nil, model.ErrOrderNotFound
	}

	return order, nil
}

// ListByUser retrieves the user's own orders, newest first.
func (s *orderService) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list orders for user")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListAll retrieves all orders with pagination.
func (s *orderService) ListAll(ctx context.Context, limit, offset int) ([]model.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	orders, err := s.orderRepo.ListAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list all orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Confirm transitions a Processing order to Completed. Stock was already
// decremented at checkout commit, so confirmation touches nothing but the
// status.
func (s *orderService) Confirm(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return s.transition(ctx, id, model.OrderStatusCompleted)
}

// Decline transitions a Processing order to Cancelled.
func (s *orderService) Decline(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return s.transition(ctx, id, model.OrderStatusCancelled)
}

// transition moves an order out of Processing. The conditional update makes
// concurrent confirm/decline attempts race safely: exactly one wins, the
// loser gets ErrOrderNotPending.
func (s *orderService) transition(ctx context.Context, id uuid.UUID, to model.OrderStatus) (*model.Order, error) {
	ok, err := s.orderRepo.TransitionStatus(ctx, id, model.OrderStatusProcessing, to)
	if err != nil {
		s.logger.Error().Err(err).
			Str("order_id", id.String()).
			Str("to", string(to)).
			Msg("failed to transition order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if !ok {
		order, err := s.orderRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get order: %w", err)
		}
		if order == nil {
			return nil, model.ErrOrderNotFound
		}
		return nil, model.ErrOrderNotPending
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", string(to)).
		Msg("order status updated")

	return order, nil
}
