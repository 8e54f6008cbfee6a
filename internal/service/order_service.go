package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"

	"food-order-service/internal/entity"
)

// OrderStore is the order collection surface the service consumes.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error)
	GetOrdersByEmail(ctx context.Context, email string) ([]entity.Order, error)
	DeleteOrder(ctx context.Context, id int64) (*entity.Order, error)
}

// Cache is the slice of Redis the services use. Satisfied by *redis.Client.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// OrderService is a service that provides order-related operations
type OrderService struct {
	orders      OrderStore
	kafkaWriter EventPublisher
	rdb         Cache
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orders OrderStore, kafkaWriter EventPublisher, rdb Cache) *OrderService {
	return &OrderService{
		orders:      orders,
		kafkaWriter: kafkaWriter,
		rdb:         rdb,
	}
}

// PlaceOrder validates and stores a new pending order. idempotentKey, when
// supplied, dedupes client retries through Redis before anything is written.
func (s *OrderService) PlaceOrder(ctx context.Context, order *entity.Order, idempotentKey string) (*entity.Order, error) {
	if order.MenuID == 0 || order.Email == "" || order.Name == "" || order.Image == "" || order.Category == "" {
		return nil, fmt.Errorf("%w: menuId, email, name, image and category are required", entity.ErrInvalidRequest)
	}
	if order.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", entity.ErrInvalidRequest)
	}

	if idempotentKey != "" {
		valid, err := s.validateIdempotentKey(ctx, idempotentKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrUpstream, err)
		}
		if !valid {
			return nil, fmt.Errorf("%w: idempotent key already exists", entity.ErrConflict)
		}
	}

	order.Status = entity.OrderStatusPending
	order.OrderedAt = time.Now()

	createdOrder, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating order")
		return nil, fmt.Errorf("%w: %v", entity.ErrUpstream, err)
	}

	s.publishOrderEvent(ctx, createdOrder, "created")

	return createdOrder, nil
}

// ListOrdersByEmail returns the customer's pending orders in store order.
func (s *OrderService) ListOrdersByEmail(ctx context.Context, email string) ([]entity.Order, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email query param is required", entity.ErrInvalidRequest)
	}

	orders, err := s.orders.GetOrdersByEmail(ctx, email)
	if err != nil {
		logger.Error().Err(err).Msgf("Error fetching orders for %s", email)
		return nil, fmt.Errorf("%w: %v", entity.ErrUpstream, err)
	}

	return orders, nil
}

// CancelOrder removes a single order before settlement and returns the
// removed entity.
func (s *OrderService) CancelOrder(ctx context.Context, id int64) (*entity.Order, error) {
	order, err := s.orders.DeleteOrder(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("%w: order %d", entity.ErrNotFound, id)
		}
		logger.Error().Err(err).Msgf("Error deleting order %d", id)
		return nil, fmt.Errorf("%w: %v", entity.ErrUpstream, err)
	}

	s.publishOrderEvent(ctx, order, "cancelled")

	return order, nil
}

func (s *OrderService) publishOrderEvent(ctx context.Context, order *entity.Order, key string) {
	if s.kafkaWriter == nil {
		return
	}

	orderJSON, err := json.Marshal(order)
	if err != nil {
		logger.Error().Err(err).Msgf("Error marshalling order %d", order.ID)
		return
	}

	// order-created-1 or order-cancelled-1
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-%s-%d", key, order.ID)),
		Value: orderJSON,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Error().Err(err).Msgf("Error publishing %s event for order %d", key, order.ID)
	}
}

func (s *OrderService) validateIdempotentKey(ctx context.Context, key string) (bool, error) {
	if s.rdb == nil {
		return true, nil
	}

	// check if the key exists in the redis cache
	// if it exists, return false
	redisKey := fmt.Sprintf("idempotent-key:%s", key)
	val, err := s.rdb.Get(ctx, redisKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}

	if val != "" {
		return false, nil
	}

	// if it doesn't exist, add the key to the cache with a TTL of 24 hours
	err = s.rdb.Set(ctx, redisKey, "exists", 24*time.Hour).Err()
	if err != nil {
		return false, err
	}

	return true, nil
}
