package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-sql-driver/mysql"
	"github.com/segmentio/kafka-go"

	"food-order-service/internal/entity"
)

// In-memory fakes for the store and processor interfaces. The payment fake
// enforces transaction-id uniqueness the way MySQL does, returning a 1062
// duplicate-entry error, so the idempotency path under test matches
// production behavior.

type fakePaymentStore struct {
	mu       sync.Mutex
	payments map[string]*entity.Payment
	nextID   int64
	failNext bool
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: make(map[string]*entity.Payment), nextID: 1}
}

func (f *fakePaymentStore) CreatePayment(ctx context.Context, payment *entity.Payment) (*entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failNext {
		f.failNext = false
		return nil, errors.New("store unavailable")
	}
	if _, exists := f.payments[payment.TransactionID]; exists {
		return nil, &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	}

	saved := *payment
	saved.ID = f.nextID
	f.nextID++
	f.payments[payment.TransactionID] = &saved
	return &saved, nil
}

func (f *fakePaymentStore) GetPaymentByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	payment, ok := f.payments[transactionID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return payment, nil
}

func (f *fakePaymentStore) GetPaymentsByEmail(ctx context.Context, email string) ([]entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	payments := make([]entity.Payment, 0)
	for _, payment := range f.payments {
		if payment.Email == email {
			payments = append(payments, *payment)
		}
	}
	return payments, nil
}

func (f *fakePaymentStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payments)
}

type fakeOrderStore struct {
	mu       sync.Mutex
	orders   map[int64]*entity.Order
	nextID   int64
	failNext bool
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[int64]*entity.Order), nextID: 1}
}

func (f *fakeOrderStore) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failNext {
		f.failNext = false
		return nil, errors.New("store unavailable")
	}

	saved := *order
	saved.ID = f.nextID
	f.nextID++
	f.orders[saved.ID] = &saved
	return &saved, nil
}

func (f *fakeOrderStore) GetOrdersByEmail(ctx context.Context, email string) ([]entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	orders := make([]entity.Order, 0)
	for _, order := range f.orders {
		if order.Email == email {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (f *fakeOrderStore) DeleteOrder(ctx context.Context, id int64) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	delete(f.orders, id)
	return order, nil
}

func (f *fakeOrderStore) DeleteOrdersByIDs(ctx context.Context, ids []int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failNext {
		f.failNext = false
		return 0, errors.New("store unavailable")
	}

	var deleted int64
	for _, id := range ids {
		if _, ok := f.orders[id]; ok {
			delete(f.orders, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeOrderStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch v := value.(type) {
	case string:
		f.data[key] = v
	case []byte:
		f.data[key] = string(v)
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	var deleted int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			deleted++
		}
	}
	return redis.NewIntResult(deleted, nil)
}

func (f *fakeCache) flush() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = make(map[string]string)
}

type fakeProcessor struct {
	calls  int
	secret string
	err    error
}

func (f *fakeProcessor) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.secret, nil
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []kafka.Message
}

func (f *fakePublisher) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakePublisher) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.messages))
	for _, msg := range f.messages {
		keys = append(keys, string(msg.Key))
	}
	return keys
}
