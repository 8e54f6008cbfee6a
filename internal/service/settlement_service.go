package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"food-order-service/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// PaymentStore persists settled payments. CreatePayment must enforce
// uniqueness on the transaction id.
type PaymentStore interface {
	CreatePayment(ctx context.Context, payment *entity.Payment) (*entity.Payment, error)
	GetPaymentByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error)
	GetPaymentsByEmail(ctx context.Context, email string) ([]entity.Payment, error)
}

// OrderRetirer removes settled orders by id set.
type OrderRetirer interface {
	DeleteOrdersByIDs(ctx context.Context, ids []int64) (int64, error)
}

// IntentCreator is the slice of the payment processor the coordinator needs.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64) (string, error)
}

// EventPublisher is satisfied by *kafka.Writer.
type EventPublisher interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// SettlementService converts successful external charges into durable Payment
// records and retires the orders they cover.
type SettlementService struct {
	payments    PaymentStore
	orders      OrderRetirer
	processor   IntentCreator
	kafkaWriter EventPublisher
}

// NewSettlementService creates a new instance of SettlementService.
func NewSettlementService(payments PaymentStore, orders OrderRetirer, processor IntentCreator, kafkaWriter EventPublisher) *SettlementService {
	return &SettlementService{
		payments:    payments,
		orders:      orders,
		processor:   processor,
		kafkaWriter: kafkaWriter,
	}
}

// SettleRequest describes one completed external charge.
type SettleRequest struct {
	Email         string  `json:"email"`
	Price         float64 `json:"price"`
	TransactionID string  `json:"transactionId"`
	OrderIDs      []int64 `json:"orderIds"`
	MenuIDs       []int64 `json:"menuIds"`
}

// SettleResult reports the saved payment and what happened to the orders.
// AlreadySettled means the transaction id had been settled before and the
// existing payment is returned. Reconciliation means the payment committed
// but order retirement failed and was handed off for out-of-band repair.
type SettleResult struct {
	Payment        *entity.Payment `json:"payment"`
	DeletedCount   int64           `json:"deletedCount"`
	AlreadySettled bool            `json:"alreadySettled,omitempty"`
	Reconciliation bool            `json:"reconciliation,omitempty"`
}

// Authorize requests a payment authorization for totalPrice and returns the
// processor's client secret. It writes nothing locally, so a timed-out or
// failed call is safely retried by the caller.
func (s *SettlementService) Authorize(ctx context.Context, totalPrice float64) (string, error) {
	if math.IsNaN(totalPrice) || math.IsInf(totalPrice, 0) || totalPrice <= 0 {
		return "", fmt.Errorf("%w: totalPrice must be a positive number", entity.ErrInvalidRequest)
	}

	// Smallest currency unit, rounded before transmission to avoid
	// floating-point drift.
	amountCents := int64(math.Round(totalPrice * 100))

	secret, err := s.processor.CreateIntent(ctx, amountCents)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating payment intent")
		return "", err
	}

	return secret, nil
}

// Settle persists the Payment for req and then retires the covered orders.
// The payment write happens-before retirement: if the write fails nothing is
// retired, and a duplicate transaction id returns the existing payment
// without touching the orders again.
func (s *SettlementService) Settle(ctx context.Context, req *SettleRequest) (*SettleResult, error) {
	if req.TransactionID == "" {
		return nil, fmt.Errorf("%w: transactionId is required", entity.ErrInvalidRequest)
	}
	if len(req.OrderIDs) == 0 || len(req.MenuIDs) == 0 {
		return nil, fmt.Errorf("%w: orderIds and menuIds must be non-empty", entity.ErrInvalidRequest)
	}
	if math.IsNaN(req.Price) || math.IsInf(req.Price, 0) || req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be a positive number", entity.ErrInvalidRequest)
	}

	payment := &entity.Payment{
		Email:         req.Email,
		Price:         req.Price,
		TransactionID: req.TransactionID,
		Status:        entity.PaymentStatusCompleted,
		OrderIDs:      req.OrderIDs,
		MenuIDs:       req.MenuIDs,
		PaidAt:        time.Now(),
	}

	saved, err := s.payments.CreatePayment(ctx, payment)
	if err != nil {
		if isDuplicateKey(err) {
			existing, lookupErr := s.payments.GetPaymentByTransactionID(ctx, req.TransactionID)
			if lookupErr != nil {
				logger.Error().Err(lookupErr).Msgf("Error loading settled payment for transaction %s", req.TransactionID)
				return nil, fmt.Errorf("%w: %v", entity.ErrUpstream, lookupErr)
			}
			logger.Info().Msgf("Transaction %s already settled as payment %d", req.TransactionID, existing.ID)
			return &SettleResult{Payment: existing, AlreadySettled: true}, nil
		}
		logger.Error().Err(err).Msgf("Error saving payment for transaction %s", req.TransactionID)
		return nil, fmt.Errorf("%w: %v", entity.ErrUpstream, err)
	}

	deleted, err := s.orders.DeleteOrdersByIDs(ctx, req.OrderIDs)
	if err != nil {
		// The charge succeeded and the payment is durable; losing the
		// retirement must not surface as a failure. Flag it for
		// reconciliation instead.
		logger.Error().Err(err).Msgf("Payment %d saved but order retirement failed", saved.ID)
		s.publishSettlementEvent(ctx, saved, "reconcile")
		return &SettleResult{Payment: saved, Reconciliation: true}, nil
	}

	s.publishSettlementEvent(ctx, saved, "settled")

	return &SettleResult{Payment: saved, DeletedCount: deleted}, nil
}

// PaymentHistory lists a customer's payments.
func (s *SettlementService) PaymentHistory(ctx context.Context, email string) ([]entity.Payment, error) {
	payments, err := s.payments.GetPaymentsByEmail(ctx, email)
	if err != nil {
		logger.Error().Err(err).Msgf("Error fetching payments for %s", email)
		return nil, fmt.Errorf("%w: %v", entity.ErrUpstream, err)
	}

	return payments, nil
}

func (s *SettlementService) publishSettlementEvent(ctx context.Context, payment *entity.Payment, key string) {
	if s.kafkaWriter == nil {
		return
	}

	paymentJSON, err := json.Marshal(payment)
	if err != nil {
		logger.Error().Err(err).Msgf("Error marshalling payment %d", payment.ID)
		return
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("payment-%s-%d", key, payment.ID)),
		Value: paymentJSON,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Error().Err(err).Msgf("Error publishing %s event for payment %d", key, payment.ID)
	}
}

// isDuplicateKey reports whether err is a MySQL duplicate-entry violation.
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// notFound reports whether err is a missing-row error from the store.
func notFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
