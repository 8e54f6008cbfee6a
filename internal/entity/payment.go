package entity

import "time"

// Payment statuses.
const (
	PaymentStatusPending   = "Pending"
	PaymentStatusCompleted = "Completed"
	PaymentStatusFailed    = "Failed"
)

// Payment is an immutable record of funds collected for one or more orders.
// TransactionID carries the external processor's charge identifier and is
// unique in the store; it anchors settlement idempotency.
type Payment struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Price         float64   `json:"price"`
	TransactionID string    `json:"transactionId"`
	Status        string    `json:"status"`
	OrderIDs      []int64   `json:"orderIds"`
	MenuIDs       []int64   `json:"menuIds"`
	PaidAt        time.Time `json:"paidAt"`
}

/*
Mysql Tables

CREATE TABLE payments (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	email VARCHAR(255) NOT NULL,
	price DOUBLE NOT NULL,
	transaction_id VARCHAR(255) NOT NULL UNIQUE,
	status VARCHAR(20) NOT NULL,
	paid_at DATETIME NOT NULL
);

CREATE TABLE payment_orders (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	payment_id BIGINT NOT NULL REFERENCES payments(id),
	order_id BIGINT NOT NULL
);

CREATE TABLE payment_menu_items (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	payment_id BIGINT NOT NULL REFERENCES payments(id),
	menu_id BIGINT NOT NULL
);
*/
