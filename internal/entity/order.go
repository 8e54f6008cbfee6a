package entity

import "time"

// Order statuses. Orders start as pending and are either cancelled by the
// customer or retired when a payment settles them.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID        int64     `json:"id"`
	MenuID    int64     `json:"menuId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
	Status    string    `json:"status"`
	OrderedAt time.Time `json:"orderedAt"`
}

/*
Mysql Table

CREATE TABLE orders (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	menu_id BIGINT NOT NULL,
	email VARCHAR(255) NOT NULL,
	name VARCHAR(255) NOT NULL,
	image VARCHAR(512) NOT NULL,
	price DOUBLE NOT NULL,
	category VARCHAR(50) NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'pending',
	ordered_at DATETIME NOT NULL
);
*/
