package migrations

import (
	"database/sql"
	"time"
)

var tables = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		recipe TEXT NOT NULL,
		image VARCHAR(512) NOT NULL,
		category VARCHAR(50) NOT NULL,
		price DOUBLE NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		menu_id BIGINT NOT NULL,
		email VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		image VARCHAR(512) NOT NULL,
		price DOUBLE NOT NULL,
		category VARCHAR(50) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		ordered_at DATETIME NOT NULL,
		INDEX email_idx (email)
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(50) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		role VARCHAR(20) NOT NULL DEFAULT 'customer'
	);`,
	`CREATE TABLE IF NOT EXISTS payments (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		price DOUBLE NOT NULL,
		transaction_id VARCHAR(255) NOT NULL UNIQUE,
		status VARCHAR(20) NOT NULL,
		paid_at DATETIME NOT NULL,
		INDEX payment_email_idx (email)
	);`,
	`CREATE TABLE IF NOT EXISTS payment_orders (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		payment_id BIGINT NOT NULL,
		order_id BIGINT NOT NULL,
		FOREIGN KEY (payment_id) REFERENCES payments(id) ON DELETE CASCADE
	);`,
	`CREATE TABLE IF NOT EXISTS payment_menu_items (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		payment_id BIGINT NOT NULL,
		menu_id BIGINT NOT NULL,
		FOREIGN KEY (payment_id) REFERENCES payments(id) ON DELETE CASCADE
	);`,
}

// AutoMigrate creates every table if it does not exist. The UNIQUE constraint
// on payments.transaction_id is load-bearing: it serializes concurrent
// settlement attempts for the same external charge.
func AutoMigrate(retries int, db *sql.DB) error {
	for _, query := range tables {
		_, err := db.Exec(query)
		if err != nil {
			// Retry creating the table
			for i := 0; i < retries; i++ {
				time.Sleep(1 * time.Second)
				_, err = db.Exec(query)
				if err == nil {
					break
				}
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
