package entity

import "time"

type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Recipe    string    `json:"recipe"`
	Image     string    `json:"image"`
	Category  string    `json:"category"` // pizza, burger, salad, drink, dessert
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

/*
Mysql Table

CREATE TABLE products (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	recipe TEXT NOT NULL,
	image VARCHAR(512) NOT NULL,
	category VARCHAR(50) NOT NULL,
	price DOUBLE NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
*/
