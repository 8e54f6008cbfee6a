package entity

// User roles. Privilege is established only by the authorization gate's
// server-side lookup, never from a role value in a request body.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

/*
Mysql Table

CREATE TABLE users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(50) NOT NULL,
	email VARCHAR(255) NOT NULL,
	role VARCHAR(20) NOT NULL DEFAULT 'customer'
);

CREATE UNIQUE INDEX email_idx ON users(email);
*/
