package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"food-order-service/internal/entity"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db}
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	query := `INSERT INTO orders (menu_id, email, name, image, price, category, status, ordered_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, order.MenuID, order.Email, order.Name, order.Image, order.Price, order.Category, order.Status, order.OrderedAt)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	order.ID = id
	return order, nil
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, id int64) (*entity.Order, error) {
	query := `SELECT id, menu_id, email, name, image, price, category, status, ordered_at FROM orders WHERE id = ?`

	order := &entity.Order{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&order.ID, &order.MenuID, &order.Email, &order.Name, &order.Image, &order.Price, &order.Category, &order.Status, &order.OrderedAt)
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *OrderRepository) GetOrdersByEmail(ctx context.Context, email string) ([]entity.Order, error) {
	query := `SELECT id, menu_id, email, name, image, price, category, status, ordered_at FROM orders WHERE email = ?`

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]entity.Order, 0)
	for rows.Next() {
		order := entity.Order{}
		err := rows.Scan(&order.ID, &order.MenuID, &order.Email, &order.Name, &order.Image, &order.Price, &order.Category, &order.Status, &order.OrderedAt)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

// DeleteOrder removes a single order and returns the removed row. The read
// and the delete share a transaction so the returned entity matches what was
// actually removed.
func (r *OrderRepository) DeleteOrder(ctx context.Context, id int64) (*entity.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, menu_id, email, name, image, price, category, status, ordered_at FROM orders WHERE id = ?`
	order := &entity.Order{}
	err = tx.QueryRowContext(ctx, query, id).Scan(&order.ID, &order.MenuID, &order.Email, &order.Name, &order.Image, &order.Price, &order.Category, &order.Status, &order.OrderedAt)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return order, nil
}

// DeleteOrdersByIDs retires every order in ids with a single set-membership
// delete and reports how many rows went away.
func (r *OrderRepository) DeleteOrdersByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := fmt.Sprintf(`DELETE FROM orders WHERE id IN (%s)`, placeholders)

	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
