package repository

import (
	"context"
	"database/sql"

	"food-order-service/internal/entity"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db}
}

// CreatePayment persists the payment row and its order/menu reference rows in
// one transaction. The UNIQUE constraint on transaction_id makes a repeated
// insert for the same external charge fail; callers detect that and take the
// already-settled path.
func (r *PaymentRepository) CreatePayment(ctx context.Context, payment *entity.Payment) (*entity.Payment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO payments (email, price, transaction_id, status, paid_at) VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, query, payment.Email, payment.Price, payment.TransactionID, payment.Status, payment.PaidAt)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	paymentID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Batch insert the order references
	orderQuery := `INSERT INTO payment_orders (payment_id, order_id) VALUES `
	var orderValues []interface{}
	for _, orderID := range payment.OrderIDs {
		orderQuery += "(?, ?),"
		orderValues = append(orderValues, paymentID, orderID)
	}
	orderQuery = orderQuery[:len(orderQuery)-1]

	_, err = tx.ExecContext(ctx, orderQuery, orderValues...)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Batch insert the menu references
	menuQuery := `INSERT INTO payment_menu_items (payment_id, menu_id) VALUES `
	var menuValues []interface{}
	for _, menuID := range payment.MenuIDs {
		menuQuery += "(?, ?),"
		menuValues = append(menuValues, paymentID, menuID)
	}
	menuQuery = menuQuery[:len(menuQuery)-1]

	_, err = tx.ExecContext(ctx, menuQuery, menuValues...)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	payment.ID = paymentID
	return payment, nil
}

func (r *PaymentRepository) GetPaymentByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	query := `SELECT id, email, price, transaction_id, status, paid_at FROM payments WHERE transaction_id = ?`

	payment := &entity.Payment{}
	err := r.db.QueryRowContext(ctx, query, transactionID).Scan(&payment.ID, &payment.Email, &payment.Price, &payment.TransactionID, &payment.Status, &payment.PaidAt)
	if err != nil {
		return nil, err
	}

	if err := r.loadReferences(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

func (r *PaymentRepository) GetPaymentsByEmail(ctx context.Context, email string) ([]entity.Payment, error) {
	query := `SELECT id, email, price, transaction_id, status, paid_at FROM payments WHERE email = ?`

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]entity.Payment, 0)
	for rows.Next() {
		payment := entity.Payment{}
		err := rows.Scan(&payment.ID, &payment.Email, &payment.Price, &payment.TransactionID, &payment.Status, &payment.PaidAt)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range payments {
		if err := r.loadReferences(ctx, &payments[i]); err != nil {
			return nil, err
		}
	}

	return payments, nil
}

// loadReferences fills OrderIDs and MenuIDs in insertion order.
func (r *PaymentRepository) loadReferences(ctx context.Context, payment *entity.Payment) error {
	orderRows, err := r.db.QueryContext(ctx, `SELECT order_id FROM payment_orders WHERE payment_id = ? ORDER BY id`, payment.ID)
	if err != nil {
		return err
	}
	defer orderRows.Close()

	for orderRows.Next() {
		var orderID int64
		if err := orderRows.Scan(&orderID); err != nil {
			return err
		}
		payment.OrderIDs = append(payment.OrderIDs, orderID)
	}
	if err := orderRows.Err(); err != nil {
		return err
	}

	menuRows, err := r.db.QueryContext(ctx, `SELECT menu_id FROM payment_menu_items WHERE payment_id = ? ORDER BY id`, payment.ID)
	if err != nil {
		return err
	}
	defer menuRows.Close()

	for menuRows.Next() {
		var menuID int64
		if err := menuRows.Scan(&menuID); err != nil {
			return err
		}
		payment.MenuIDs = append(payment.MenuIDs, menuID)
	}

	return menuRows.Err()
}
