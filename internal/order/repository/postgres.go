package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/donarib/storefront-service/internal/model"
	"github.com/jmoiron/sqlx"
)

const orderColumns = `id, items, total, delivery_type, payment_method, customer_name,
	delivery_street, address, status, note, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	query := `
        INSERT INTO orders (
            id, items, total, delivery_type, payment_method, customer_name,
            delivery_street, address, status, note, created_at, updated_at
        )
        VALUES (
            :id, :items, :total, :delivery_type, :payment_method, :customer_name,
            :delivery_street, :address, :status, :note, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, o)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &o, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) FindByStatus(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
	orders := []model.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1 ORDER BY created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	if err := r.DB.SelectContext(ctx, &orders, query, status); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PGRepository) FindByStatusSince(ctx context.Context, status model.OrderStatus, since time.Time) ([]model.Order, error) {
	orders := []model.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1 AND created_at >= $2 ORDER BY created_at DESC`
	if err := r.DB.SelectContext(ctx, &orders, query, status, since); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus, at time.Time) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		to, at, id, from,
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *PGRepository) UpdateNote(ctx context.Context, id, note string, at time.Time) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE orders SET note = $1, updated_at = $2 WHERE id = $3`,
		note, at, id,
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
