package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/donarib/storefront-service/internal/ingredient/dto"
	"github.com/donarib/storefront-service/internal/model"
	"github.com/jmoiron/sqlx"
)

const ingredientColumns = `id, name, quantity, unit, min_stock, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, i *model.Ingredient) error {
	query := `
        INSERT INTO ingredients (id, name, quantity, unit, min_stock, created_at, updated_at)
        VALUES (:id, :name, :quantity, :unit, :min_stock, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, i)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Ingredient, error) {
	var i model.Ingredient
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &i, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.IngredientFilters) ([]model.Ingredient, error) {
	items := []model.Ingredient{}
	query := `SELECT ` + ingredientColumns + ` FROM ingredients`
	if f != nil && f.LowStock {
		query += ` WHERE quantity <= min_stock`
	}
	query += ` ORDER BY name ASC`

	if err := r.DB.SelectContext(ctx, &items, query); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PGRepository) Update(ctx context.Context, i *model.Ingredient) (bool, error) {
	query := `
        UPDATE ingredients
        SET name = :name,
            quantity = :quantity,
            unit = :unit,
            min_stock = :min_stock,
            updated_at = :updated_at
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, i)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM ingredients WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *PGRepository) SetQuantity(ctx context.Context, id string, quantity float64, at time.Time) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE ingredients SET quantity = $1, updated_at = $2 WHERE id = $3",
		quantity, at, id,
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
