package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crud-backends/internal/domain"
)

// DrinkRepository encapsulates drink persistence. Recipes are stored as jsonb.
type DrinkRepository interface {
	Create(ctx context.Context, drink *domain.Drink) error
	Update(ctx context.Context, drink *domain.Drink) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Drink, error)
	List(ctx context.Context) ([]domain.Drink, error)
}

type drinkRepository struct {
	pool *pgxpool.Pool
}

// NewDrinkRepository instantiates repository.
func NewDrinkRepository(pool *pgxpool.Pool) DrinkRepository {
	return &drinkRepository{pool: pool}
}

func (r *drinkRepository) Create(ctx context.Context, drink *domain.Drink) error {
	const query = `INSERT INTO drinks (title, recipe) VALUES ($1,$2) RETURNING id`
	return r.pool.QueryRow(ctx, query, drink.Title, recipeValue(drink.Recipe)).Scan(&drink.ID)
}

func (r *drinkRepository) Update(ctx context.Context, drink *domain.Drink) error {
	const query = `UPDATE drinks SET title=$1, recipe=$2 WHERE id=$3`
	return expectRows(r.pool.Exec(ctx, query, drink.Title, recipeValue(drink.Recipe), drink.ID))
}

func (r *drinkRepository) Delete(ctx context.Context, id int64) error {
	return expectRows(r.pool.Exec(ctx, `DELETE FROM drinks WHERE id=$1`, id))
}

func (r *drinkRepository) GetByID(ctx context.Context, id int64) (*domain.Drink, error) {
	var d domain.Drink
	if err := r.pool.QueryRow(ctx, `SELECT id, title, recipe FROM drinks WHERE id=$1`, id).Scan(&d.ID, &d.Title, &d.Recipe); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *drinkRepository) List(ctx context.Context) ([]domain.Drink, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, recipe FROM drinks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Drink
	for rows.Next() {
		var d domain.Drink
		if err := rows.Scan(&d.ID, &d.Title, &d.Recipe); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// recipeValue keeps an empty recipe encoding as [] rather than null.
func recipeValue(recipe []domain.Ingredient) []domain.Ingredient {
	if recipe == nil {
		return []domain.Ingredient{}
	}
	return recipe
}
