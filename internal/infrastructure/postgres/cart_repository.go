package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/tienda-api/internal/domain/entity"
	"github.com/tu-usuario/tienda-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación del puerto CartRepository sobre PostgreSQL (usable con pool o tx).
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador de persistencia para carritos. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// GetOrCreateByCustomer retorna el carrito del cliente, creándolo si no existe.
// El upsert sobre customer_id (único) hace la operación segura bajo concurrencia.
func (r *CartRepo) GetOrCreateByCustomer(customerID string) (*entity.Cart, error) {
	now := time.Now()
	query := `
		INSERT INTO carts (id, customer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (customer_id) DO UPDATE SET updated_at = EXCLUDED.updated_at
		RETURNING id, customer_id, created_at, updated_at`
	var c entity.Cart
	err := r.q.QueryRow(context.Background(), query, uuid.New().String(), customerID, now).Scan(
		&c.ID, &c.CustomerID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert cart: %w", err)
	}
	return &c, nil
}

// GetByCustomer obtiene el carrito de un cliente. Retorna (nil, nil) si no existe.
func (r *CartRepo) GetByCustomer(customerID string) (*entity.Cart, error) {
	query := `SELECT id, customer_id, created_at, updated_at FROM carts WHERE customer_id = $1`
	var c entity.Cart
	err := r.q.QueryRow(context.Background(), query, customerID).Scan(
		&c.ID, &c.CustomerID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return &c, nil
}

const cartLineColumns = `id, cart_id, product_id, quantity, created_at, updated_at`

// GetLine obtiene la línea de un producto dentro de un carrito. Retorna (nil, nil) si no existe.
func (r *CartRepo) GetLine(cartID, productID string) (*entity.CartLine, error) {
	query := `SELECT ` + cartLineColumns + ` FROM cart_lines WHERE cart_id = $1 AND product_id = $2`
	return r.scanLine(r.q.QueryRow(context.Background(), query, cartID, productID), "get cart line")
}

// GetLineByID obtiene una línea por su ID.
func (r *CartRepo) GetLineByID(lineID string) (*entity.CartLine, error) {
	query := `SELECT ` + cartLineColumns + ` FROM cart_lines WHERE id = $1`
	return r.scanLine(r.q.QueryRow(context.Background(), query, lineID), "get cart line by id")
}

func (r *CartRepo) scanLine(row pgx.Row, op string) (*entity.CartLine, error) {
	var l entity.CartLine
	err := row.Scan(&l.ID, &l.CartID, &l.ProductID, &l.Quantity, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &l, nil
}

// UpsertLine inserta la línea o, si (cart_id, product_id) ya existe, suma la
// cantidad sobre el valor persistido. El incremento ocurre dentro del UPDATE:
// dos agregados concurrentes del mismo producto no se pisan.
func (r *CartRepo) UpsertLine(line *entity.CartLine) error {
	query := `
		INSERT INTO cart_lines (id, cart_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.CartID, line.ProductID, line.Quantity, line.CreatedAt, line.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert cart line: %w", err)
	}
	return nil
}

// ListLines lista las líneas de un carrito.
func (r *CartRepo) ListLines(cartID string) ([]*entity.CartLine, error) {
	query := `SELECT ` + cartLineColumns + ` FROM cart_lines WHERE cart_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.CartLine
	for rows.Next() {
		var l entity.CartLine
		if err := rows.Scan(&l.ID, &l.CartID, &l.ProductID, &l.Quantity, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// DeleteLine elimina una línea por ID.
func (r *CartRepo) DeleteLine(lineID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cart_lines WHERE id = $1`, lineID)
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	return nil
}

// DeleteLines elimina todas las líneas de un carrito.
func (r *CartRepo) DeleteLines(cartID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cart_lines WHERE cart_id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("clear cart lines: %w", err)
	}
	return nil
}
