package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/tienda-api/internal/domain/entity"
	"github.com/tu-usuario/tienda-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, product_id, order_id, quantity, total_amount, sale_date, created_at`

// Create registra una venta. Solo-inserción: nunca hay UPDATE sobre esta tabla.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, product_id, order_id, quantity, total_amount, sale_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ProductID, sale.OrderID, sale.Quantity, sale.TotalAmount, sale.SaleDate, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID retorna (nil, nil) si la venta no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.ProductID, &s.OrderID, &s.Quantity, &s.TotalAmount, &s.SaleDate, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// List lista ventas, más recientes primero.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY sale_date DESC LIMIT $1 OFFSET $2`
	return r.scanList(query, limit, offset)
}

// ListByProduct lista ventas de un producto, opcionalmente acotadas por fecha.
func (r *SaleRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE product_id = $1
		  AND ($2::timestamptz IS NULL OR sale_date >= $2)
		  AND ($3::timestamptz IS NULL OR sale_date <= $3)
		ORDER BY sale_date DESC LIMIT $4 OFFSET $5`
	return r.scanList(query, productID, from, to, limit, offset)
}

// SearchByProductName busca ventas por nombre de producto (parcial, sin mayúsculas).
func (r *SaleRepo) SearchByProductName(name string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT s.id, s.product_id, s.order_id, s.quantity, s.total_amount, s.sale_date, s.created_at
		FROM sales s
		JOIN products p ON p.id = s.product_id
		WHERE p.name ILIKE '%' || $1 || '%'
		ORDER BY s.sale_date DESC LIMIT $2 OFFSET $3`
	return r.scanList(query, name, limit, offset)
}

// DeleteByOrder elimina las ventas asociadas a una orden (cascada al borrar una orden pendiente).
func (r *SaleRepo) DeleteByOrder(orderID string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete sales by order: %w", err)
	}
	return nil
}

func (r *SaleRepo) scanList(query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.OrderID, &s.Quantity, &s.TotalAmount, &s.SaleDate, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
