package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/tienda-api/internal/domain"
	"github.com/tu-usuario/tienda-api/internal/domain/entity"
	"github.com/tu-usuario/tienda-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL
// (usable con pool o tx). Las mutaciones de cantidad son UPDATEs condicionales:
// la condición y el cambio viajan en el mismo statement, así el invariante
// quantity >= 0 se sostiene bajo concurrencia sin lecturas previas.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, product_id, quantity, warehouse_location, created_at, updated_at`

// Create persiste un registro de inventario (product_id único).
func (r *InventoryRepo) Create(record *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (id, product_id, quantity, warehouse_location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.ProductID, record.Quantity, record.WarehouseLocation,
		record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID. Retorna (nil, nil) si no existe.
func (r *InventoryRepo) GetByID(id string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get inventory record")
}

// GetByProduct obtiene el registro de un producto.
func (r *InventoryRepo) GetByProduct(productID string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records WHERE product_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID), "get inventory by product")
}

func (r *InventoryRepo) scanOne(row pgx.Row, op string) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	err := row.Scan(&rec.ID, &rec.ProductID, &rec.Quantity, &rec.WarehouseLocation, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &rec, nil
}

// List lista registros de inventario con paginación.
func (r *InventoryRepo) List(limit, offset int) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.Quantity, &rec.WarehouseLocation, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// UpdateLocation actualiza la ubicación de bodega.
func (r *InventoryRepo) UpdateLocation(id, warehouseLocation string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE inventory_records SET warehouse_location = $2, updated_at = now() WHERE id = $1`,
		id, warehouseLocation,
	)
	if err != nil {
		return fmt.Errorf("update inventory location: %w", err)
	}
	return nil
}

// Delete elimina un registro de inventario.
func (r *InventoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory record: %w", err)
	}
	return nil
}

// DecrementIfAvailable descuenta qty solo si alcanza el stock, en un paso atómico.
func (r *InventoryRepo) DecrementIfAvailable(productID string, qty int64) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE inventory_records SET quantity = quantity - $2, updated_at = now()
		 WHERE product_id = $1 AND quantity >= $2`,
		productID, qty,
	)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Increment devuelve qty al stock (release de una reserva o restauración).
func (r *InventoryRepo) Increment(productID string, qty int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE inventory_records SET quantity = quantity + $2, updated_at = now()
		 WHERE product_id = $1`,
		productID, qty,
	)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustIfNonNegative aplica delta solo si el resultado queda >= 0.
func (r *InventoryRepo) AdjustIfNonNegative(productID string, delta int64) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE inventory_records SET quantity = quantity + $2, updated_at = now()
		 WHERE product_id = $1 AND quantity + $2 >= 0`,
		productID, delta,
	)
	if err != nil {
		return false, fmt.Errorf("adjust stock: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
