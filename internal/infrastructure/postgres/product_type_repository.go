package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductTypeRepository = (*ProductTypeRepo)(nil)

// ProductTypeRepo implementación del puerto ProductTypeRepository sobre PostgreSQL.
type ProductTypeRepo struct {
	q Querier
}

// NewProductTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductTypeRepository(q Querier) *ProductTypeRepo {
	return &ProductTypeRepo{q: q}
}

// Create persiste un tipo nuevo; el id lo asigna la secuencia.
func (r *ProductTypeRepo) Create(t *entity.ProductType) error {
	query := `
		INSERT INTO product_types (name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		t.Name, t.Description, t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product type: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo por id, o nil si no existe.
func (r *ProductTypeRepo) GetByID(id int64) (*entity.ProductType, error) {
	var t entity.ProductType
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, description, created_at, updated_at FROM product_types WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product type: %w", err)
	}
	return &t, nil
}

// Update actualiza nombre y descripción.
func (r *ProductTypeRepo) Update(t *entity.ProductType) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE product_types SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		t.ID, t.Name, t.Description, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product type: %w", err)
	}
	return nil
}

// List filtra por búsqueda con paginación y devuelve el total sin paginar.
func (r *ProductTypeRepo) List(search string, limit, offset int) ([]*entity.ProductType, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	pos := 1
	if search != "" {
		where += fmt.Sprintf(" AND (unaccent(name) ILIKE unaccent($%d) OR unaccent(description) ILIKE unaccent($%d))", pos, pos)
		args = append(args, "%"+search+"%")
		pos++
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM product_types`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count product types: %w", err)
	}

	query := `SELECT id, name, description, created_at, updated_at FROM product_types` + where + ` ORDER BY id ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list product types: %w", err)
	}
	defer rows.Close()

	list, err := collectProductTypes(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll devuelve todos los tipos ordenados por id.
func (r *ProductTypeRepo) ListAll() ([]*entity.ProductType, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, description, created_at, updated_at FROM product_types ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list all product types: %w", err)
	}
	defer rows.Close()
	return collectProductTypes(rows)
}

// Delete elimina el tipo; silencioso si no existe.
func (r *ProductTypeRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM product_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product type: %w", err)
	}
	return nil
}

func collectProductTypes(rows pgx.Rows) ([]*entity.ProductType, error) {
	var list []*entity.ProductType
	for rows.Next() {
		var t entity.ProductType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product type: %w", err)
		}
		list = append(list, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product types: %w", err)
	}
	return list, nil
}
