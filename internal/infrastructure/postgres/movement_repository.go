package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo log de movimientos: sólo inserción y lectura.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementSelect = `
	SELECT m.id, m.type, m.quantity, m.product_location_id, m.target_product_location_id, m.user_id, m.notes, m.created_at,
	       pl.product_id, pl.location_id, p.sku, p.name, l.name,
	       tpl.product_id, tpl.location_id, tp.sku, tp.name, tl.name,
	       u.email, u.name, u.role
	FROM movements m
	JOIN product_locations pl ON pl.id = m.product_location_id
	JOIN products p ON p.id = pl.product_id
	JOIN locations l ON l.id = pl.location_id
	LEFT JOIN product_locations tpl ON tpl.id = m.target_product_location_id
	LEFT JOIN products tp ON tp.id = tpl.product_id
	LEFT JOIN locations tl ON tl.id = tpl.location_id
	JOIN users u ON u.id = m.user_id`

// nullableTarget columnas del LEFT JOIN del destino de un TRANSFER.
type nullableTarget struct {
	ProductID, LocationID          *int64
	SKU, ProductName, LocationName *string
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var (
		m      entity.Movement
		mType  string
		src    entity.ProductLocation
		srcP   entity.Product
		srcL   entity.Location
		target nullableTarget
		u      entity.User
	)
	err := row.Scan(
		&m.ID, &mType, &m.Quantity, &m.ProductLocationID, &m.TargetProductLocationID, &m.UserID, &m.Notes, &m.CreatedAt,
		&src.ProductID, &src.LocationID, &srcP.SKU, &srcP.Name, &srcL.Name,
		&target.ProductID, &target.LocationID, &target.SKU, &target.ProductName, &target.LocationName,
		&u.Email, &u.Name, &u.Role,
	)
	if err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(mType)

	src.ID = m.ProductLocationID
	srcP.ID, srcL.ID = src.ProductID, src.LocationID
	src.Product, src.Location = &srcP, &srcL
	m.ProductLocation = &src

	if m.TargetProductLocationID != nil && target.ProductID != nil {
		m.TargetProductLocation = &entity.ProductLocation{
			ID:         *m.TargetProductLocationID,
			ProductID:  *target.ProductID,
			LocationID: *target.LocationID,
			Product:    &entity.Product{ID: *target.ProductID, SKU: deref(target.SKU), Name: deref(target.ProductName)},
			Location:   &entity.Location{ID: *target.LocationID, Name: deref(target.LocationName)},
		}
	}

	u.ID = m.UserID
	m.User = &u
	return &m, nil
}

// Create inserta el movimiento; la base asigna ID y created_at.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (type, quantity, product_location_id, target_product_location_id, user_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		string(m.Type), m.Quantity, m.ProductLocationID, m.TargetProductLocationID, m.UserID, m.Notes,
	).Scan(&m.ID, &m.CreatedAt)
	return mapWriteErr("insert movement", err, false)
}

// GetByID obtiene un movimiento con sus datos de lectura.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, movementSelect+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List filtra el historial. Un contador, producto o ubicación coincide tanto en origen como en destino.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(args))))
	}
	if f.Type != "" {
		add("m.type = ?", string(f.Type))
	}
	if f.ProductLocationID > 0 {
		add("(m.product_location_id = ? OR m.target_product_location_id = ?)", f.ProductLocationID)
	}
	if f.ProductID > 0 {
		add("(pl.product_id = ? OR tpl.product_id = ?)", f.ProductID)
	}
	if f.LocationID > 0 {
		add("(pl.location_id = ? OR tpl.location_id = ?)", f.LocationID)
	}
	if f.From != nil {
		add("m.created_at >= ?", *f.From)
	}
	if f.To != nil {
		add("m.created_at <= ?", *f.To)
	}

	query := movementSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY m.created_at DESC, m.id DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ExistsForProductLocation indica si algún movimiento referencia el contador (origen o destino).
func (r *MovementRepo) ExistsForProductLocation(ctx context.Context, productLocationID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM movements
			WHERE product_location_id = $1 OR target_product_location_id = $1
		)`, productLocationID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("movements exist for product location: %w", err)
	}
	return exists, nil
}

// ExistsForUser indica si el usuario registró movimientos.
func (r *MovementRepo) ExistsForUser(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movements WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("movements exist for user: %w", err)
	}
	return exists, nil
}
