// AngelaMos | 2026
// repository.go

package equipment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/driftline/diveadmin/internal/core"
)

type Repository interface {
	Create(ctx context.Context, e *Equipment) error
	GetByID(ctx context.Context, id string) (*Equipment, error)
	ListByUser(
		ctx context.Context,
		userID string,
		params ListEquipmentParams,
	) ([]Equipment, int, error)
	Update(ctx context.Context, e *Equipment) error
	Delete(ctx context.Context, id string) error
	GetDiverOwner(ctx context.Context, diverID string) (string, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Equipment) error {
	query := `
		INSERT INTO equipment (
			id, diver_id, equipment_type, brand, model, serial_number,
			purchase_date, last_maintenance, next_maintenance, condition
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &e.CreatedAt, query,
		e.ID,
		e.DiverID,
		e.EquipmentType,
		e.Brand,
		e.Model,
		e.SerialNumber,
		e.PurchaseDate,
		e.LastMaintenance,
		e.NextMaintenance,
		e.Condition,
	)
	if err != nil {
		return fmt.Errorf("create equipment: %w", err)
	}

	return nil
}

// GetByID joins divers to carry the owning user alongside the row, so the
// service can enforce ownership without a second query.
func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Equipment, error) {
	query := `
		SELECT e.id, e.diver_id, e.equipment_type, e.brand, e.model,
		       e.serial_number, e.purchase_date, e.last_maintenance,
		       e.next_maintenance, e.condition, e.created_at,
		       dv.user_id AS owner_user_id
		FROM equipment e
		JOIN divers dv ON dv.id = e.diver_id
		WHERE e.id = $1`

	var e Equipment
	if err := r.db.GetContext(ctx, &e, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("equipment %s: %w", id, core.ErrNotFound)
		}
		return nil, fmt.Errorf("get equipment: %w", err)
	}

	return &e, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
	params ListEquipmentParams,
) ([]Equipment, int, error) {
	conditions := []string{"dv.user_id = $1"}
	args := []any{userID}

	if params.DiverID != "" {
		args = append(args, params.DiverID)
		conditions = append(conditions, fmt.Sprintf(
			"e.diver_id = $%d", len(args),
		))
	}

	if params.Type != "" {
		args = append(args, params.Type)
		conditions = append(conditions, fmt.Sprintf(
			"e.equipment_type = $%d", len(args),
		))
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM equipment e
		JOIN divers dv ON dv.id = e.diver_id ` + where

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count equipment: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT e.id, e.diver_id, e.equipment_type, e.brand, e.model,
		       e.serial_number, e.purchase_date, e.last_maintenance,
		       e.next_maintenance, e.condition, e.created_at,
		       dv.user_id AS owner_user_id
		FROM equipment e
		JOIN divers dv ON dv.id = e.diver_id
		%s
		ORDER BY e.equipment_type, e.created_at
		LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)

	args = append(args, params.PageSize, params.Offset())

	items := []Equipment{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list equipment: %w", err)
	}

	return items, total, nil
}

func (r *repository) Update(ctx context.Context, e *Equipment) error {
	query := `
		UPDATE equipment
		SET equipment_type = $2,
		    brand = $3,
		    model = $4,
		    serial_number = $5,
		    purchase_date = $6,
		    last_maintenance = $7,
		    next_maintenance = $8,
		    condition = $9
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.EquipmentType,
		e.Brand,
		e.Model,
		e.SerialNumber,
		e.PurchaseDate,
		e.LastMaintenance,
		e.NextMaintenance,
		e.Condition,
	)
	if err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("equipment %s: %w", e.ID, core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM equipment WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("equipment %s: %w", id, core.ErrNotFound)
	}

	return nil
}

func (r *repository) GetDiverOwner(
	ctx context.Context,
	diverID string,
) (string, error) {
	var ownerID string
	err := r.db.GetContext(ctx, &ownerID,
		`SELECT user_id FROM divers WHERE id = $1`, diverID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("diver %s: %w", diverID, core.ErrNotFound)
		}
		return "", fmt.Errorf("get diver owner: %w", err)
	}

	return ownerID, nil
}
