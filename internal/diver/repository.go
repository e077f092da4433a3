// AngelaMos | 2026
// repository.go

package diver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/driftline/diveadmin/internal/core"
)

type Repository interface {
	Create(ctx context.Context, d *Diver) error
	GetByID(ctx context.Context, id string) (*Diver, error)
	ListByUser(
		ctx context.Context,
		userID string,
		params ListDiversParams,
	) ([]Diver, int, error)
	Update(ctx context.Context, d *Diver) error
	DeleteCascade(ctx context.Context, id string) error
	ListEquipmentSummaries(
		ctx context.Context,
		diverID string,
	) ([]EquipmentSummary, error)
	ListCertificationSummaries(
		ctx context.Context,
		diverID string,
	) ([]CertificationSummary, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *core.Database) Repository {
	return &repository{db: database.DB}
}

func (r *repository) Create(ctx context.Context, d *Diver) error {
	query := `
		INSERT INTO divers (
			id, user_id, first_name, last_name, certification_level,
			certification_number, certification_date, experience_dives,
			phone, emergency_contact, medical_conditions
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &d.CreatedAt, query,
		d.ID,
		d.UserID,
		d.FirstName,
		d.LastName,
		d.CertificationLevel,
		d.CertificationNumber,
		d.CertificationDate,
		d.ExperienceDives,
		d.Phone,
		d.EmergencyContact,
		d.MedicalConditions,
	)
	if err != nil {
		return fmt.Errorf("create diver: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Diver, error) {
	query := `
		SELECT id, user_id, first_name, last_name, certification_level,
		       certification_number, certification_date, experience_dives,
		       phone, emergency_contact, medical_conditions, created_at
		FROM divers
		WHERE id = $1`

	var d Diver
	if err := r.db.GetContext(ctx, &d, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("diver %s: %w", id, core.ErrNotFound)
		}
		return nil, fmt.Errorf("get diver: %w", err)
	}

	return &d, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
	params ListDiversParams,
) ([]Diver, int, error) {
	conditions := []string{"user_id = $1"}
	args := []any{userID}

	if params.Search != "" {
		args = append(args, "%"+escapeLike(params.Search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d)", n, n,
		))
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := "SELECT COUNT(*) FROM divers " + where

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count divers: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, first_name, last_name, certification_level,
		       certification_number, certification_date, experience_dives,
		       phone, emergency_contact, medical_conditions, created_at
		FROM divers
		%s
		ORDER BY last_name, first_name
		LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)

	args = append(args, params.PageSize, params.Offset())

	divers := []Diver{}
	if err := r.db.SelectContext(ctx, &divers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list divers: %w", err)
	}

	return divers, total, nil
}

func (r *repository) Update(ctx context.Context, d *Diver) error {
	query := `
		UPDATE divers
		SET first_name = $2,
		    last_name = $3,
		    certification_level = $4,
		    certification_number = $5,
		    certification_date = $6,
		    experience_dives = $7,
		    phone = $8,
		    emergency_contact = $9,
		    medical_conditions = $10
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.FirstName,
		d.LastName,
		d.CertificationLevel,
		d.CertificationNumber,
		d.CertificationDate,
		d.ExperienceDives,
		d.Phone,
		d.EmergencyContact,
		d.MedicalConditions,
	)
	if err != nil {
		return fmt.Errorf("update diver: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("diver %s: %w", d.ID, core.ErrNotFound)
	}

	return nil
}

// DeleteCascade removes the diver and every row that references it in one
// transaction: equipment, certifications, and dive membership rows. Dives
// themselves survive with their remaining participants.
func (r *repository) DeleteCascade(ctx context.Context, id string) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM equipment WHERE diver_id = $1`, id,
		); err != nil {
			return fmt.Errorf("delete equipment: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM certifications WHERE diver_id = $1`, id,
		); err != nil {
			return fmt.Errorf("delete certifications: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM dive_divers WHERE diver_id = $1`, id,
		); err != nil {
			return fmt.Errorf("delete dive memberships: %w", err)
		}

		result, err := tx.ExecContext(ctx,
			`DELETE FROM divers WHERE id = $1`, id,
		)
		if err != nil {
			return fmt.Errorf("delete diver: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}

		if rows == 0 {
			return fmt.Errorf("diver %s: %w", id, core.ErrNotFound)
		}

		return nil
	})
}

func (r *repository) ListEquipmentSummaries(
	ctx context.Context,
	diverID string,
) ([]EquipmentSummary, error) {
	query := `
		SELECT id, equipment_type, brand, model, condition,
		       to_char(next_maintenance, 'YYYY-MM-DD') AS next_maintenance
		FROM equipment
		WHERE diver_id = $1
		ORDER BY equipment_type, created_at`

	items := []EquipmentSummary{}
	if err := r.db.SelectContext(ctx, &items, query, diverID); err != nil {
		return nil, fmt.Errorf("list equipment summaries: %w", err)
	}

	return items, nil
}

func (r *repository) ListCertificationSummaries(
	ctx context.Context,
	diverID string,
) ([]CertificationSummary, error) {
	query := `
		SELECT id, cert_type, agency,
		       to_char(date_issued, 'YYYY-MM-DD') AS date_issued,
		       to_char(expiration_date, 'YYYY-MM-DD') AS expiration_date
		FROM certifications
		WHERE diver_id = $1
		ORDER BY date_issued DESC`

	items := []CertificationSummary{}
	if err := r.db.SelectContext(ctx, &items, query, diverID); err != nil {
		return nil, fmt.Errorf("list certification summaries: %w", err)
	}

	return items, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
