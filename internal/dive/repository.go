// AngelaMos | 2026
// repository.go

package dive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/driftline/diveadmin/internal/core"
)

type Repository interface {
	CreateWithDivers(
		ctx context.Context,
		d *Dive,
		userID string,
		diverIDs []string,
	) ([]string, error)
	GetByID(ctx context.Context, id string) (*Dive, error)
	ListVisible(
		ctx context.Context,
		userID string,
		params ListDivesParams,
	) ([]Dive, int, error)
	Update(ctx context.Context, d *Dive) error
	Delete(ctx context.Context, id string) error
	ListParticipants(ctx context.Context, diveID string) ([]Participant, error)
	UserOwnsParticipant(
		ctx context.Context,
		userID, diveID string,
	) (bool, error)
	FilterOwnedDiverIDs(
		ctx context.Context,
		userID string,
		diverIDs []string,
	) ([]string, error)
	Attach(ctx context.Context, diveID string, diverIDs []string) error
	Detach(ctx context.Context, diveID, diverID string) (bool, error)
	SiteExists(ctx context.Context, siteID string) (bool, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *core.Database) Repository {
	return &repository{db: database.DB}
}

// CreateWithDivers inserts the dive row and its membership rows in one
// transaction. Requested divers not owned by userID are silently dropped,
// only the attached subset is returned.
func (r *repository) CreateWithDivers(
	ctx context.Context,
	d *Dive,
	userID string,
	diverIDs []string,
) ([]string, error) {
	var attached []string

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO dives (
				id, site_id, dive_date, duration_minutes, max_depth,
				air_used, conditions, notes
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8
			)
			RETURNING created_at`

		err := tx.GetContext(ctx, &d.CreatedAt, query,
			d.ID,
			d.SiteID,
			d.DiveDate,
			d.DurationMinutes,
			d.MaxDepth,
			d.AirUsed,
			d.Conditions,
			d.Notes,
		)
		if err != nil {
			return fmt.Errorf("create dive: %w", err)
		}

		attached, err = filterOwned(ctx, tx, userID, diverIDs)
		if err != nil {
			return err
		}

		for _, diverID := range attached {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO dive_divers (dive_id, diver_id)
				 VALUES ($1, $2)
				 ON CONFLICT DO NOTHING`,
				d.ID, diverID,
			); err != nil {
				return fmt.Errorf("attach diver %s: %w", diverID, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return attached, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Dive, error) {
	query := `
		SELECT id, site_id, dive_date, duration_minutes, max_depth,
		       air_used, conditions, notes, created_at
		FROM dives
		WHERE id = $1`

	var d Dive
	if err := r.db.GetContext(ctx, &d, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("dive %s: %w", id, core.ErrNotFound)
		}
		return nil, fmt.Errorf("get dive: %w", err)
	}

	return &d, nil
}

// ListVisible returns dives where at least one of the user's divers is a
// participant.
func (r *repository) ListVisible(
	ctx context.Context,
	userID string,
	params ListDivesParams,
) ([]Dive, int, error) {
	visible := `
		EXISTS (
			SELECT 1
			FROM dive_divers dd
			JOIN divers dv ON dv.id = dd.diver_id
			WHERE dd.dive_id = d.id AND dv.user_id = $1
		)`

	args := []any{userID}
	where := "WHERE " + visible

	if params.SiteID != "" {
		args = append(args, params.SiteID)
		where += fmt.Sprintf(" AND d.site_id = $%d", len(args))
	}

	countQuery := "SELECT COUNT(*) FROM dives d " + where

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count dives: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT d.id, d.site_id, d.dive_date, d.duration_minutes,
		       d.max_depth, d.air_used, d.conditions, d.notes, d.created_at
		FROM dives d
		%s
		ORDER BY d.dive_date DESC
		LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)

	args = append(args, params.PageSize, params.Offset())

	dives := []Dive{}
	if err := r.db.SelectContext(ctx, &dives, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list dives: %w", err)
	}

	return dives, total, nil
}

func (r *repository) Update(ctx context.Context, d *Dive) error {
	query := `
		UPDATE dives
		SET site_id = $2,
		    dive_date = $3,
		    duration_minutes = $4,
		    max_depth = $5,
		    air_used = $6,
		    conditions = $7,
		    notes = $8
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.SiteID,
		d.DiveDate,
		d.DurationMinutes,
		d.MaxDepth,
		d.AirUsed,
		d.Conditions,
		d.Notes,
	)
	if err != nil {
		return fmt.Errorf("update dive: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("dive %s: %w", d.ID, core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM dive_divers WHERE dive_id = $1`, id,
		); err != nil {
			return fmt.Errorf("delete dive memberships: %w", err)
		}

		result, err := tx.ExecContext(ctx,
			`DELETE FROM dives WHERE id = $1`, id,
		)
		if err != nil {
			return fmt.Errorf("delete dive: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}

		if rows == 0 {
			return fmt.Errorf("dive %s: %w", id, core.ErrNotFound)
		}

		return nil
	})
}

func (r *repository) ListParticipants(
	ctx context.Context,
	diveID string,
) ([]Participant, error) {
	query := `
		SELECT dv.id AS diver_id, dv.first_name, dv.last_name
		FROM dive_divers dd
		JOIN divers dv ON dv.id = dd.diver_id
		WHERE dd.dive_id = $1
		ORDER BY dv.last_name, dv.first_name`

	participants := []Participant{}
	if err := r.db.SelectContext(ctx, &participants, query, diveID); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	return participants, nil
}

func (r *repository) UserOwnsParticipant(
	ctx context.Context,
	userID, diveID string,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM dive_divers dd
			JOIN divers dv ON dv.id = dd.diver_id
			WHERE dd.dive_id = $1 AND dv.user_id = $2
		)`

	var owns bool
	if err := r.db.GetContext(ctx, &owns, query, diveID, userID); err != nil {
		return false, fmt.Errorf("check dive ownership: %w", err)
	}

	return owns, nil
}

func (r *repository) FilterOwnedDiverIDs(
	ctx context.Context,
	userID string,
	diverIDs []string,
) ([]string, error) {
	return filterOwned(ctx, r.db, userID, diverIDs)
}

func (r *repository) Attach(
	ctx context.Context,
	diveID string,
	diverIDs []string,
) error {
	for _, diverID := range diverIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO dive_divers (dive_id, diver_id)
			 VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`,
			diveID, diverID,
		); err != nil {
			return fmt.Errorf("attach diver %s: %w", diverID, err)
		}
	}

	return nil
}

func (r *repository) Detach(
	ctx context.Context,
	diveID, diverID string,
) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM dive_divers WHERE dive_id = $1 AND diver_id = $2`,
		diveID, diverID,
	)
	if err != nil {
		return false, fmt.Errorf("detach diver: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	return rows > 0, nil
}

func (r *repository) SiteExists(
	ctx context.Context,
	siteID string,
) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM dive_sites WHERE id = $1)`, siteID,
	)
	if err != nil {
		return false, fmt.Errorf("check site: %w", err)
	}

	return exists, nil
}

func filterOwned(
	ctx context.Context,
	db core.DBTX,
	userID string,
	diverIDs []string,
) ([]string, error) {
	if len(diverIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(
		`SELECT id FROM divers WHERE user_id = ? AND id IN (?)`,
		userID, diverIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("build owned-diver query: %w", err)
	}

	query = sqlx.Rebind(sqlx.DOLLAR, query)

	owned := []string{}
	if err := db.SelectContext(ctx, &owned, query, args...); err != nil {
		return nil, fmt.Errorf("filter owned divers: %w", err)
	}

	return owned, nil
}
