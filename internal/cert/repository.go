// AngelaMos | 2026
// repository.go

package cert

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/driftline/diveadmin/internal/core"
)

type Repository interface {
	Create(ctx context.Context, c *Certification) error
	GetByID(ctx context.Context, id string) (*Certification, error)
	ListByUser(
		ctx context.Context,
		userID string,
		params ListCertificationsParams,
	) ([]Certification, int, error)
	Update(ctx context.Context, c *Certification) error
	Delete(ctx context.Context, id string) error
	GetDiverOwner(ctx context.Context, diverID string) (string, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Certification) error {
	query := `
		INSERT INTO certifications (
			id, diver_id, cert_type, agency, date_issued,
			expiration_date, cert_number
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &c.CreatedAt, query,
		c.ID,
		c.DiverID,
		c.CertType,
		c.Agency,
		c.DateIssued,
		c.ExpirationDate,
		c.CertNumber,
	)
	if err != nil {
		return fmt.Errorf("create certification: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Certification, error) {
	query := `
		SELECT c.id, c.diver_id, c.cert_type, c.agency, c.date_issued,
		       c.expiration_date, c.cert_number, c.created_at,
		       dv.user_id AS owner_user_id
		FROM certifications c
		JOIN divers dv ON dv.id = c.diver_id
		WHERE c.id = $1`

	var c Certification
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("certification %s: %w", id, core.ErrNotFound)
		}
		return nil, fmt.Errorf("get certification: %w", err)
	}

	return &c, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
	params ListCertificationsParams,
) ([]Certification, int, error) {
	conditions := []string{"dv.user_id = $1"}
	args := []any{userID}

	if params.DiverID != "" {
		args = append(args, params.DiverID)
		conditions = append(conditions, fmt.Sprintf(
			"c.diver_id = $%d", len(args),
		))
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM certifications c
		JOIN divers dv ON dv.id = c.diver_id ` + where

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count certifications: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT c.id, c.diver_id, c.cert_type, c.agency, c.date_issued,
		       c.expiration_date, c.cert_number, c.created_at,
		       dv.user_id AS owner_user_id
		FROM certifications c
		JOIN divers dv ON dv.id = c.diver_id
		%s
		ORDER BY c.date_issued DESC
		LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)

	args = append(args, params.PageSize, params.Offset())

	certs := []Certification{}
	if err := r.db.SelectContext(ctx, &certs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list certifications: %w", err)
	}

	return certs, total, nil
}

func (r *repository) Update(ctx context.Context, c *Certification) error {
	query := `
		UPDATE certifications
		SET cert_type = $2,
		    agency = $3,
		    date_issued = $4,
		    expiration_date = $5,
		    cert_number = $6
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.CertType,
		c.Agency,
		c.DateIssued,
		c.ExpirationDate,
		c.CertNumber,
	)
	if err != nil {
		return fmt.Errorf("update certification: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("certification %s: %w", c.ID, core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM certifications WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("delete certification: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("certification %s: %w", id, core.ErrNotFound)
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
