// AngelaMos | 2026
// repository.go

package site

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/driftline/diveadmin/internal/core"
)

// ErrNameTaken wraps core.ErrDuplicateKey so handlers can answer 409
// without inspecting driver errors.
var ErrNameTaken = fmt.Errorf("site name taken: %w", core.ErrDuplicateKey)

type Repository interface {
	Create(ctx context.Context, s *DiveSite) error
	GetByID(ctx context.Context, id string) (*DiveSite, error)
	List(ctx context.Context, params ListSitesParams) ([]DiveSite, int, error)
	Update(ctx context.Context, s *DiveSite) error
	Delete(ctx context.Context, id string) error
	CountDives(ctx context.Context, siteID string) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *DiveSite) error {
	query := `
		INSERT INTO dive_sites (
			id, name, location, depth_min, depth_max, description,
			difficulty_level, water_temperature, visibility
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &s.CreatedAt, query,
		s.ID,
		s.Name,
		s.Location,
		s.DepthMin,
		s.DepthMax,
		s.Description,
		s.DifficultyLevel,
		s.WaterTemperature,
		s.Visibility,
	)
	if err != nil {
		return classifyDuplicate(err, "create site")
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*DiveSite, error) {
	query := `
		SELECT id, name, location, depth_min, depth_max, description,
		       difficulty_level, water_temperature, visibility, created_at
		FROM dive_sites
		WHERE id = $1`

	var s DiveSite
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("site %s: %w", id, core.ErrNotFound)
		}
		return nil, fmt.Errorf("get site: %w", err)
	}

	return &s, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListSitesParams,
) ([]DiveSite, int, error) {
	conditions := []string{"TRUE"}
	args := []any{}

	if params.Search != "" {
		args = append(args, "%"+escapeLike(params.Search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR location ILIKE $%d)", n, n,
		))
	}

	if params.Difficulty != "" {
		args = append(args, params.Difficulty)
		conditions = append(conditions, fmt.Sprintf(
			"difficulty_level = $%d", len(args),
		))
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := "SELECT COUNT(*) FROM dive_sites " + where

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count sites: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, location, depth_min, depth_max, description,
		       difficulty_level, water_temperature, visibility, created_at
		FROM dive_sites
		%s
		ORDER BY name
		LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)

	args = append(args, params.PageSize, params.Offset())

	sites := []DiveSite{}
	if err := r.db.SelectContext(ctx, &sites, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list sites: %w", err)
	}

	return sites, total, nil
}

func (r *repository) Update(ctx context.Context, s *DiveSite) error {
	query := `
		UPDATE dive_sites
		SET name = $2,
		    location = $3,
		    depth_min = $4,
		    depth_max = $5,
		    description = $6,
		    difficulty_level = $7,
		    water_temperature = $8,
		    visibility = $9
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.Location,
		s.DepthMin,
		s.DepthMax,
		s.Description,
		s.DifficultyLevel,
		s.WaterTemperature,
		s.Visibility,
	)
	if err != nil {
		return classifyDuplicate(err, "update site")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("site %s: %w", s.ID, core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM dive_sites WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("delete site: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("site %s: %w", id, core.ErrNotFound)
	}

	return nil
}

func (r *repository) CountDives(
	ctx context.Context,
	siteID string,
) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM dives WHERE site_id = $1`, siteID,
	)
	if err != nil {
		return 0, fmt.Errorf("count dives for site: %w", err)
	}

	return count, nil
}

func classifyDuplicate(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrNameTaken
	}
	return fmt.Errorf("%s: %w", op, err)
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
