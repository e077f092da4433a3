// AngelaMos | 2026
// repository.go

package dashboard

import (
	"context"
	"fmt"

	"github.com/driftline/diveadmin/internal/core"
)

type Repository interface {
	CountDivers(ctx context.Context, userID string) (int, error)
	CountDives(ctx context.Context, userID string) (int, error)
	CountEquipment(ctx context.Context, userID string) (int, error)
	CountCertifications(ctx context.Context, userID string) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) CountDivers(
	ctx context.Context,
	userID string,
) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM divers WHERE user_id = $1`, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("count divers: %w", err)
	}

	return count, nil
}

// CountDives counts distinct dives: a dive with several of the user's
// divers aboard is still one dive.
func (r *repository) CountDives(
	ctx context.Context,
	userID string,
) (int, error) {
	query := `
		SELECT COUNT(DISTINCT dd.dive_id)
		FROM dive_divers dd
		JOIN divers dv ON dv.id = dd.diver_id
		WHERE dv.user_id = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count dives: %w", err)
	}

	return count, nil
}

func (r *repository) CountEquipment(
	ctx context.Context,
	userID string,
) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM equipment e
		JOIN divers dv ON dv.id = e.diver_id
		WHERE dv.user_id = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count equipment: %w", err)
	}

	return count, nil
}

func (r *repository) CountCertifications(
	ctx context.Context,
	userID string,
) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM certifications c
		JOIN divers dv ON dv.id = c.diver_id
		WHERE dv.user_id = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count certifications: %w", err)
	}

	return count, nil
}
