// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/driftline/diveadmin/internal/core"
)

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) StatsRepository {
	return &repository{db: db}
}

func (r *repository) ClubStats(ctx context.Context) (*ClubStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE deleted_at IS NULL) AS users,
			(SELECT COUNT(*) FROM divers) AS divers,
			(SELECT COUNT(*) FROM dive_sites) AS dive_sites,
			(SELECT COUNT(*) FROM dives) AS dives,
			(SELECT COUNT(*) FROM equipment) AS equipment,
			(SELECT COUNT(*) FROM certifications) AS certifications`

	var stats struct {
		Users          int `db:"users"`
		Divers         int `db:"divers"`
		DiveSites      int `db:"dive_sites"`
		Dives          int `db:"dives"`
		Equipment      int `db:"equipment"`
		Certifications int `db:"certifications"`
	}

	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("club stats: %w", err)
	}

	return &ClubStats{
		Users:          stats.Users,
		Divers:         stats.Divers,
		DiveSites:      stats.DiveSites,
		Dives:          stats.Dives,
		Equipment:      stats.Equipment,
		Certifications: stats.Certifications,
	}, nil
}
