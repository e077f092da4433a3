// AngelaMos | 2026
// entity.go

package site

import (
	"time"
)

// DiveSite is club-wide reference data: every authenticated user can read
// sites, only admins can write them.
type DiveSite struct {
	ID               string    `db:"id"`
	Name             string    `db:"name"`
	Location         string    `db:"location"`
	DepthMin         *float64  `db:"depth_min"`
	DepthMax         *float64  `db:"depth_max"`
	Description      *string   `db:"description"`
	DifficultyLevel  *string   `db:"difficulty_level"`
	WaterTemperature *float64  `db:"water_temperature"`
	Visibility       *string   `db:"visibility"`
	CreatedAt        time.Time `db:"created_at"`
}
