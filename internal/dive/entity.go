// AngelaMos | 2026
// entity.go

package dive

import (
	"time"
)

// Dive is a logged dive at a site. Dives have no owner column: visibility
// derives from the dive_divers membership table, a user sees a dive when at
// least one of their divers participated.
type Dive struct {
	ID              string    `db:"id"`
	SiteID          string    `db:"site_id"`
	DiveDate        time.Time `db:"dive_date"`
	DurationMinutes *int      `db:"duration_minutes"`
	MaxDepth        *float64  `db:"max_depth"`
	AirUsed         *float64  `db:"air_used"`
	Conditions      *string   `db:"conditions"`
	Notes           *string   `db:"notes"`
	CreatedAt       time.Time `db:"created_at"`
}

// Participant is one diver attached to a dive.
type Participant struct {
	DiverID   string `db:"diver_id" json:"diver_id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
}
