// AngelaMos | 2026
// entity.go

package diver

import (
	"time"
)

// Diver is a club member profile owned by exactly one user account.
type Diver struct {
	ID                  string     `db:"id"`
	UserID              string     `db:"user_id"`
	FirstName           string     `db:"first_name"`
	LastName            string     `db:"last_name"`
	CertificationLevel  *string    `db:"certification_level"`
	CertificationNumber *string    `db:"certification_number"`
	CertificationDate   *time.Time `db:"certification_date"`
	ExperienceDives     int        `db:"experience_dives"`
	Phone               *string    `db:"phone"`
	EmergencyContact    *string    `db:"emergency_contact"`
	MedicalConditions   *string    `db:"medical_conditions"`
	CreatedAt           time.Time  `db:"created_at"`
}

func (d *Diver) FullName() string {
	return d.FirstName + " " + d.LastName
}

func (d *Diver) OwnedBy(userID string) bool {
	return d.UserID == userID
}
