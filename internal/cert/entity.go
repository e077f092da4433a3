// AngelaMos | 2026
// entity.go

package cert

import (
	"time"
)

// Certification belongs to a diver; like equipment, ownership runs through
// the diver's user. OwnerUserID is join-populated.
type Certification struct {
	ID             string     `db:"id"`
	DiverID        string     `db:"diver_id"`
	CertType       string     `db:"cert_type"`
	Agency         *string    `db:"agency"`
	DateIssued     time.Time  `db:"date_issued"`
	ExpirationDate *time.Time `db:"expiration_date"`
	CertNumber     *string    `db:"cert_number"`
	CreatedAt      time.Time  `db:"created_at"`

	OwnerUserID string `db:"owner_user_id"`
}

func (c *Certification) OwnedBy(userID string) bool {
	return c.OwnerUserID == userID
}

func (c *Certification) IsExpired(now time.Time) bool {
	return c.ExpirationDate != nil && now.After(*c.ExpirationDate)
}
