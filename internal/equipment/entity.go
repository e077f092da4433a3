// AngelaMos | 2026
// entity.go

package equipment

import (
	"time"
)

// Equipment belongs to a diver; ownership is transitive through the diver's
// user. OwnerUserID is populated by joins, it has no column of its own.
type Equipment struct {
	ID              string     `db:"id"`
	DiverID         string     `db:"diver_id"`
	EquipmentType   string     `db:"equipment_type"`
	Brand           *string    `db:"brand"`
	Model           *string    `db:"model"`
	SerialNumber    *string    `db:"serial_number"`
	PurchaseDate    *time.Time `db:"purchase_date"`
	LastMaintenance *time.Time `db:"last_maintenance"`
	NextMaintenance *time.Time `db:"next_maintenance"`
	Condition       *string    `db:"condition"`
	CreatedAt       time.Time  `db:"created_at"`

	OwnerUserID string `db:"owner_user_id"`
}

func (e *Equipment) OwnedBy(userID string) bool {
	return e.OwnerUserID == userID
}
