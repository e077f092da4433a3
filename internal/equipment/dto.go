// AngelaMos | 2026
// dto.go

package equipment

import (
	"time"
)

type CreateEquipmentRequest struct {
	DiverID         string  `json:"diver_id"         validate:"required,uuid"`
	EquipmentType   string  `json:"equipment_type"   validate:"required,min=1,max=50"`
	Brand           *string `json:"brand"            validate:"omitempty,max=80"`
	Model           *string `json:"model"            validate:"omitempty,max=80"`
	SerialNumber    *string `json:"serial_number"    validate:"omitempty,max=100"`
	PurchaseDate    *string `json:"purchase_date"    validate:"omitempty,datetime=2006-01-02"`
	LastMaintenance *string `json:"last_maintenance" validate:"omitempty,datetime=2006-01-02"`
	NextMaintenance *string `json:"next_maintenance" validate:"omitempty,datetime=2006-01-02"`
	Condition       *string `json:"condition"        validate:"omitempty,oneof=Good Fair 'Needs Repair'"`
}

type UpdateEquipmentRequest struct {
	EquipmentType   *string `json:"equipment_type"   validate:"omitempty,min=1,max=50"`
	Brand           *string `json:"brand"            validate:"omitempty,max=80"`
	Model           *string `json:"model"            validate:"omitempty,max=80"`
	SerialNumber    *string `json:"serial_number"    validate:"omitempty,max=100"`
	PurchaseDate    *string `json:"purchase_date"    validate:"omitempty,datetime=2006-01-02"`
	LastMaintenance *string `json:"last_maintenance" validate:"omitempty,datetime=2006-01-02"`
	NextMaintenance *string `json:"next_maintenance" validate:"omitempty,datetime=2006-01-02"`
	Condition       *string `json:"condition"        validate:"omitempty,oneof=Good Fair 'Needs Repair'"`
}

type ListEquipmentParams struct {
	Page     int
	PageSize int
	DiverID  string
	Type     string
}

func (p *ListEquipmentParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

func (p *ListEquipmentParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type EquipmentResponse struct {
	ID              string    `json:"id"`
	DiverID         string    `json:"diver_id"`
	EquipmentType   string    `json:"equipment_type"`
	Brand           *string   `json:"brand,omitempty"`
	Model           *string   `json:"model,omitempty"`
	SerialNumber    *string   `json:"serial_number,omitempty"`
	PurchaseDate    *string   `json:"purchase_date,omitempty"`
	LastMaintenance *string   `json:"last_maintenance,omitempty"`
	NextMaintenance *string   `json:"next_maintenance,omitempty"`
	Condition       *string   `json:"condition,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToEquipmentResponse(e *Equipment) EquipmentResponse {
	return EquipmentResponse{
		ID:              e.ID,
		DiverID:         e.DiverID,
		EquipmentType:   e.EquipmentType,
		Brand:           e.Brand,
		Model:           e.Model,
		SerialNumber:    e.SerialNumber,
		PurchaseDate:    formatDate(e.PurchaseDate),
		LastMaintenance: formatDate(e.LastMaintenance),
		NextMaintenance: formatDate(e.NextMaintenance),
		Condition:       e.Condition,
		CreatedAt:       e.CreatedAt,
	}
}

func ToEquipmentResponseList(items []Equipment) []EquipmentResponse {
	out := make([]EquipmentResponse, 0, len(items))
	for i := range items {
		out = append(out, ToEquipmentResponse(&items[i]))
	}
	return out
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
