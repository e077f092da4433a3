// AngelaMos | 2026
// dto.go

package diver

import (
	"time"
)

type CreateDiverRequest struct {
	FirstName           string  `json:"first_name"           validate:"required,min=1,max=80"`
	LastName            string  `json:"last_name"            validate:"required,min=1,max=80"`
	CertificationLevel  *string `json:"certification_level"  validate:"omitempty,max=50"`
	CertificationNumber *string `json:"certification_number" validate:"omitempty,max=100"`
	CertificationDate   *string `json:"certification_date"   validate:"omitempty,datetime=2006-01-02"`
	ExperienceDives     *int    `json:"experience_dives"     validate:"omitempty,gte=0"`
	Phone               *string `json:"phone"                validate:"omitempty,max=20"`
	EmergencyContact    *string `json:"emergency_contact"    validate:"omitempty,max=120"`
	MedicalConditions   *string `json:"medical_conditions"   validate:"omitempty,max=2000"`
}

type UpdateDiverRequest struct {
	FirstName           *string `json:"first_name"           validate:"omitempty,min=1,max=80"`
	LastName            *string `json:"last_name"            validate:"omitempty,min=1,max=80"`
	CertificationLevel  *string `json:"certification_level"  validate:"omitempty,max=50"`
	CertificationNumber *string `json:"certification_number" validate:"omitempty,max=100"`
	CertificationDate   *string `json:"certification_date"   validate:"omitempty,datetime=2006-01-02"`
	ExperienceDives     *int    `json:"experience_dives"     validate:"omitempty,gte=0"`
	Phone               *string `json:"phone"                validate:"omitempty,max=20"`
	EmergencyContact    *string `json:"emergency_contact"    validate:"omitempty,max=120"`
	MedicalConditions   *string `json:"medical_conditions"   validate:"omitempty,max=2000"`
}

type ListDiversParams struct {
	Page     int
	PageSize int
	Search   string
}

func (p *ListDiversParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

func (p *ListDiversParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type DiverResponse struct {
	ID                  string     `json:"id"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	CertificationLevel  *string    `json:"certification_level,omitempty"`
	CertificationNumber *string    `json:"certification_number,omitempty"`
	CertificationDate   *string    `json:"certification_date,omitempty"`
	ExperienceDives     int        `json:"experience_dives"`
	Phone               *string    `json:"phone,omitempty"`
	EmergencyContact    *string    `json:"emergency_contact,omitempty"`
	MedicalConditions   *string    `json:"medical_conditions,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// EquipmentSummary is the trimmed equipment view embedded in a diver detail.
type EquipmentSummary struct {
	ID              string  `db:"id"              json:"id"`
	EquipmentType   string  `db:"equipment_type"  json:"equipment_type"`
	Brand           *string `db:"brand"           json:"brand,omitempty"`
	Model           *string `db:"model"           json:"model,omitempty"`
	Condition       *string `db:"condition"       json:"condition,omitempty"`
	NextMaintenance *string `db:"next_maintenance" json:"next_maintenance,omitempty"`
}

// CertificationSummary is the trimmed certification view embedded in a
// diver detail.
type CertificationSummary struct {
	ID             string  `db:"id"              json:"id"`
	CertType       string  `db:"cert_type"       json:"cert_type"`
	Agency         *string `db:"agency"          json:"agency,omitempty"`
	DateIssued     string  `db:"date_issued"     json:"date_issued"`
	ExpirationDate *string `db:"expiration_date" json:"expiration_date,omitempty"`
}

type DiverDetailResponse struct {
	DiverResponse

	Equipment      []EquipmentSummary     `json:"equipment"`
	Certifications []CertificationSummary `json:"certifications"`
}

func ToDiverResponse(d *Diver) DiverResponse {
	return DiverResponse{
		ID:                  d.ID,
		FirstName:           d.FirstName,
		LastName:            d.LastName,
		CertificationLevel:  d.CertificationLevel,
		CertificationNumber: d.CertificationNumber,
		CertificationDate:   formatDate(d.CertificationDate),
		ExperienceDives:     d.ExperienceDives,
		Phone:               d.Phone,
		EmergencyContact:    d.EmergencyContact,
		MedicalConditions:   d.MedicalConditions,
		CreatedAt:           d.CreatedAt,
	}
}

func ToDiverResponseList(divers []Diver) []DiverResponse {
	out := make([]DiverResponse, 0, len(divers))
	for i := range divers {
		out = append(out, ToDiverResponse(&divers[i]))
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
