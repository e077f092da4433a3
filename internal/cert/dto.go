// AngelaMos | 2026
// dto.go

package cert

import (
	"time"
)

type CreateCertificationRequest struct {
	DiverID        string  `json:"diver_id"        validate:"required,uuid"`
	CertType       string  `json:"cert_type"       validate:"required,min=1,max=100"`
	Agency         *string `json:"agency"          validate:"omitempty,max=100"`
	DateIssued     string  `json:"date_issued"     validate:"required,datetime=2006-01-02"`
	ExpirationDate *string `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
	CertNumber     *string `json:"cert_number"     validate:"omitempty,max=100"`
}

type UpdateCertificationRequest struct {
	CertType       *string `json:"cert_type"       validate:"omitempty,min=1,max=100"`
	Agency         *string `json:"agency"          validate:"omitempty,max=100"`
	DateIssued     *string `json:"date_issued"     validate:"omitempty,datetime=2006-01-02"`
	ExpirationDate *string `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
	CertNumber     *string `json:"cert_number"     validate:"omitempty,max=100"`
}

type ListCertificationsParams struct {
	Page     int
	PageSize int
	DiverID  string
}

func (p *ListCertificationsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

func (p *ListCertificationsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type CertificationResponse struct {
	ID             string    `json:"id"`
	DiverID        string    `json:"diver_id"`
	CertType       string    `json:"cert_type"`
	Agency         *string   `json:"agency,omitempty"`
	DateIssued     string    `json:"date_issued"`
	ExpirationDate *string   `json:"expiration_date,omitempty"`
	CertNumber     *string   `json:"cert_number,omitempty"`
	Expired        bool      `json:"expired"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToCertificationResponse(c *Certification) CertificationResponse {
	return CertificationResponse{
		ID:             c.ID,
		DiverID:        c.DiverID,
		CertType:       c.CertType,
		Agency:         c.Agency,
		DateIssued:     c.DateIssued.Format("2006-01-02"),
		ExpirationDate: formatDate(c.ExpirationDate),
		CertNumber:     c.CertNumber,
		Expired:        c.IsExpired(time.Now()),
		CreatedAt:      c.CreatedAt,
	}
}

func ToCertificationResponseList(
	certs []Certification,
) []CertificationResponse {
	out := make([]CertificationResponse, 0, len(certs))
	for i := range certs {
		out = append(out, ToCertificationResponse(&certs[i]))
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
