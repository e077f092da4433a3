// AngelaMos | 2026
// dto.go

package dive

import (
	"time"
)

type CreateDiveRequest struct {
	SiteID          string   `json:"site_id"          validate:"required,uuid"`
	DiveDate        string   `json:"dive_date"        validate:"required"`
	DurationMinutes *int     `json:"duration_minutes" validate:"omitempty,gt=0"`
	MaxDepth        *float64 `json:"max_depth"        validate:"omitempty,gt=0"`
	AirUsed         *float64 `json:"air_used"         validate:"omitempty,gte=0"`
	Conditions      *string  `json:"conditions"       validate:"omitempty,max=200"`
	Notes           *string  `json:"notes"            validate:"omitempty,max=2000"`
	DiverIDs        []string `json:"diver_ids"        validate:"omitempty,dive,uuid"`
}

type UpdateDiveRequest struct {
	SiteID          *string  `json:"site_id"          validate:"omitempty,uuid"`
	DiveDate        *string  `json:"dive_date"        validate:"omitempty"`
	DurationMinutes *int     `json:"duration_minutes" validate:"omitempty,gt=0"`
	MaxDepth        *float64 `json:"max_depth"        validate:"omitempty,gt=0"`
	AirUsed         *float64 `json:"air_used"         validate:"omitempty,gte=0"`
	Conditions      *string  `json:"conditions"       validate:"omitempty,max=200"`
	Notes           *string  `json:"notes"            validate:"omitempty,max=2000"`
}

type AttachDiversRequest struct {
	DiverIDs []string `json:"diver_ids" validate:"required,min=1,dive,uuid"`
}

type ListDivesParams struct {
	Page     int
	PageSize int
	SiteID   string
}

func (p *ListDivesParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

func (p *ListDivesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type DiveResponse struct {
	ID              string    `json:"id"`
	SiteID          string    `json:"site_id"`
	DiveDate        time.Time `json:"dive_date"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	MaxDepth        *float64  `json:"max_depth,omitempty"`
	AirUsed         *float64  `json:"air_used,omitempty"`
	Conditions      *string   `json:"conditions,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type DiveDetailResponse struct {
	DiveResponse

	Participants []Participant `json:"participants"`
}

func ToDiveResponse(d *Dive) DiveResponse {
	return DiveResponse{
		ID:              d.ID,
		SiteID:          d.SiteID,
		DiveDate:        d.DiveDate,
		DurationMinutes: d.DurationMinutes,
		MaxDepth:        d.MaxDepth,
		AirUsed:         d.AirUsed,
		Conditions:      d.Conditions,
		Notes:           d.Notes,
		CreatedAt:       d.CreatedAt,
	}
}

func ToDiveResponseList(dives []Dive) []DiveResponse {
	out := make([]DiveResponse, 0, len(dives))
	for i := range dives {
		out = append(out, ToDiveResponse(&dives[i]))
	}
	return out
}
