// AngelaMos | 2026
// dto.go

package site

import (
	"time"
)

type CreateSiteRequest struct {
	Name             string   `json:"name"              validate:"required,min=1,max=120"`
	Location         string   `json:"location"          validate:"required,min=1,max=200"`
	DepthMin         *float64 `json:"depth_min"         validate:"omitempty,gte=0"`
	DepthMax         *float64 `json:"depth_max"         validate:"omitempty,gte=0"`
	Description      *string  `json:"description"       validate:"omitempty,max=2000"`
	DifficultyLevel  *string  `json:"difficulty_level"  validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	WaterTemperature *float64 `json:"water_temperature" validate:"omitempty"`
	Visibility       *string  `json:"visibility"        validate:"omitempty,max=50"`
}

type UpdateSiteRequest struct {
	Name             *string  `json:"name"              validate:"omitempty,min=1,max=120"`
	Location         *string  `json:"location"          validate:"omitempty,min=1,max=200"`
	DepthMin         *float64 `json:"depth_min"         validate:"omitempty,gte=0"`
	DepthMax         *float64 `json:"depth_max"         validate:"omitempty,gte=0"`
	Description      *string  `json:"description"       validate:"omitempty,max=2000"`
	DifficultyLevel  *string  `json:"difficulty_level"  validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	WaterTemperature *float64 `json:"water_temperature" validate:"omitempty"`
	Visibility       *string  `json:"visibility"        validate:"omitempty,max=50"`
}

type ListSitesParams struct {
	Page       int
	PageSize   int
	Search     string
	Difficulty string
}

func (p *ListSitesParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

func (p *ListSitesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type SiteResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Location         string    `json:"location"`
	DepthMin         *float64  `json:"depth_min,omitempty"`
	DepthMax         *float64  `json:"depth_max,omitempty"`
	Description      *string   `json:"description,omitempty"`
	DifficultyLevel  *string   `json:"difficulty_level,omitempty"`
	WaterTemperature *float64  `json:"water_temperature,omitempty"`
	Visibility       *string   `json:"visibility,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func ToSiteResponse(s *DiveSite) SiteResponse {
	return SiteResponse{
		ID:               s.ID,
		Name:             s.Name,
		Location:         s.Location,
		DepthMin:         s.DepthMin,
		DepthMax:         s.DepthMax,
		Description:      s.Description,
		DifficultyLevel:  s.DifficultyLevel,
		WaterTemperature: s.WaterTemperature,
		Visibility:       s.Visibility,
		CreatedAt:        s.CreatedAt,
	}
}

func ToSiteResponseList(sites []DiveSite) []SiteResponse {
	out := make([]SiteResponse, 0, len(sites))
	for i := range sites {
		out = append(out, ToSiteResponse(&sites[i]))
	}
	return out
}
