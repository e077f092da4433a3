// AngelaMos | 2026
// service.go

package site

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/driftline/diveadmin/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateSiteRequest,
) (*DiveSite, error) {
	site := &DiveSite{
		ID:               uuid.New().String(),
		Name:             req.Name,
		Location:         req.Location,
		DepthMin:         req.DepthMin,
		DepthMax:         req.DepthMax,
		Description:      req.Description,
		DifficultyLevel:  req.DifficultyLevel,
		WaterTemperature: req.WaterTemperature,
		Visibility:       req.Visibility,
	}

	if err := validateDepthRange(site); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, site); err != nil {
		return nil, err
	}

	return site, nil
}

func (s *Service) Get(ctx context.Context, id string) (*DiveSite, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListSitesParams,
) ([]DiveSite, int, error) {
	params.Normalize()
	return s.repo.List(ctx, params)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateSiteRequest,
) (*DiveSite, error) {
	site, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		site.Name = *req.Name
	}
	if req.Location != nil {
		site.Location = *req.Location
	}
	if req.DepthMin != nil {
		site.DepthMin = req.DepthMin
	}
	if req.DepthMax != nil {
		site.DepthMax = req.DepthMax
	}
	if req.Description != nil {
		site.Description = req.Description
	}
	if req.DifficultyLevel != nil {
		site.DifficultyLevel = req.DifficultyLevel
	}
	if req.WaterTemperature != nil {
		site.WaterTemperature = req.WaterTemperature
	}
	if req.Visibility != nil {
		site.Visibility = req.Visibility
	}

	if err := validateDepthRange(site); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, site); err != nil {
		return nil, err
	}

	return site, nil
}

// Delete refuses to remove a site that dives still reference, so dive rows
// never point at a missing site.
func (s *Service) Delete(ctx context.Context, id string) error {
	count, err := s.repo.CountDives(ctx, id)
	if err != nil {
		return err
	}

	if count > 0 {
		return fmt.Errorf(
			"site has %d logged dives: %w",
			count,
			core.ErrInvalidInput,
		)
	}

	return s.repo.Delete(ctx, id)
}

func validateDepthRange(site *DiveSite) error {
	if site.DepthMin != nil && site.DepthMax != nil &&
		*site.DepthMin > *site.DepthMax {
		return fmt.Errorf(
			"depth_min exceeds depth_max: %w",
			core.ErrInvalidInput,
		)
	}
	return nil
}
