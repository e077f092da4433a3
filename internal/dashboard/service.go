// AngelaMos | 2026
// service.go

package dashboard

import (
	"context"
)

// Summary is the per-user overview shown after login.
type Summary struct {
	DiverCount         int `json:"diver_count"`
	DiveCount          int `json:"dive_count"`
	EquipmentCount     int `json:"equipment_count"`
	CertificationCount int `json:"certification_count"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Summary(
	ctx context.Context,
	userID string,
) (*Summary, error) {
	diverCount, err := s.repo.CountDivers(ctx, userID)
	if err != nil {
		return nil, err
	}

	diveCount, err := s.repo.CountDives(ctx, userID)
	if err != nil {
		return nil, err
	}

	equipmentCount, err := s.repo.CountEquipment(ctx, userID)
	if err != nil {
		return nil, err
	}

	certCount, err := s.repo.CountCertifications(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		DiverCount:         diverCount,
		DiveCount:          diveCount,
		EquipmentCount:     equipmentCount,
		CertificationCount: certCount,
	}, nil
}
