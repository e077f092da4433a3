// AngelaMos | 2026
// service.go

package diver

import (
	"context"
	"fmt"
	"time"

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
	userID string,
	req CreateDiverRequest,
) (*Diver, error) {
	certDate, err := parseDate(req.CertificationDate)
	if err != nil {
		return nil, err
	}

	d := &Diver{
		ID:                  uuid.New().String(),
		UserID:              userID,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		CertificationLevel:  req.CertificationLevel,
		CertificationNumber: req.CertificationNumber,
		CertificationDate:   certDate,
		Phone:               req.Phone,
		EmergencyContact:    req.EmergencyContact,
		MedicalConditions:   req.MedicalConditions,
	}

	if req.ExperienceDives != nil {
		d.ExperienceDives = *req.ExperienceDives
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Get(
	ctx context.Context,
	userID, diverID string,
) (*Diver, error) {
	return s.getOwned(ctx, userID, diverID)
}

func (s *Service) GetDetail(
	ctx context.Context,
	userID, diverID string,
) (*DiverDetailResponse, error) {
	d, err := s.getOwned(ctx, userID, diverID)
	if err != nil {
		return nil, err
	}

	equipment, err := s.repo.ListEquipmentSummaries(ctx, diverID)
	if err != nil {
		return nil, err
	}

	certs, err := s.repo.ListCertificationSummaries(ctx, diverID)
	if err != nil {
		return nil, err
	}

	return &DiverDetailResponse{
		DiverResponse:  ToDiverResponse(d),
		Equipment:      equipment,
		Certifications: certs,
	}, nil
}

func (s *Service) List(
	ctx context.Context,
	userID string,
	params ListDiversParams,
) ([]Diver, int, error) {
	params.Normalize()
	return s.repo.ListByUser(ctx, userID, params)
}

func (s *Service) Update(
	ctx context.Context,
	userID, diverID string,
	req UpdateDiverRequest,
) (*Diver, error) {
	d, err := s.getOwned(ctx, userID, diverID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		d.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		d.LastName = *req.LastName
	}
	if req.CertificationLevel != nil {
		d.CertificationLevel = req.CertificationLevel
	}
	if req.CertificationNumber != nil {
		d.CertificationNumber = req.CertificationNumber
	}
	if req.CertificationDate != nil {
		certDate, err := parseDate(req.CertificationDate)
		if err != nil {
			return nil, err
		}
		d.CertificationDate = certDate
	}
	if req.ExperienceDives != nil {
		d.ExperienceDives = *req.ExperienceDives
	}
	if req.Phone != nil {
		d.Phone = req.Phone
	}
	if req.EmergencyContact != nil {
		d.EmergencyContact = req.EmergencyContact
	}
	if req.MedicalConditions != nil {
		d.MedicalConditions = req.MedicalConditions
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Delete(ctx context.Context, userID, diverID string) error {
	if _, err := s.getOwned(ctx, userID, diverID); err != nil {
		return err
	}

	return s.repo.DeleteCascade(ctx, diverID)
}

// getOwned loads a diver and enforces that it belongs to userID. Non-owners
// get ErrForbidden, never a silent miss, so the handler can answer 403.
func (s *Service) getOwned(
	ctx context.Context,
	userID, diverID string,
) (*Diver, error) {
	d, err := s.repo.GetByID(ctx, diverID)
	if err != nil {
		return nil, err
	}

	if !d.OwnedBy(userID) {
		return nil, fmt.Errorf("diver %s: %w", diverID, core.ErrForbidden)
	}

	return d, nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}

	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", *s, core.ErrInvalidInput)
	}

	return &t, nil
}
