// AngelaMos | 2026
// service.go

package cert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/driftline/diveadmin/internal/core"
)

// ErrDiverNotFound marks a create request whose diver_id has no row behind
// it, so the handler can name the diver rather than the certification.
var ErrDiverNotFound = fmt.Errorf("diver not found: %w", core.ErrNotFound)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateCertificationRequest,
) (*Certification, error) {
	ownerID, err := s.repo.GetDiverOwner(ctx, req.DiverID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("diver %s: %w", req.DiverID, ErrDiverNotFound)
		}
		return nil, err
	}

	if ownerID != userID {
		return nil, fmt.Errorf("diver %s: %w", req.DiverID, core.ErrForbidden)
	}

	dateIssued, err := time.Parse("2006-01-02", req.DateIssued)
	if err != nil {
		return nil, fmt.Errorf(
			"parse date %q: %w",
			req.DateIssued,
			core.ErrInvalidInput,
		)
	}

	expirationDate, err := parseDate(req.ExpirationDate)
	if err != nil {
		return nil, err
	}

	if expirationDate != nil && expirationDate.Before(dateIssued) {
		return nil, fmt.Errorf(
			"expiration precedes issue date: %w",
			core.ErrInvalidInput,
		)
	}

	c := &Certification{
		ID:             uuid.New().String(),
		DiverID:        req.DiverID,
		CertType:       req.CertType,
		Agency:         req.Agency,
		DateIssued:     dateIssued,
		ExpirationDate: expirationDate,
		CertNumber:     req.CertNumber,
		OwnerUserID:    userID,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(
	ctx context.Context,
	userID, certID string,
) (*Certification, error) {
	return s.getOwned(ctx, userID, certID)
}

func (s *Service) List(
	ctx context.Context,
	userID string,
	params ListCertificationsParams,
) ([]Certification, int, error) {
	params.Normalize()
	return s.repo.ListByUser(ctx, userID, params)
}

func (s *Service) Update(
	ctx context.Context,
	userID, certID string,
	req UpdateCertificationRequest,
) (*Certification, error) {
	c, err := s.getOwned(ctx, userID, certID)
	if err != nil {
		return nil, err
	}

	if req.CertType != nil {
		c.CertType = *req.CertType
	}
	if req.Agency != nil {
		c.Agency = req.Agency
	}
	if req.DateIssued != nil {
		dateIssued, err := time.Parse("2006-01-02", *req.DateIssued)
		if err != nil {
			return nil, fmt.Errorf(
				"parse date %q: %w",
				*req.DateIssued,
				core.ErrInvalidInput,
			)
		}
		c.DateIssued = dateIssued
	}
	if req.ExpirationDate != nil {
		expirationDate, err := parseDate(req.ExpirationDate)
		if err != nil {
			return nil, err
		}
		c.ExpirationDate = expirationDate
	}
	if req.CertNumber != nil {
		c.CertNumber = req.CertNumber
	}

	if c.ExpirationDate != nil && c.ExpirationDate.Before(c.DateIssued) {
		return nil, fmt.Errorf(
			"expiration precedes issue date: %w",
			core.ErrInvalidInput,
		)
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, userID, certID string) error {
	if _, err := s.getOwned(ctx, userID, certID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, certID)
}

func (s *Service) getOwned(
	ctx context.Context,
	userID, certID string,
) (*Certification, error) {
	c, err := s.repo.GetByID(ctx, certID)
	if err != nil {
		return nil, err
	}

	if !c.OwnedBy(userID) {
		return nil, fmt.Errorf(
			"certification %s: %w",
			certID,
			core.ErrForbidden,
		)
	}

	return c, nil
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
