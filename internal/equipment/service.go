// AngelaMos | 2026
// service.go

package equipment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/driftline/diveadmin/internal/core"
)

// ErrDiverNotFound marks a create request whose diver_id has no row behind
// it, so the handler can name the diver rather than the equipment.
var ErrDiverNotFound = fmt.Errorf("diver not found: %w", core.ErrNotFound)

// DefaultCondition is assumed for new equipment when the request omits one.
const DefaultCondition = "Good"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateEquipmentRequest,
) (*Equipment, error) {
	ownerID, err := s.repo.GetDiverOwner(ctx, req.DiverID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("diver %s: %w", req.DiverID, ErrDiverNotFound)
		}
		return nil, err
	}

	if ownerID != userID {
		return nil, fmt.Errorf(
			"diver %s: %w",
			req.DiverID,
			core.ErrForbidden,
		)
	}

	purchaseDate, err := parseDate(req.PurchaseDate)
	if err != nil {
		return nil, err
	}
	lastMaintenance, err := parseDate(req.LastMaintenance)
	if err != nil {
		return nil, err
	}
	nextMaintenance, err := parseDate(req.NextMaintenance)
	if err != nil {
		return nil, err
	}

	condition := req.Condition
	if condition == nil {
		def := DefaultCondition
		condition = &def
	}

	e := &Equipment{
		ID:              uuid.New().String(),
		DiverID:         req.DiverID,
		EquipmentType:   req.EquipmentType,
		Brand:           req.Brand,
		Model:           req.Model,
		SerialNumber:    req.SerialNumber,
		PurchaseDate:    purchaseDate,
		LastMaintenance: lastMaintenance,
		NextMaintenance: nextMaintenance,
		Condition:       condition,
		OwnerUserID:     userID,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(
	ctx context.Context,
	userID, equipmentID string,
) (*Equipment, error) {
	return s.getOwned(ctx, userID, equipmentID)
}

func (s *Service) List(
	ctx context.Context,
	userID string,
	params ListEquipmentParams,
) ([]Equipment, int, error) {
	params.Normalize()
	return s.repo.ListByUser(ctx, userID, params)
}

func (s *Service) Update(
	ctx context.Context,
	userID, equipmentID string,
	req UpdateEquipmentRequest,
) (*Equipment, error) {
	e, err := s.getOwned(ctx, userID, equipmentID)
	if err != nil {
		return nil, err
	}

	if req.EquipmentType != nil {
		e.EquipmentType = *req.EquipmentType
	}
	if req.Brand != nil {
		e.Brand = req.Brand
	}
	if req.Model != nil {
		e.Model = req.Model
	}
	if req.SerialNumber != nil {
		e.SerialNumber = req.SerialNumber
	}
	if req.PurchaseDate != nil {
		d, err := parseDate(req.PurchaseDate)
		if err != nil {
			return nil, err
		}
		e.PurchaseDate = d
	}
	if req.LastMaintenance != nil {
		d, err := parseDate(req.LastMaintenance)
		if err != nil {
			return nil, err
		}
		e.LastMaintenance = d
	}
	if req.NextMaintenance != nil {
		d, err := parseDate(req.NextMaintenance)
		if err != nil {
			return nil, err
		}
		e.NextMaintenance = d
	}
	if req.Condition != nil {
		e.Condition = req.Condition
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Delete(
	ctx context.Context,
	userID, equipmentID string,
) error {
	if _, err := s.getOwned(ctx, userID, equipmentID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, equipmentID)
}

func (s *Service) getOwned(
	ctx context.Context,
	userID, equipmentID string,
) (*Equipment, error) {
	e, err := s.repo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	if !e.OwnedBy(userID) {
		return nil, fmt.Errorf(
			"equipment %s: %w",
			equipmentID,
			core.ErrForbidden,
		)
	}

	return e, nil
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
