// AngelaMos | 2026
// service.go

package dive

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/driftline/diveadmin/internal/core"
)

// ErrSiteNotFound marks a dive that references a site id with no row behind
// it.
var ErrSiteNotFound = fmt.Errorf("dive site not found: %w", core.ErrInvalidInput)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create logs a dive and attaches the subset of requested divers that the
// caller owns. Divers belonging to other users are dropped without error,
// matching the membership model: you can only speak for your own divers.
func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateDiveRequest,
) (*DiveDetailResponse, error) {
	diveDate, err := parseDiveDate(req.DiveDate)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.SiteExists(ctx, req.SiteID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrSiteNotFound
	}

	d := &Dive{
		ID:              uuid.New().String(),
		SiteID:          req.SiteID,
		DiveDate:        diveDate,
		DurationMinutes: req.DurationMinutes,
		MaxDepth:        req.MaxDepth,
		AirUsed:         req.AirUsed,
		Conditions:      req.Conditions,
		Notes:           req.Notes,
	}

	if _, err := s.repo.CreateWithDivers(ctx, d, userID, req.DiverIDs); err != nil {
		return nil, err
	}

	participants, err := s.repo.ListParticipants(ctx, d.ID)
	if err != nil {
		return nil, err
	}

	return &DiveDetailResponse{
		DiveResponse: ToDiveResponse(d),
		Participants: participants,
	}, nil
}

func (s *Service) Get(
	ctx context.Context,
	userID, diveID string,
) (*DiveDetailResponse, error) {
	d, err := s.getVisible(ctx, userID, diveID)
	if err != nil {
		return nil, err
	}

	participants, err := s.repo.ListParticipants(ctx, diveID)
	if err != nil {
		return nil, err
	}

	return &DiveDetailResponse{
		DiveResponse: ToDiveResponse(d),
		Participants: participants,
	}, nil
}

func (s *Service) List(
	ctx context.Context,
	userID string,
	params ListDivesParams,
) ([]Dive, int, error) {
	params.Normalize()
	return s.repo.ListVisible(ctx, userID, params)
}

func (s *Service) Update(
	ctx context.Context,
	userID, diveID string,
	req UpdateDiveRequest,
) (*Dive, error) {
	d, err := s.getVisible(ctx, userID, diveID)
	if err != nil {
		return nil, err
	}

	if req.SiteID != nil {
		exists, err := s.repo.SiteExists(ctx, *req.SiteID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrSiteNotFound
		}
		d.SiteID = *req.SiteID
	}
	if req.DiveDate != nil {
		diveDate, err := parseDiveDate(*req.DiveDate)
		if err != nil {
			return nil, err
		}
		d.DiveDate = diveDate
	}
	if req.DurationMinutes != nil {
		d.DurationMinutes = req.DurationMinutes
	}
	if req.MaxDepth != nil {
		d.MaxDepth = req.MaxDepth
	}
	if req.AirUsed != nil {
		d.AirUsed = req.AirUsed
	}
	if req.Conditions != nil {
		d.Conditions = req.Conditions
	}
	if req.Notes != nil {
		d.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Delete(ctx context.Context, userID, diveID string) error {
	if _, err := s.getVisible(ctx, userID, diveID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, diveID)
}

// AttachDivers adds the caller's divers to an existing dive. Requested
// divers owned by other users are dropped, same as at creation.
func (s *Service) AttachDivers(
	ctx context.Context,
	userID, diveID string,
	diverIDs []string,
) ([]Participant, error) {
	if _, err := s.getVisible(ctx, userID, diveID); err != nil {
		return nil, err
	}

	owned, err := s.repo.FilterOwnedDiverIDs(ctx, userID, diverIDs)
	if err != nil {
		return nil, err
	}

	if len(owned) > 0 {
		if err := s.repo.Attach(ctx, diveID, owned); err != nil {
			return nil, err
		}
	}

	return s.repo.ListParticipants(ctx, diveID)
}

// DetachDiver removes one of the caller's divers from a dive. Detaching a
// diver owned by someone else is refused even when the caller can see the
// dive.
func (s *Service) DetachDiver(
	ctx context.Context,
	userID, diveID, diverID string,
) ([]Participant, error) {
	if _, err := s.getVisible(ctx, userID, diveID); err != nil {
		return nil, err
	}

	owned, err := s.repo.FilterOwnedDiverIDs(ctx, userID, []string{diverID})
	if err != nil {
		return nil, err
	}

	if len(owned) == 0 {
		return nil, fmt.Errorf("diver %s: %w", diverID, core.ErrForbidden)
	}

	removed, err := s.repo.Detach(ctx, diveID, diverID)
	if err != nil {
		return nil, err
	}

	if !removed {
		return nil, fmt.Errorf(
			"diver %s not attached to dive: %w",
			diverID,
			core.ErrNotFound,
		)
	}

	return s.repo.ListParticipants(ctx, diveID)
}

// getVisible loads a dive and enforces the membership rule: the caller must
// own at least one participant.
func (s *Service) getVisible(
	ctx context.Context,
	userID, diveID string,
) (*Dive, error) {
	d, err := s.repo.GetByID(ctx, diveID)
	if err != nil {
		return nil, err
	}

	owns, err := s.repo.UserOwnsParticipant(ctx, userID, diveID)
	if err != nil {
		return nil, err
	}

	if !owns {
		return nil, fmt.Errorf("dive %s: %w", diveID, core.ErrForbidden)
	}

	return d, nil
}

func parseDiveDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf(
		"parse dive date %q: %w",
		s,
		core.ErrInvalidInput,
	)
}
