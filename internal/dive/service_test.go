// AngelaMos | 2026
// service_test.go

package dive_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/diveadmin/internal/core"
	"github.com/driftline/diveadmin/internal/dive"
)

// fakeRepo keeps dives, diver ownership, and dive memberships in maps so the
// service's visibility rules can be exercised without a database.
type fakeRepo struct {
	dives       map[string]*dive.Dive
	diverOwners map[string]string
	memberships map[string]map[string]bool
	sites       map[string]bool
	deleted     []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		dives:       map[string]*dive.Dive{},
		diverOwners: map[string]string{},
		memberships: map[string]map[string]bool{},
		sites:       map[string]bool{},
	}
}

func (f *fakeRepo) CreateWithDivers(
	_ context.Context,
	d *dive.Dive,
	userID string,
	diverIDs []string,
) ([]string, error) {
	d.CreatedAt = time.Now()
	f.dives[d.ID] = d
	f.memberships[d.ID] = map[string]bool{}

	attached := []string{}
	for _, diverID := range diverIDs {
		if f.diverOwners[diverID] == userID {
			f.memberships[d.ID][diverID] = true
			attached = append(attached, diverID)
		}
	}
	return attached, nil
}

func (f *fakeRepo) GetByID(
	_ context.Context,
	id string,
) (*dive.Dive, error) {
	d, ok := f.dives[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (f *fakeRepo) ListVisible(
	_ context.Context,
	userID string,
	params dive.ListDivesParams,
) ([]dive.Dive, int, error) {
	out := []dive.Dive{}
	for id, d := range f.dives {
		for diverID := range f.memberships[id] {
			if f.diverOwners[diverID] == userID {
				out = append(out, *d)
				break
			}
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(_ context.Context, d *dive.Dive) error {
	if _, ok := f.dives[d.ID]; !ok {
		return core.ErrNotFound
	}
	f.dives[d.ID] = d
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.dives[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.dives, id)
	delete(f.memberships, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) ListParticipants(
	_ context.Context,
	diveID string,
) ([]dive.Participant, error) {
	out := []dive.Participant{}
	for diverID := range f.memberships[diveID] {
		out = append(out, dive.Participant{DiverID: diverID})
	}
	return out, nil
}

func (f *fakeRepo) UserOwnsParticipant(
	_ context.Context,
	userID, diveID string,
) (bool, error) {
	for diverID := range f.memberships[diveID] {
		if f.diverOwners[diverID] == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) FilterOwnedDiverIDs(
	_ context.Context,
	userID string,
	diverIDs []string,
) ([]string, error) {
	owned := []string{}
	for _, diverID := range diverIDs {
		if f.diverOwners[diverID] == userID {
			owned = append(owned, diverID)
		}
	}
	return owned, nil
}

func (f *fakeRepo) Attach(
	_ context.Context,
	diveID string,
	diverIDs []string,
) error {
	for _, diverID := range diverIDs {
		f.memberships[diveID][diverID] = true
	}
	return nil
}

func (f *fakeRepo) Detach(
	_ context.Context,
	diveID, diverID string,
) (bool, error) {
	if !f.memberships[diveID][diverID] {
		return false, nil
	}
	delete(f.memberships[diveID], diverID)
	return true, nil
}

func (f *fakeRepo) SiteExists(
	_ context.Context,
	siteID string,
) (bool, error) {
	return f.sites[siteID], nil
}

const siteID = "7b5a6c9e-0000-4000-8000-000000000001"

func setup(t *testing.T) (*dive.Service, *fakeRepo) {
	t.Helper()

	repo := newFakeRepo()
	repo.sites[siteID] = true
	repo.diverOwners["diver-a"] = "user-1"
	repo.diverOwners["diver-b"] = "user-1"
	repo.diverOwners["diver-x"] = "user-2"

	return dive.NewService(repo), repo
}

func TestCreateAttachesOnlyOwnedDivers(t *testing.T) {
	svc, repo := setup(t)

	resp, err := svc.Create(context.Background(), "user-1", dive.CreateDiveRequest{
		SiteID:   siteID,
		DiveDate: "2026-07-04",
		DiverIDs: []string{"diver-a", "diver-x"},
	})
	require.NoError(t, err)

	// diver-x belongs to user-2 and is silently dropped.
	require.Len(t, resp.Participants, 1)
	assert.Equal(t, "diver-a", resp.Participants[0].DiverID)
	assert.True(t, repo.memberships[resp.ID]["diver-a"])
	assert.False(t, repo.memberships[resp.ID]["diver-x"])
}

func TestCreateUnknownSite(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.Create(context.Background(), "user-1", dive.CreateDiveRequest{
		SiteID:   "7b5a6c9e-0000-4000-8000-00000000dead",
		DiveDate: "2026-07-04",
	})
	assert.ErrorIs(t, err, dive.ErrSiteNotFound)
}

func TestCreateAcceptsDateAndTimestampForms(t *testing.T) {
	svc, _ := setup(t)

	for _, date := range []string{
		"2026-07-04",
		"2026-07-04T09:30:00",
		"2026-07-04T09:30:00Z",
	} {
		_, err := svc.Create(context.Background(), "user-1", dive.CreateDiveRequest{
			SiteID:   siteID,
			DiveDate: date,
			DiverIDs: []string{"diver-a"},
		})
		assert.NoError(t, err, "date %q", date)
	}

	_, err := svc.Create(context.Background(), "user-1", dive.CreateDiveRequest{
		SiteID:   siteID,
		DiveDate: "04/07/2026",
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestGetForbiddenWithoutParticipant(t *testing.T) {
	svc, _ := setup(t)

	created, err := svc.Create(context.Background(), "user-1", dive.CreateDiveRequest{
		SiteID:   siteID,
		DiveDate: "2026-07-04",
		DiverIDs: []string{"diver-a"},
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "user-2", created.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)

	got, err := svc.Get(context.Background(), "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestAttachDiversDropsForeign(t *testing.T) {
	svc, repo := setup(t)

	created, err := svc.Create(context.Background(), "user-1", dive.CreateDiveRequest{
		SiteID:   siteID,
		DiveDate: "2026-07-04",
		DiverIDs: []string{"diver-a"},
	})
	require.NoError(t, err)

	participants, err := svc.AttachDivers(
		context.Background(),
		"user-1",
		created.ID,
		[]string{"diver-b", "diver-x"},
	)
	require.NoError(t, err)

	assert.Len(t, participants, 2)
	assert.False(t, repo.memberships[created.ID]["diver-x"])
}

func TestDetachDiverRequiresOwnership(t *testing.T) {
	svc, repo := setup(t)

	created, err := svc.Create(context.Background(), "user-1", dive.CreateDiveRequest{
		SiteID:   siteID,
		DiveDate: "2026-07-04",
		DiverIDs: []string{"diver-a", "diver-b"},
	})
	require.NoError(t, err)

	// user-2 can never detach, and user-1 cannot detach someone else's
	// diver even from a dive they can see.
	repo.memberships[created.ID]["diver-x"] = true

	_, err = svc.DetachDiver(
		context.Background(),
		"user-1",
		created.ID,
		"diver-x",
	)
	assert.ErrorIs(t, err, core.ErrForbidden)

	participants, err := svc.DetachDiver(
		context.Background(),
		"user-1",
		created.ID,
		"diver-b",
	)
	require.NoError(t, err)
	assert.Len(t, participants, 2)
}

func TestDetachDiverNotAttached(t *testing.T) {
	svc, _ := setup(t)

	created, err := svc.Create(context.Background(), "user-1", dive.CreateDiveRequest{
		SiteID:   siteID,
		DiveDate: "2026-07-04",
		DiverIDs: []string{"diver-a"},
	})
	require.NoError(t, err)

	_, err = svc.DetachDiver(
		context.Background(),
		"user-1",
		created.ID,
		"diver-b",
	)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateValidatesNewSite(t *testing.T) {
	svc, _ := setup(t)

	created, err := svc.Create(context.Background(), "user-1", dive.CreateDiveRequest{
		SiteID:   siteID,
		DiveDate: "2026-07-04",
		DiverIDs: []string{"diver-a"},
	})
	require.NoError(t, err)

	badSite := "7b5a6c9e-0000-4000-8000-00000000dead"
	_, err = svc.Update(
		context.Background(),
		"user-1",
		created.ID,
		dive.UpdateDiveRequest{SiteID: &badSite},
	)
	assert.ErrorIs(t, err, dive.ErrSiteNotFound)
}

func TestListVisibleScopedToMembership(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.Create(context.Background(), "user-1", dive.CreateDiveRequest{
		SiteID:   siteID,
		DiveDate: "2026-07-04",
		DiverIDs: []string{"diver-a"},
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "user-2", dive.CreateDiveRequest{
		SiteID:   siteID,
		DiveDate: "2026-07-05",
		DiverIDs: []string{"diver-x"},
	})
	require.NoError(t, err)

	dives, total, err := svc.List(
		context.Background(),
		"user-1",
		dive.ListDivesParams{},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, dives, 1)
}
