// AngelaMos | 2026
// service_test.go

package diver_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/diveadmin/internal/core"
	"github.com/driftline/diveadmin/internal/diver"
)

type fakeRepo struct {
	divers         map[string]*diver.Diver
	cascadeDeleted []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{divers: map[string]*diver.Diver{}}
}

func (f *fakeRepo) Create(_ context.Context, d *diver.Diver) error {
	d.CreatedAt = time.Now()
	f.divers[d.ID] = d
	return nil
}

func (f *fakeRepo) GetByID(
	_ context.Context,
	id string,
) (*diver.Diver, error) {
	d, ok := f.divers[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (f *fakeRepo) ListByUser(
	_ context.Context,
	userID string,
	params diver.ListDiversParams,
) ([]diver.Diver, int, error) {
	out := []diver.Diver{}
	for _, d := range f.divers {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(_ context.Context, d *diver.Diver) error {
	if _, ok := f.divers[d.ID]; !ok {
		return core.ErrNotFound
	}
	f.divers[d.ID] = d
	return nil
}

func (f *fakeRepo) DeleteCascade(_ context.Context, id string) error {
	if _, ok := f.divers[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.divers, id)
	f.cascadeDeleted = append(f.cascadeDeleted, id)
	return nil
}

func (f *fakeRepo) ListEquipmentSummaries(
	_ context.Context,
	_ string,
) ([]diver.EquipmentSummary, error) {
	return []diver.EquipmentSummary{}, nil
}

func (f *fakeRepo) ListCertificationSummaries(
	_ context.Context,
	_ string,
) ([]diver.CertificationSummary, error) {
	return []diver.CertificationSummary{}, nil
}

func strPtr(s string) *string { return &s }

func TestCreateDefaults(t *testing.T) {
	repo := newFakeRepo()
	svc := diver.NewService(repo)

	d, err := svc.Create(context.Background(), "user-1", diver.CreateDiverRequest{
		FirstName: "Maya",
		LastName:  "Torres",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, d.ID)
	assert.Equal(t, "user-1", d.UserID)
	assert.Equal(t, 0, d.ExperienceDives)
	assert.Nil(t, d.CertificationDate)
	assert.Equal(t, "Maya Torres", d.FullName())
}

func TestCreateParsesCertificationDate(t *testing.T) {
	repo := newFakeRepo()
	svc := diver.NewService(repo)

	d, err := svc.Create(context.Background(), "user-1", diver.CreateDiverRequest{
		FirstName:         "Maya",
		LastName:          "Torres",
		CertificationDate: strPtr("2024-06-15"),
	})
	require.NoError(t, err)

	require.NotNil(t, d.CertificationDate)
	assert.Equal(t, "2024-06-15", d.CertificationDate.Format("2006-01-02"))
}

func TestCreateRejectsBadDate(t *testing.T) {
	repo := newFakeRepo()
	svc := diver.NewService(repo)

	_, err := svc.Create(context.Background(), "user-1", diver.CreateDiverRequest{
		FirstName:         "Maya",
		LastName:          "Torres",
		CertificationDate: strPtr("15/06/2024"),
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestGetForbiddenForOtherUser(t *testing.T) {
	repo := newFakeRepo()
	svc := diver.NewService(repo)

	d, err := svc.Create(context.Background(), "user-1", diver.CreateDiverRequest{
		FirstName: "Maya",
		LastName:  "Torres",
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "user-2", d.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestGetUnknownDiver(t *testing.T) {
	svc := diver.NewService(newFakeRepo())

	_, err := svc.Get(context.Background(), "user-1", "missing-id")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateMergesFields(t *testing.T) {
	repo := newFakeRepo()
	svc := diver.NewService(repo)

	d, err := svc.Create(context.Background(), "user-1", diver.CreateDiverRequest{
		FirstName: "Maya",
		LastName:  "Torres",
		Phone:     strPtr("555-0100"),
	})
	require.NoError(t, err)

	dives := 42
	updated, err := svc.Update(
		context.Background(),
		"user-1",
		d.ID,
		diver.UpdateDiverRequest{
			CertificationLevel: strPtr("Rescue Diver"),
			ExperienceDives:    &dives,
		},
	)
	require.NoError(t, err)

	// Untouched fields survive a partial update.
	assert.Equal(t, "Maya", updated.FirstName)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "555-0100", *updated.Phone)
	require.NotNil(t, updated.CertificationLevel)
	assert.Equal(t, "Rescue Diver", *updated.CertificationLevel)
	assert.Equal(t, 42, updated.ExperienceDives)
}

func TestUpdateForbiddenBeforeWrite(t *testing.T) {
	repo := newFakeRepo()
	svc := diver.NewService(repo)

	d, err := svc.Create(context.Background(), "user-1", diver.CreateDiverRequest{
		FirstName: "Maya",
		LastName:  "Torres",
	})
	require.NoError(t, err)

	_, err = svc.Update(
		context.Background(),
		"user-2",
		d.ID,
		diver.UpdateDiverRequest{FirstName: strPtr("Eve")},
	)
	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.Equal(t, "Maya", repo.divers[d.ID].FirstName)
}

func TestDeleteCascadesOnlyForOwner(t *testing.T) {
	repo := newFakeRepo()
	svc := diver.NewService(repo)

	d, err := svc.Create(context.Background(), "user-1", diver.CreateDiverRequest{
		FirstName: "Maya",
		LastName:  "Torres",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "user-2", d.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.Empty(t, repo.cascadeDeleted)

	err = svc.Delete(context.Background(), "user-1", d.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{d.ID}, repo.cascadeDeleted)
}

func TestListScopedToUser(t *testing.T) {
	repo := newFakeRepo()
	svc := diver.NewService(repo)

	_, err := svc.Create(context.Background(), "user-1", diver.CreateDiverRequest{
		FirstName: "Maya",
		LastName:  "Torres",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "user-2", diver.CreateDiverRequest{
		FirstName: "Liam",
		LastName:  "Ng",
	})
	require.NoError(t, err)

	divers, total, err := svc.List(
		context.Background(),
		"user-1",
		diver.ListDiversParams{},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, divers, 1)
	assert.Equal(t, "Maya", divers[0].FirstName)
}
