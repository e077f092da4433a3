// AngelaMos | 2026
// service_test.go

package equipment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/diveadmin/internal/core"
	"github.com/driftline/diveadmin/internal/equipment"
)

type fakeRepo struct {
	items       map[string]*equipment.Equipment
	diverOwners map[string]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items:       map[string]*equipment.Equipment{},
		diverOwners: map[string]string{},
	}
}

func (f *fakeRepo) Create(_ context.Context, e *equipment.Equipment) error {
	e.CreatedAt = time.Now()
	f.items[e.ID] = e
	return nil
}

func (f *fakeRepo) GetByID(
	_ context.Context,
	id string,
) (*equipment.Equipment, error) {
	e, ok := f.items[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *e
	copied.OwnerUserID = f.diverOwners[e.DiverID]
	return &copied, nil
}

func (f *fakeRepo) ListByUser(
	_ context.Context,
	userID string,
	params equipment.ListEquipmentParams,
) ([]equipment.Equipment, int, error) {
	out := []equipment.Equipment{}
	for _, e := range f.items {
		if f.diverOwners[e.DiverID] == userID {
			out = append(out, *e)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(_ context.Context, e *equipment.Equipment) error {
	if _, ok := f.items[e.ID]; !ok {
		return core.ErrNotFound
	}
	f.items[e.ID] = e
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) GetDiverOwner(
	_ context.Context,
	diverID string,
) (string, error) {
	owner, ok := f.diverOwners[diverID]
	if !ok {
		return "", core.ErrNotFound
	}
	return owner, nil
}

func strPtr(s string) *string { return &s }

func setup() (*equipment.Service, *fakeRepo) {
	repo := newFakeRepo()
	repo.diverOwners["diver-a"] = "user-1"
	repo.diverOwners["diver-x"] = "user-2"
	return equipment.NewService(repo), repo
}

func TestCreateForOwnDiver(t *testing.T) {
	svc, _ := setup()

	e, err := svc.Create(context.Background(), "user-1", equipment.CreateEquipmentRequest{
		DiverID:       "diver-a",
		EquipmentType: "Regulator",
		Condition:     strPtr("Good"),
		PurchaseDate:  strPtr("2025-03-01"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "user-1", e.OwnerUserID)
	require.NotNil(t, e.PurchaseDate)
	assert.Equal(t, "2025-03-01", e.PurchaseDate.Format("2006-01-02"))
}

func TestCreateDefaultsCondition(t *testing.T) {
	svc, _ := setup()

	e, err := svc.Create(context.Background(), "user-1", equipment.CreateEquipmentRequest{
		DiverID:       "diver-a",
		EquipmentType: "BCD",
	})
	require.NoError(t, err)

	require.NotNil(t, e.Condition)
	assert.Equal(t, equipment.DefaultCondition, *e.Condition)

	// An explicit condition is never overridden.
	e, err = svc.Create(context.Background(), "user-1", equipment.CreateEquipmentRequest{
		DiverID:       "diver-a",
		EquipmentType: "BCD",
		Condition:     strPtr("Fair"),
	})
	require.NoError(t, err)

	require.NotNil(t, e.Condition)
	assert.Equal(t, "Fair", *e.Condition)
}

func TestCreateForForeignDiver(t *testing.T) {
	svc, _ := setup()

	_, err := svc.Create(context.Background(), "user-1", equipment.CreateEquipmentRequest{
		DiverID:       "diver-x",
		EquipmentType: "Regulator",
	})
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestCreateForUnknownDiver(t *testing.T) {
	svc, _ := setup()

	// A diver that does not exist is a 404, not a 403; the two cases
	// must stay distinguishable.
	_, err := svc.Create(context.Background(), "user-1", equipment.CreateEquipmentRequest{
		DiverID:       "diver-missing",
		EquipmentType: "Regulator",
	})
	assert.ErrorIs(t, err, equipment.ErrDiverNotFound)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NotErrorIs(t, err, core.ErrForbidden)
}

func TestCreateRejectsBadDate(t *testing.T) {
	svc, _ := setup()

	_, err := svc.Create(context.Background(), "user-1", equipment.CreateEquipmentRequest{
		DiverID:       "diver-a",
		EquipmentType: "Regulator",
		PurchaseDate:  strPtr("01-03-2025"),
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestGetEnforcesTransitiveOwnership(t *testing.T) {
	svc, _ := setup()

	e, err := svc.Create(context.Background(), "user-1", equipment.CreateEquipmentRequest{
		DiverID:       "diver-a",
		EquipmentType: "BCD",
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "user-2", e.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)

	got, err := svc.Get(context.Background(), "user-1", e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
}

func TestUpdateMergesFields(t *testing.T) {
	svc, _ := setup()

	e, err := svc.Create(context.Background(), "user-1", equipment.CreateEquipmentRequest{
		DiverID:       "diver-a",
		EquipmentType: "Regulator",
		Brand:         strPtr("Apeks"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(
		context.Background(),
		"user-1",
		e.ID,
		equipment.UpdateEquipmentRequest{
			Condition:       strPtr("Needs Repair"),
			LastMaintenance: strPtr("2026-01-10"),
		},
	)
	require.NoError(t, err)

	require.NotNil(t, updated.Brand)
	assert.Equal(t, "Apeks", *updated.Brand)
	require.NotNil(t, updated.Condition)
	assert.Equal(t, "Needs Repair", *updated.Condition)
	require.NotNil(t, updated.LastMaintenance)
}

func TestDeleteForbiddenForForeignOwner(t *testing.T) {
	svc, repo := setup()

	e, err := svc.Create(context.Background(), "user-1", equipment.CreateEquipmentRequest{
		DiverID:       "diver-a",
		EquipmentType: "Fins",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "user-2", e.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.Contains(t, repo.items, e.ID)

	require.NoError(t, svc.Delete(context.Background(), "user-1", e.ID))
	assert.NotContains(t, repo.items, e.ID)
}
