// AngelaMos | 2026
// service_test.go

package site_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/diveadmin/internal/core"
	"github.com/driftline/diveadmin/internal/site"
)

type fakeRepo struct {
	sites     map[string]*site.DiveSite
	diveCount map[string]int
	deleted   []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		sites:     map[string]*site.DiveSite{},
		diveCount: map[string]int{},
	}
}

func (f *fakeRepo) Create(_ context.Context, s *site.DiveSite) error {
	for _, existing := range f.sites {
		if existing.Name == s.Name {
			return site.ErrNameTaken
		}
	}
	s.CreatedAt = time.Now()
	f.sites[s.ID] = s
	return nil
}

func (f *fakeRepo) GetByID(
	_ context.Context,
	id string,
) (*site.DiveSite, error) {
	s, ok := f.sites[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeRepo) List(
	_ context.Context,
	params site.ListSitesParams,
) ([]site.DiveSite, int, error) {
	out := []site.DiveSite{}
	for _, s := range f.sites {
		out = append(out, *s)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(_ context.Context, s *site.DiveSite) error {
	if _, ok := f.sites[s.ID]; !ok {
		return core.ErrNotFound
	}
	f.sites[s.ID] = s
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.sites[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.sites, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) CountDives(
	_ context.Context,
	siteID string,
) (int, error) {
	return f.diveCount[siteID], nil
}

func floatPtr(v float64) *float64 { return &v }

func TestCreateSite(t *testing.T) {
	svc := site.NewService(newFakeRepo())

	created, err := svc.Create(context.Background(), site.CreateSiteRequest{
		Name:     "Silfra Rift",
		Location: "Iceland",
		DepthMin: floatPtr(2),
		DepthMax: floatPtr(65),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Silfra Rift", created.Name)
}

func TestCreateRejectsInvertedDepthRange(t *testing.T) {
	svc := site.NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), site.CreateSiteRequest{
		Name:     "Silfra Rift",
		Location: "Iceland",
		DepthMin: floatPtr(65),
		DepthMax: floatPtr(2),
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestCreateDuplicateName(t *testing.T) {
	svc := site.NewService(newFakeRepo())

	req := site.CreateSiteRequest{Name: "Blue Hole", Location: "Belize"}

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, site.ErrNameTaken)
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestUpdateChecksMergedDepthRange(t *testing.T) {
	repo := newFakeRepo()
	svc := site.NewService(repo)

	created, err := svc.Create(context.Background(), site.CreateSiteRequest{
		Name:     "Blue Hole",
		Location: "Belize",
		DepthMin: floatPtr(20),
		DepthMax: floatPtr(125),
	})
	require.NoError(t, err)

	// Lowering depth_max below the existing depth_min must fail even
	// though the request alone looks valid.
	_, err = svc.Update(context.Background(), created.ID, site.UpdateSiteRequest{
		DepthMax: floatPtr(10),
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	updated, err := svc.Update(context.Background(), created.ID, site.UpdateSiteRequest{
		DepthMax: floatPtr(130),
	})
	require.NoError(t, err)
	assert.Equal(t, 130.0, *updated.DepthMax)
	assert.Equal(t, "Blue Hole", updated.Name)
}

func TestDeleteBlockedWhileDivesReferenceSite(t *testing.T) {
	repo := newFakeRepo()
	svc := site.NewService(repo)

	created, err := svc.Create(context.Background(), site.CreateSiteRequest{
		Name:     "Blue Hole",
		Location: "Belize",
	})
	require.NoError(t, err)

	repo.diveCount[created.ID] = 3

	err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Empty(t, repo.deleted)

	repo.diveCount[created.ID] = 0

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Equal(t, []string{created.ID}, repo.deleted)
}
