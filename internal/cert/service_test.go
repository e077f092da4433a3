// AngelaMos | 2026
// service_test.go

package cert_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/diveadmin/internal/cert"
	"github.com/driftline/diveadmin/internal/core"
)

type fakeRepo struct {
	certs       map[string]*cert.Certification
	diverOwners map[string]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		certs:       map[string]*cert.Certification{},
		diverOwners: map[string]string{},
	}
}

func (f *fakeRepo) Create(_ context.Context, c *cert.Certification) error {
	c.CreatedAt = time.Now()
	f.certs[c.ID] = c
	return nil
}

func (f *fakeRepo) GetByID(
	_ context.Context,
	id string,
) (*cert.Certification, error) {
	c, ok := f.certs[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *c
	copied.OwnerUserID = f.diverOwners[c.DiverID]
	return &copied, nil
}

func (f *fakeRepo) ListByUser(
	_ context.Context,
	userID string,
	params cert.ListCertificationsParams,
) ([]cert.Certification, int, error) {
	out := []cert.Certification{}
	for _, c := range f.certs {
		if f.diverOwners[c.DiverID] == userID {
			out = append(out, *c)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(_ context.Context, c *cert.Certification) error {
	if _, ok := f.certs[c.ID]; !ok {
		return core.ErrNotFound
	}
	f.certs[c.ID] = c
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.certs[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.certs, id)
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

func setup() (*cert.Service, *fakeRepo) {
	repo := newFakeRepo()
	repo.diverOwners["diver-a"] = "user-1"
	repo.diverOwners["diver-x"] = "user-2"
	return cert.NewService(repo), repo
}

func TestCreateCertification(t *testing.T) {
	svc, _ := setup()

	c, err := svc.Create(context.Background(), "user-1", cert.CreateCertificationRequest{
		DiverID:        "diver-a",
		CertType:       "Open Water Diver",
		Agency:         strPtr("PADI"),
		DateIssued:     "2024-05-20",
		ExpirationDate: strPtr("2029-05-20"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "2024-05-20", c.DateIssued.Format("2006-01-02"))
	require.NotNil(t, c.ExpirationDate)
}

func TestCreateRejectsExpirationBeforeIssue(t *testing.T) {
	svc, _ := setup()

	_, err := svc.Create(context.Background(), "user-1", cert.CreateCertificationRequest{
		DiverID:        "diver-a",
		CertType:       "Open Water Diver",
		DateIssued:     "2024-05-20",
		ExpirationDate: strPtr("2023-01-01"),
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestCreateForUnknownDiver(t *testing.T) {
	svc, _ := setup()

	_, err := svc.Create(context.Background(), "user-1", cert.CreateCertificationRequest{
		DiverID:    "diver-missing",
		CertType:   "Open Water Diver",
		DateIssued: "2024-05-20",
	})
	assert.ErrorIs(t, err, cert.ErrDiverNotFound)
	assert.NotErrorIs(t, err, core.ErrForbidden)
}

func TestCreateForForeignDiver(t *testing.T) {
	svc, _ := setup()

	_, err := svc.Create(context.Background(), "user-1", cert.CreateCertificationRequest{
		DiverID:    "diver-x",
		CertType:   "Open Water Diver",
		DateIssued: "2024-05-20",
	})
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestUpdateKeepsDatesConsistent(t *testing.T) {
	svc, _ := setup()

	c, err := svc.Create(context.Background(), "user-1", cert.CreateCertificationRequest{
		DiverID:    "diver-a",
		CertType:   "Open Water Diver",
		DateIssued: "2024-05-20",
	})
	require.NoError(t, err)

	// Moving the issue date past an existing expiration must fail.
	_, err = svc.Update(context.Background(), "user-1", c.ID, cert.UpdateCertificationRequest{
		ExpirationDate: strPtr("2025-01-01"),
		DateIssued:     strPtr("2026-01-01"),
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	updated, err := svc.Update(context.Background(), "user-1", c.ID, cert.UpdateCertificationRequest{
		ExpirationDate: strPtr("2029-05-20"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ExpirationDate)
	assert.Equal(t, "Open Water Diver", updated.CertType)
}

func TestIsExpired(t *testing.T) {
	svc, _ := setup()

	c, err := svc.Create(context.Background(), "user-1", cert.CreateCertificationRequest{
		DiverID:        "diver-a",
		CertType:       "Enriched Air Diver",
		DateIssued:     "2020-01-15",
		ExpirationDate: strPtr("2022-01-15"),
	})
	require.NoError(t, err)

	assert.True(t, c.IsExpired(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, c.IsExpired(time.Date(2021, 8, 1, 0, 0, 0, 0, time.UTC)))
}

func TestGetForbiddenForForeignOwner(t *testing.T) {
	svc, _ := setup()

	c, err := svc.Create(context.Background(), "user-1", cert.CreateCertificationRequest{
		DiverID:    "diver-a",
		CertType:   "Rescue Diver",
		DateIssued: "2024-05-20",
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "user-2", c.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)
}
