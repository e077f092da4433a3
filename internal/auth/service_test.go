// AngelaMos | 2026
// service_test.go

package auth_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/diveadmin/internal/auth"
	"github.com/driftline/diveadmin/internal/config"
	"github.com/driftline/diveadmin/internal/core"
)

type fakeTokenRepo struct {
	byHash map[string]*auth.RefreshToken
	byID   map[string]*auth.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{
		byHash: map[string]*auth.RefreshToken{},
		byID:   map[string]*auth.RefreshToken{},
	}
}

func (f *fakeTokenRepo) Create(
	_ context.Context,
	token *auth.RefreshToken,
) error {
	token.CreatedAt = time.Now()
	f.byHash[token.TokenHash] = token
	f.byID[token.ID] = token
	return nil
}

func (f *fakeTokenRepo) FindByHash(
	_ context.Context,
	tokenHash string,
) (*auth.RefreshToken, error) {
	t, ok := f.byHash[tokenHash]
	if !ok {
		return nil, core.ErrNotFound
	}
	return t, nil
}

func (f *fakeTokenRepo) FindByID(
	_ context.Context,
	id string,
) (*auth.RefreshToken, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return t, nil
}

func (f *fakeTokenRepo) MarkAsUsed(
	_ context.Context,
	id, replacedByID string,
) error {
	t, ok := f.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	t.MarkAsUsed(replacedByID)
	return nil
}

func (f *fakeTokenRepo) RevokeByID(_ context.Context, id string) error {
	t, ok := f.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	t.Revoke()
	return nil
}

func (f *fakeTokenRepo) RevokeByFamilyID(
	_ context.Context,
	familyID string,
) error {
	for _, t := range f.byID {
		if t.FamilyID == familyID && !t.IsRevoked() {
			t.Revoke()
		}
	}
	return nil
}

func (f *fakeTokenRepo) RevokeAllForUser(
	_ context.Context,
	userID string,
) error {
	for _, t := range f.byID {
		if t.UserID == userID && !t.IsRevoked() {
			t.Revoke()
		}
	}
	return nil
}

func (f *fakeTokenRepo) GetActiveSessionsForUser(
	_ context.Context,
	userID string,
) ([]auth.RefreshToken, error) {
	sessions := []auth.RefreshToken{}
	for _, t := range f.byID {
		if t.UserID == userID && t.IsValid() {
			sessions = append(sessions, *t)
		}
	}
	return sessions, nil
}

func (f *fakeTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}

type fakeUserProvider struct {
	byUsername map[string]*auth.UserInfo
	byID       map[string]*auth.UserInfo
}

func newFakeUserProvider() *fakeUserProvider {
	return &fakeUserProvider{
		byUsername: map[string]*auth.UserInfo{},
		byID:       map[string]*auth.UserInfo{},
	}
}

func (f *fakeUserProvider) add(u *auth.UserInfo) {
	f.byUsername[u.Username] = u
	f.byID[u.ID] = u
}

func (f *fakeUserProvider) GetByUsername(
	_ context.Context,
	username string,
) (*auth.UserInfo, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserProvider) GetByID(
	_ context.Context,
	id string,
) (*auth.UserInfo, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserProvider) Create(
	_ context.Context,
	username, email, passwordHash string,
) (*auth.UserInfo, error) {
	if _, exists := f.byUsername[username]; exists {
		return nil, auth.ErrUsernameExists
	}
	u := &auth.UserInfo{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         "user",
		CreatedAt:    time.Now(),
	}
	f.add(u)
	return u, nil
}

func (f *fakeUserProvider) IncrementTokenVersion(
	_ context.Context,
	userID string,
) error {
	u, ok := f.byID[userID]
	if !ok {
		return core.ErrNotFound
	}
	u.TokenVersion++
	return nil
}

func (f *fakeUserProvider) UpdatePassword(
	_ context.Context,
	userID, passwordHash string,
) error {
	u, ok := f.byID[userID]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func newTestJWTManager(t *testing.T) *auth.JWTManager {
	t.Helper()

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")

	require.NoError(t, auth.GenerateKeyPair(privPath, pubPath))

	manager, err := auth.NewJWTManager(config.JWTConfig{
		PrivateKeyPath:     privPath,
		PublicKeyPath:      pubPath,
		AccessTokenExpire:  15 * time.Minute,
		RefreshTokenExpire: 7 * 24 * time.Hour,
		Issuer:             "diveadmin",
		Audience:           "diveadmin-api",
	})
	require.NoError(t, err)

	return manager
}

func newTestService(
	t *testing.T,
) (*auth.Service, *fakeTokenRepo, *fakeUserProvider) {
	t.Helper()

	repo := newFakeTokenRepo()
	users := newFakeUserProvider()
	svc := auth.NewService(repo, newTestJWTManager(t), users, nil)

	return svc, repo, users
}

func TestRegisterIssuesTokens(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp, err := svc.Register(context.Background(), auth.RegisterRequest{
		Username: "reefdiver",
		Email:    "reef@diving.local",
		Password: "open-water-99",
	}, "go-test", "127.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, "reefdiver", resp.User.Username)
	assert.Equal(t, "user", resp.User.Role)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	assert.Equal(t, "Bearer", resp.Tokens.TokenType)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := auth.RegisterRequest{
		Username: "reefdiver",
		Email:    "reef@diving.local",
		Password: "open-water-99",
	}

	_, err := svc.Register(context.Background(), req, "go-test", "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req, "go-test", "127.0.0.1")
	assert.ErrorIs(t, err, auth.ErrUsernameExists)
}

func TestLoginSuccess(t *testing.T) {
	svc, _, users := newTestService(t)

	hash, err := core.HashPassword("open-water-99")
	require.NoError(t, err)

	users.add(&auth.UserInfo{
		ID:           uuid.New().String(),
		Username:     "reefdiver",
		Email:        "reef@diving.local",
		PasswordHash: hash,
		Role:         "user",
	})

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "reefdiver",
		Password: "open-water-99",
	}, "go-test", "127.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, "reefdiver", resp.User.Username)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, users := newTestService(t)

	hash, err := core.HashPassword("open-water-99")
	require.NoError(t, err)

	users.add(&auth.UserInfo{
		ID:           uuid.New().String(),
		Username:     "reefdiver",
		PasswordHash: hash,
		Role:         "user",
	})

	_, err = svc.Login(context.Background(), auth.LoginRequest{
		Username: "reefdiver",
		Password: "not-the-password",
	}, "go-test", "127.0.0.1")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownUsername(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "nobody",
		Password: "whatever-here",
	}, "go-test", "127.0.0.1")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, repo, _ := newTestService(t)

	resp, err := svc.Register(context.Background(), auth.RegisterRequest{
		Username: "reefdiver",
		Email:    "reef@diving.local",
		Password: "open-water-99",
	}, "go-test", "127.0.0.1")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(
		context.Background(),
		resp.Tokens.RefreshToken,
		"go-test",
		"127.0.0.1",
	)
	require.NoError(t, err)
	assert.NotEqual(
		t,
		resp.Tokens.RefreshToken,
		refreshed.Tokens.RefreshToken,
	)

	original := repo.byHash[core.HashToken(resp.Tokens.RefreshToken)]
	assert.True(t, original.IsUsed)
}

func TestRefreshReuseBurnsFamily(t *testing.T) {
	svc, repo, _ := newTestService(t)

	resp, err := svc.Register(context.Background(), auth.RegisterRequest{
		Username: "reefdiver",
		Email:    "reef@diving.local",
		Password: "open-water-99",
	}, "go-test", "127.0.0.1")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(
		context.Background(),
		resp.Tokens.RefreshToken,
		"go-test",
		"127.0.0.1",
	)
	require.NoError(t, err)

	// Replaying the consumed token is treated as theft.
	_, err = svc.Refresh(
		context.Background(),
		resp.Tokens.RefreshToken,
		"go-test",
		"127.0.0.1",
	)
	assert.ErrorIs(t, err, auth.ErrTokenReuse)

	successor := repo.byHash[core.HashToken(refreshed.Tokens.RefreshToken)]
	assert.True(t, successor.IsRevoked())
}

func TestLogoutRejectsForeignToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp, err := svc.Register(context.Background(), auth.RegisterRequest{
		Username: "reefdiver",
		Email:    "reef@diving.local",
		Password: "open-water-99",
	}, "go-test", "127.0.0.1")
	require.NoError(t, err)

	err = svc.Logout(
		context.Background(),
		resp.Tokens.RefreshToken,
		"some-other-user",
	)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, _, users := newTestService(t)

	hash, err := core.HashPassword("open-water-99")
	require.NoError(t, err)

	userID := uuid.New().String()
	users.add(&auth.UserInfo{
		ID:           userID,
		Username:     "reefdiver",
		PasswordHash: hash,
		Role:         "user",
	})

	err = svc.ChangePassword(
		context.Background(),
		userID,
		"wrong-current",
		"new-password-123",
	)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	svc, repo, users := newTestService(t)

	resp, err := svc.Register(context.Background(), auth.RegisterRequest{
		Username: "reefdiver",
		Email:    "reef@diving.local",
		Password: "open-water-99",
	}, "go-test", "127.0.0.1")
	require.NoError(t, err)

	userID := resp.User.ID

	err = svc.ChangePassword(
		context.Background(),
		userID,
		"open-water-99",
		"new-password-123",
	)
	require.NoError(t, err)

	for _, token := range repo.byID {
		assert.True(t, token.IsRevoked())
	}

	assert.Equal(t, 1, users.byID[userID].TokenVersion)
}
