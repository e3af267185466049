package user

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/ledger"
	"github.com/devjjun/commu/internal/testing/memrepo"
)

type recordingWelcome struct {
	mu    sync.Mutex
	users []domain.User
}

func (r *recordingWelcome) SendWelcome(_ context.Context, user domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, user)
}

func newTestService() (Service, *memrepo.Store, ledger.Service, *recordingWelcome) {
	store := memrepo.NewStore()
	ledgerSvc := ledger.NewService(store.Ledger())
	welcome := &recordingWelcome{}
	return NewService(store.Users(), ledgerSvc, welcome), store, ledgerSvc, welcome
}

func TestRegister(t *testing.T) {
	svc, _, _, welcome := newTestService()

	created, err := svc.Register(context.Background(), "alice", "alice@example.com")
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, "alice@example.com", created.Email)

	require.Len(t, welcome.users, 1)
	assert.Equal(t, created.ID, welcome.users[0].ID)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _, _, welcome := newTestService()

	_, err := svc.Register(context.Background(), "alice", "a@example.com")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "other@example.com")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Len(t, welcome.users, 1, "no welcome mail for a failed registration")
}

func TestRegister_EmptyUsername(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), "   ", "a@example.com")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetProfile_BalanceDerivedFromLedger(t *testing.T) {
	svc, _, ledgerSvc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Register(ctx, "bob", "bob@example.com")
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Zero(t, profile.Balance)

	_, err = ledgerSvc.Award(ctx, created.ID, domain.EntryAdminGrant, 75, "seed", "")
	require.NoError(t, err)
	_, err = ledgerSvc.Spend(ctx, created.ID, 25, "spend", "")
	require.NoError(t, err)

	profile, err = svc.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, profile.Balance)
}

func TestGetProfile_UnknownUser(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
