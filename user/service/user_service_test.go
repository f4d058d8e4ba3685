package service

import (
	"context"
	"sync"
	"testing"

	apperrors "classroom-qa-demo/backend/pkg/errors"
	"classroom-qa-demo/backend/user/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return gorm.ErrDuplicatedKey
	}
	r.nextID++
	user.ID = r.nextID
	stored := *user
	r.users[user.Username] = &stored
	return nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[username]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func TestResolveCreatesOnFirstUse(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	user, err := svc.Resolve(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotZero(t, user.ID)

	again, err := svc.Resolve(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}

func TestResolveTrimsWhitespace(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	user, err := svc.Resolve(context.Background(), "  bob \t")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)

	same, err := svc.Resolve(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, user.ID, same.ID)
}

func TestResolveRejectsEmptyName(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := svc.Resolve(context.Background(), name)
		require.Error(t, err)
		assert.Equal(t, "INVALID_IDENTITY", apperrors.GetErrorCode(err))
	}
}

func TestResolveConcurrentSameName(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	const workers = 16
	ids := make([]uint, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user, err := svc.Resolve(context.Background(), "carol")
			if assert.NoError(t, err) {
				ids[i] = user.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Len(t, repo.users, 1)
}

func TestResolveRefetchesAfterCreateRace(t *testing.T) {
	repo := newFakeUserRepo()
	// Simulate an instance that lost the create race: row appears between
	// lookup and create
	winner := &models.User{Username: "dave"}
	require.NoError(t, repo.Create(context.Background(), winner))

	svc := NewUserService(repo)
	user, err := svc.Resolve(context.Background(), "dave")
	require.NoError(t, err)
	assert.Equal(t, winner.ID, user.ID)
}

func TestLookupNeverCreates(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user, err := svc.Lookup(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Empty(t, repo.users)

	blank, err := svc.Lookup(context.Background(), "  ")
	require.NoError(t, err)
	assert.Nil(t, blank)
}
