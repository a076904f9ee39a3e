package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxislab/comptrack/internal/model"
	"github.com/praxislab/comptrack/internal/repository"
	"github.com/praxislab/comptrack/internal/store"
	"github.com/praxislab/comptrack/internal/testutil"
)

func newUsersService(t *testing.T) (*Users, *testutil.FakeDynamo) {
	t.Helper()
	fake := testutil.NewFakeDynamo()
	fake.CreateTable("users", "UserId")

	s := store.NewWithAPI(fake)
	return NewUsers(repository.NewUsers(s, "users"), testutil.MakeNoopLogger()), fake
}

func TestUsersRegister(t *testing.T) {
	svc, fake := newUsersService(t)
	ctx := context.Background()

	err := svc.Register(ctx, &model.User{
		UserID:   "u-1",
		UserInfo: model.UserInfo{Name: "Grace", Email: "grace@example.edu"},
		Role:     model.RoleStudent,
		Cohort:   "2023",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fake.Len("users"))

	got, err := svc.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.UserInfo.Name)
	assert.Equal(t, model.RoleStudent, got.Role)
}

func TestUsersRegister_Invalid(t *testing.T) {
	svc, fake := newUsersService(t)
	ctx := context.Background()

	for name, user := range map[string]*model.User{
		"empty id":     {UserInfo: model.UserInfo{Name: "x"}, Role: model.RoleStudent},
		"empty name":   {UserID: "u-2", Role: model.RoleStudent},
		"unknown role": {UserID: "u-3", UserInfo: model.UserInfo{Name: "x"}, Role: "Wizard"},
	} {
		t.Run(name, func(t *testing.T) {
			err := svc.Register(ctx, user)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, fake.Len("users"))
}

func TestUsersGet_NotFound(t *testing.T) {
	svc, _ := newUsersService(t)

	_, err := svc.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUsersDelete_AbsentIsNoop(t *testing.T) {
	svc, _ := newUsersService(t)

	assert.NoError(t, svc.Delete(context.Background(), "ghost"))
}

func TestUsersList_Paged(t *testing.T) {
	svc, _ := newUsersService(t)
	ctx := context.Background()

	for _, id := range []string{"u-1", "u-2", "u-3"} {
		require.NoError(t, svc.Register(ctx, &model.User{
			UserID:   id,
			UserInfo: model.UserInfo{Name: "n-" + id},
			Role:     model.RoleStudent,
		}))
	}

	var seen []string
	cursor := ""
	for {
		page, err := svc.List(ctx, cursor, "2")
		require.NoError(t, err)
		for _, u := range page.Items {
			seen = append(seen, u.UserID)
		}
		if page.Cursor == "" {
			break
		}
		cursor = page.Cursor
	}
	assert.ElementsMatch(t, []string{"u-1", "u-2", "u-3"}, seen)
}
