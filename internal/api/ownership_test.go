package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/youridegraef/qash-backend-sub000/internal/auth"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
	"github.com/youridegraef/qash-backend-sub000/internal/storage/memory"
)

func TestOwned(t *testing.T) {
	ctx := context.Background()
	get := func(_ context.Context, id int) (*service.TagDTO, error) {
		if id == 404 {
			return nil, &service.NotFoundError{Entity: service.EntityTag, Key: id}
		}
		return &service.TagDTO{ID: id, UserID: 7}, nil
	}

	tag, err := Owned(ctx, 7, 1, service.EntityTag, get, TagOwner)
	require.NoError(t, err)
	assert.Equal(t, 1, tag.ID)

	_, err = Owned(ctx, 8, 1, service.EntityTag, get, TagOwner)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.EqualError(t, err, "tag 1 not found")

	_, err = Owned(ctx, 7, 404, service.EntityTag, get, TagOwner)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCheckReferences(t *testing.T) {
	ctx := context.Background()
	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	svc := service.New(memory.New(), hasher, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ann, err := svc.Users.Register(ctx, "Ann", "ann@example.com", "pw", nil)
	require.NoError(t, err)
	bob, err := svc.Users.Register(ctx, "Bob", "bob@example.com", "pw", nil)
	require.NoError(t, err)

	food, err := svc.Categories.Add(ctx, "Food", "", ann.ID)
	require.NoError(t, err)
	annTag, err := svc.Tags.Add(ctx, "weekly", "", ann.ID)
	require.NoError(t, err)
	bobTag, err := svc.Tags.Add(ctx, "mine", "", bob.ID)
	require.NoError(t, err)

	assert.NoError(t, CheckReferences(ctx, svc, ann.ID, food.ID, []int{annTag.ID}))
	assert.NoError(t, CheckReferences(ctx, svc, ann.ID, 0, []int{-1}))

	err = CheckReferences(ctx, svc, bob.ID, food.ID, nil)
	var nf *service.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, service.EntityCategory, nf.Entity)

	err = CheckReferences(ctx, svc, ann.ID, food.ID, []int{annTag.ID, bobTag.ID})
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, service.EntityTag, nf.Entity)
	assert.Equal(t, bobTag.ID, nf.Key)
}
