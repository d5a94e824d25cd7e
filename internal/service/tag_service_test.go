package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagCRUD(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Tags.GetByUserID(f.ctx, f.user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	tag, err := f.svc.Tags.Add(f.ctx, " travel ", "#abc", f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "travel", tag.Name)

	_, err = f.svc.Tags.Add(f.ctx, "", "#abc", f.user.ID)
	assert.ErrorIs(t, err, ErrValidation)

	require.True(t, f.svc.Tags.Edit(f.ctx, tag.ID, "trips", "#def", f.user.ID))
	got, err := f.svc.Tags.GetByID(f.ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, &TagDTO{ID: tag.ID, Name: "trips", Color: "#def", UserID: f.user.ID}, got)

	assert.False(t, f.svc.Tags.Edit(f.ctx, 9999, "trips", "", f.user.ID))

	tags, err := f.svc.Tags.GetByUserIDPaged(f.ctx, f.user.ID, 1, 5)
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	assert.True(t, f.svc.Tags.Delete(f.ctx, tag.ID))
	assert.False(t, f.svc.Tags.Delete(f.ctx, tag.ID))
	_, err = f.svc.Tags.GetByID(f.ctx, tag.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTagAssociation(t *testing.T) {
	f := newFixture(t)
	tx := f.addTx(t, -8, day(2024, 6, 1))
	tag, err := f.svc.Tags.Add(f.ctx, "lunch", "", f.user.ID)
	require.NoError(t, err)

	tags, err := f.svc.Tags.GetByTransactionID(f.ctx, tx.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)

	require.NoError(t, f.svc.Tags.AddTagsToTransaction(f.ctx, tx.ID, []int{tag.ID}))
	require.NoError(t, f.svc.Tags.AddTagsToTransaction(f.ctx, tx.ID, []int{tag.ID}))

	tags, err = f.svc.Tags.GetByTransactionID(f.ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, []TagDTO{*tag}, tags)

	assert.ErrorIs(t, f.svc.Tags.AddTagsToTransaction(f.ctx, tx.ID, []int{0}), ErrValidation)
	assert.ErrorIs(t, f.svc.Tags.AddTagsToTransaction(f.ctx, 9999, []int{tag.ID}), ErrValidation)

	require.NoError(t, f.svc.Tags.RemoveTagsFromTransaction(f.ctx, tx.ID))
	tags, err = f.svc.Tags.GetByTransactionID(f.ctx, tx.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
}
