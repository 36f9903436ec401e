package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortlistAddRemove(t *testing.T) {
	db, auth := setupAuth(t)
	admin := adminClaims()
	shortlist := NewShortlistService(db)
	ctx := context.Background()

	_, aliceProfile, alice := registerUser(t, auth, "alice@x.com", "Alice")
	_, bobProfile, _ := registerUser(t, auth, "bob@x.com", "Bob")
	approveProfile(t, db, admin, aliceProfile.ID)
	approveProfile(t, db, admin, bobProfile.ID)

	require.NoError(t, shortlist.Add(ctx, alice, bobProfile.ID))
	// Re-adding is a no-op.
	require.NoError(t, shortlist.Add(ctx, alice, bobProfile.ID))

	saved, err := shortlist.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, bobProfile.ID, saved[0].ID)

	ok, err := shortlist.IsShortlisted(ctx, alice, bobProfile.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, shortlist.Remove(ctx, alice, bobProfile.ID))
	// Removing an absent entry is a no-op.
	require.NoError(t, shortlist.Remove(ctx, alice, bobProfile.ID))

	saved, err = shortlist.List(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestShortlistIsPrivateAndDirectional(t *testing.T) {
	db, auth := setupAuth(t)
	admin := adminClaims()
	shortlist := NewShortlistService(db)
	ctx := context.Background()

	_, aliceProfile, alice := registerUser(t, auth, "alice@x.com", "Alice")
	_, bobProfile, bob := registerUser(t, auth, "bob@x.com", "Bob")
	approveProfile(t, db, admin, aliceProfile.ID)
	approveProfile(t, db, admin, bobProfile.ID)

	require.NoError(t, shortlist.Add(ctx, alice, bobProfile.ID))

	// Bob's list is unaffected by Alice saving him.
	saved, err := shortlist.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, saved)

	ok, err := shortlist.IsShortlisted(ctx, bob, aliceProfile.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestShortlistForbiddenCases(t *testing.T) {
	db, auth := setupAuth(t)
	admin := adminClaims()
	shortlist := NewShortlistService(db)
	ctx := context.Background()

	_, aliceProfile, alice := registerUser(t, auth, "alice@x.com", "Alice")
	approveProfile(t, db, admin, aliceProfile.ID)

	assert.ErrorIs(t, shortlist.Add(ctx, alice, aliceProfile.ID), ErrSelfActionForbidden)
	assert.ErrorIs(t, shortlist.Add(ctx, admin, aliceProfile.ID), ErrRoleForbidden)
	assert.ErrorIs(t, shortlist.Add(ctx, nil, aliceProfile.ID), ErrAuthRequired)

	_, err := shortlist.List(ctx, admin)
	assert.ErrorIs(t, err, ErrRoleForbidden)
}
