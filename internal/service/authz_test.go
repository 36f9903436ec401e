package service

import (
	"context"
	"testing"

	"github.com/holybond/holybond-v2/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeAnonymous(t *testing.T) {
	db, auth := setupAuth(t)
	admin := adminClaims()

	profiles := NewProfileService(db)
	_, pending, _ := registerUser(t, auth, "alice@x.com", "Alice")
	_, bobProfile, _ := registerUser(t, auth, "bob@x.com", "Bob")

	approved, err := profiles.SetProfileStatus(context.Background(), admin, bobProfile.ID, models.ProfileApproved)
	require.NoError(t, err)

	// Anonymous viewers see APPROVED profiles only; hidden ones read as
	// absent rather than as an authentication problem.
	assert.NoError(t, Authorize(db, nil, ActionView, approved))
	assert.ErrorIs(t, Authorize(db, nil, ActionView, pending), ErrNotFound)

	rejected, err := profiles.SetProfileStatus(context.Background(), admin, pending.ID, models.ProfileRejected)
	require.NoError(t, err)
	assert.ErrorIs(t, Authorize(db, nil, ActionView, rejected), ErrNotFound)

	// Any action beyond viewing needs a session.
	for _, action := range []Action{ActionShortlist, ActionInterest, ActionBlock, ActionReport, ActionChat} {
		assert.ErrorIs(t, Authorize(db, nil, action, approved), ErrAuthRequired)
	}
}
