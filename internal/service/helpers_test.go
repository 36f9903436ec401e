package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/holybond/holybond-v2/backend/internal/models"
	"github.com/holybond/holybond-v2/backend/internal/testdb"
	"github.com/holybond/holybond-v2/backend/internal/types"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func setupAuth(t *testing.T) (*gorm.DB, *AuthService) {
	t.Helper()
	db := testdb.Open(t)
	return db, NewAuthService(db, nil, testSecret)
}

func testDraft(name string) *types.ProfileDraft {
	return &types.ProfileDraft{
		FullName:     name,
		Gender:       "Female",
		DOB:          "1995-06-15",
		Denomination: "CSI",
		MotherTongue: "Telugu",
		Country:      "India",
		State:        "Telangana",
		City:         "Hyderabad",
		Education:    "B.Tech",
		Profession:   "Engineer",
	}
}

func registerUser(t *testing.T, auth *AuthService, email, name string) (*models.Account, *models.Profile, *types.TokenClaims) {
	t.Helper()
	account, profile, _, err := auth.Register(context.Background(), email, "password123", testDraft(name))
	require.NoError(t, err)
	return account, profile, claimsFor(account)
}

func claimsFor(account *models.Account) *types.TokenClaims {
	return &types.TokenClaims{
		AccountID: account.ID,
		ProfileID: account.ProfileID,
		Email:     account.Email,
		Role:      account.Role,
	}
}

// adminClaims builds admin claims without seeding the admin account, for
// tests that must not have the admin's approved profile in the dataset.
func adminClaims() *types.TokenClaims {
	return &types.TokenClaims{
		AccountID: uuid.New(),
		ProfileID: uuid.New(),
		Email:     "admin@holybond.in",
		Role:      models.RoleAdmin,
	}
}

func seedAdmin(t *testing.T, db *gorm.DB, auth *AuthService) *types.TokenClaims {
	t.Helper()
	require.NoError(t, auth.SeedAdmin(context.Background(), "", "Admin@123"))

	var account models.Account
	require.NoError(t, db.Where("role = ?", models.RoleAdmin).First(&account).Error)
	return claimsFor(&account)
}

func approveProfile(t *testing.T, db *gorm.DB, admin *types.TokenClaims, profileID uuid.UUID) {
	t.Helper()
	p, err := NewProfileService(db).SetProfileStatus(context.Background(), admin, profileID, models.ProfileApproved)
	require.NoError(t, err)
	require.Equal(t, models.ProfileApproved, p.Status)
}
