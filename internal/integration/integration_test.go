package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/holybond/holybond-v2/backend/internal/database"
	"github.com/holybond/holybond-v2/backend/internal/models"
	"github.com/holybond/holybond-v2/backend/internal/service"
	"github.com/holybond/holybond-v2/backend/internal/types"
)

// setupPostgres starts a disposable PostgreSQL container and returns a
// migrated connection. Skipped unless docker is available and
// RUN_INTEGRATION_TESTS is set.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	if os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("RUN_INTEGRATION_TESTS not set, skipping container-based test")
	}
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postpass",
				"POSTGRES_DB":       "holybond_test",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start postgres container")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mappedPort, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=postgres password=postpass dbname=holybond_test sslmode=disable",
		host, mappedPort.Port())

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "failed to connect to postgres")

	require.NoError(t, database.RunMigrations(db))
	return db
}

// TestMatchingLifecycleOnPostgres runs the core flow against a real
// PostgreSQL: register, approve, search, interest, chat.
func TestMatchingLifecycleOnPostgres(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	auth := service.NewAuthService(db, nil, "integration-secret")
	profiles := service.NewProfileService(db)
	interests := service.NewInterestService(db)
	chat := service.NewChatService(db)

	require.NoError(t, auth.SeedAdmin(ctx, "", "Admin@123"))
	adminAccount, _, err := auth.Login(ctx, "admin@holybond.in", "Admin@123")
	require.NoError(t, err)
	admin := claimsFor(adminAccount)

	aliceAccount, aliceProfile, _, err := auth.Register(ctx, "alice@x.com", "password123", &types.ProfileDraft{
		FullName: "Alice", Gender: "Female", DOB: "1995-06-15",
		Denomination: "CSI", MotherTongue: "Telugu",
		Country: "India", City: "Hyderabad",
	})
	require.NoError(t, err)
	alice := claimsFor(aliceAccount)

	bobAccount, bobProfile, _, err := auth.Register(ctx, "bob@x.com", "password123", &types.ProfileDraft{
		FullName: "Bob", Gender: "Male", DOB: "1992-03-01",
		Denomination: "CSI", MotherTongue: "Telugu",
		Country: "India", City: "Hyderabad",
	})
	require.NoError(t, err)
	bob := claimsFor(bobAccount)

	_, err = profiles.SetProfileStatus(ctx, admin, aliceProfile.ID, models.ProfileApproved)
	require.NoError(t, err)
	_, err = profiles.SetProfileStatus(ctx, admin, bobProfile.ID, models.ProfileApproved)
	require.NoError(t, err)

	results, err := profiles.Search(ctx, types.SearchFilters{City: "Hyderabad", Gender: "Male"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, bobProfile.ID, results[0].ID)

	interest, err := interests.Send(ctx, alice, bobProfile.ID, "hello")
	require.NoError(t, err)
	accepted, err := interests.SetStatus(ctx, bob, interest.ID, models.InterestAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.InterestAccepted, accepted.Status)

	thread, err := chat.GetOrCreateThread(ctx, alice, bobProfile.ID)
	require.NoError(t, err)
	_, err = chat.SendMessage(ctx, bob, thread.ID, "hi Alice")
	require.NoError(t, err)

	loaded, err := chat.GetThread(ctx, alice, thread.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 1)
	assert.Equal(t, "hi Alice", loaded.Messages[0].Body)
}

func claimsFor(account *models.Account) *types.TokenClaims {
	return &types.TokenClaims{
		AccountID: account.ID,
		ProfileID: account.ProfileID,
		Email:     account.Email,
		Role:      account.Role,
	}
}
