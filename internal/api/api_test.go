package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/holybond/holybond-v2/backend/internal/service"
	"github.com/holybond/holybond-v2/backend/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testSecret    = "test-secret"
	adminEmail    = "admin@holybond.in"
	adminPassword = "Admin@123"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.Open(t)
	authService := service.NewAuthService(db, nil, testSecret)

	router := gin.New()
	RegisterRoutes(router, db, authService, nil, nil)
	return router, db, authService
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func registerPayload(email, name string) map[string]interface{} {
	return map[string]interface{}{
		"email":    email,
		"password": "password123",
		"profile": map[string]interface{}{
			"full_name":     name,
			"gender":        "Female",
			"dob":           "1995-06-15",
			"denomination":  "CSI",
			"mother_tongue": "Telugu",
			"country":       "India",
			"city":          "Hyderabad",
		},
	}
}

// registerMember registers over HTTP and returns the session token and the
// new profile id.
func registerMember(t *testing.T, router *gin.Engine, email, name string) (string, string) {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/api/v1/auth/register", "", registerPayload(email, name))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	profile, _ := body["profile"].(map[string]interface{})
	require.NotNil(t, profile)
	profileID, _ := profile["id"].(string)
	require.NotEmpty(t, profileID)
	return token, profileID
}

func adminToken(t *testing.T, router *gin.Engine, authService *service.AuthService) string {
	t.Helper()
	require.NoError(t, authService.SeedAdmin(context.Background(), "", adminPassword))

	w := doJSON(router, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    adminEmail,
		"password": adminPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decodeBody(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthCheck(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := doJSON(router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decodeBody(t, w)["status"])
}

func TestAuthFlow(t *testing.T) {
	router, _, _ := setupRouter(t)

	token, _ := registerMember(t, router, "alice@x.com", "Alice")

	w := doJSON(router, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice@x.com", decodeBody(t, w)["email"])

	// Duplicate registration conflicts.
	w = doJSON(router, http.MethodPost, "/api/v1/auth/register", "", registerPayload("ALICE@x.com", "Alice Again"))
	assert.Equal(t, http.StatusConflict, w.Code)

	// Wrong password is unauthorized.
	w = doJSON(router, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "alice@x.com",
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Logout revokes the session.
	w = doJSON(router, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileApprovalFlow(t *testing.T) {
	router, _, authService := setupRouter(t)
	admin := adminToken(t, router, authService)

	aliceToken, aliceID := registerMember(t, router, "alice@x.com", "Alice")

	// Anonymous callers cannot see a PENDING profile.
	w := doJSON(router, http.MethodGet, "/api/v1/profiles/"+aliceID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The owner can.
	w = doJSON(router, http.MethodGet, "/api/v1/profiles/"+aliceID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Admin approves.
	w = doJSON(router, http.MethodPut, "/api/v1/admin/profiles/"+aliceID+"/status", admin, map[string]interface{}{
		"status": "APPROVED",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "APPROVED", decodeBody(t, w)["status"])

	// Now public.
	w = doJSON(router, http.MethodGet, "/api/v1/profiles/"+aliceID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// A material self-edit goes back to PENDING.
	w = doJSON(router, http.MethodPut, "/api/v1/profile", aliceToken, map[string]interface{}{
		"city": "Chennai",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "PENDING", decodeBody(t, w)["status"])

	w = doJSON(router, http.MethodGet, "/api/v1/profiles/"+aliceID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Re-approve, then a photos-only change keeps the status.
	w = doJSON(router, http.MethodPut, "/api/v1/admin/profiles/"+aliceID+"/status", admin, map[string]interface{}{
		"status": "APPROVED",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPut, "/api/v1/profile/photos", aliceToken, map[string]interface{}{
		"photos": []string{"profiles/a/1.jpg"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "APPROVED", decodeBody(t, w)["status"])
}

func TestSearchEndpoint(t *testing.T) {
	router, _, authService := setupRouter(t)
	admin := adminToken(t, router, authService)

	_, aliceID := registerMember(t, router, "alice@x.com", "Alice")
	w := doJSON(router, http.MethodPut, "/api/v1/admin/profiles/"+aliceID+"/status", admin, map[string]interface{}{
		"status": "APPROVED",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// No filters means no results.
	w = doJSON(router, http.MethodGet, "/api/v1/profiles", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["count"])

	w = doJSON(router, http.MethodGet, "/api/v1/profiles?q=hyderabad", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])
}

func TestAdminGuard(t *testing.T) {
	router, _, authService := setupRouter(t)

	w := doJSON(router, http.MethodGet, "/api/v1/admin/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	userToken, _ := registerMember(t, router, "alice@x.com", "Alice")
	w = doJSON(router, http.MethodGet, "/api/v1/admin/stats", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := adminToken(t, router, authService)
	w = doJSON(router, http.MethodGet, "/api/v1/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	stats := decodeBody(t, w)
	assert.Equal(t, float64(2), stats["total_accounts"])
	assert.Equal(t, float64(1), stats["pending_profiles"])
}

func TestInterestAndChatEndpoints(t *testing.T) {
	router, _, authService := setupRouter(t)
	admin := adminToken(t, router, authService)

	aliceToken, aliceID := registerMember(t, router, "alice@x.com", "Alice")
	bobToken, bobID := registerMember(t, router, "bob@x.com", "Bob")
	for _, id := range []string{aliceID, bobID} {
		w := doJSON(router, http.MethodPut, "/api/v1/admin/profiles/"+id+"/status", admin, map[string]interface{}{
			"status": "APPROVED",
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	// Alice sends an interest to Bob.
	w := doJSON(router, http.MethodPost, "/api/v1/interests", aliceToken, map[string]interface{}{
		"to_profile_id": bobID,
		"message":       "hello",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	interestID, _ := decodeBody(t, w)["id"].(string)
	require.NotEmpty(t, interestID)

	// Bob accepts.
	w = doJSON(router, http.MethodPut, "/api/v1/interests/"+interestID+"/status", bobToken, map[string]interface{}{
		"status": "ACCEPTED",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ACCEPTED", decodeBody(t, w)["status"])

	// They open a thread and exchange a message.
	w = doJSON(router, http.MethodPost, "/api/v1/chat/threads", aliceToken, map[string]interface{}{
		"profile_id": bobID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	threadID, _ := decodeBody(t, w)["id"].(string)
	require.NotEmpty(t, threadID)

	w = doJSON(router, http.MethodPost, fmt.Sprintf("/api/v1/chat/threads/%s/messages", threadID), bobToken, map[string]interface{}{
		"text": "hi Alice",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/chat/threads/"+threadID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestShortlistAndBlockEndpoints(t *testing.T) {
	router, _, authService := setupRouter(t)
	admin := adminToken(t, router, authService)

	aliceToken, aliceID := registerMember(t, router, "alice@x.com", "Alice")
	_, bobID := registerMember(t, router, "bob@x.com", "Bob")
	for _, id := range []string{aliceID, bobID} {
		w := doJSON(router, http.MethodPut, "/api/v1/admin/profiles/"+id+"/status", admin, map[string]interface{}{
			"status": "APPROVED",
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(router, http.MethodPost, "/api/v1/shortlist/"+bobID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/shortlist", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profiles, _ := decodeBody(t, w)["profiles"].([]interface{})
	assert.Len(t, profiles, 1)

	// Blocking Bob forbids sending him an interest.
	w = doJSON(router, http.MethodPost, "/api/v1/blocks/"+bobID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/interests", aliceToken, map[string]interface{}{
		"to_profile_id": bobID,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodDelete, "/api/v1/blocks/"+bobID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/interests", aliceToken, map[string]interface{}{
		"to_profile_id": bobID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestReportEndpoints(t *testing.T) {
	router, _, authService := setupRouter(t)
	admin := adminToken(t, router, authService)

	aliceToken, aliceID := registerMember(t, router, "alice@x.com", "Alice")
	_, bobID := registerMember(t, router, "bob@x.com", "Bob")
	for _, id := range []string{aliceID, bobID} {
		w := doJSON(router, http.MethodPut, "/api/v1/admin/profiles/"+id+"/status", admin, map[string]interface{}{
			"status": "APPROVED",
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(router, http.MethodPost, "/api/v1/reports", aliceToken, map[string]interface{}{
		"reported_profile_id": bobID,
		"reason":              "spam",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reportID, _ := decodeBody(t, w)["id"].(string)
	require.NotEmpty(t, reportID)

	// Members cannot reach the moderation surface.
	w = doJSON(router, http.MethodGet, "/api/v1/admin/reports", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/admin/reports", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	reports, _ := decodeBody(t, w)["reports"].([]interface{})
	assert.Len(t, reports, 1)

	w = doJSON(router, http.MethodPut, "/api/v1/admin/reports/"+reportID+"/review", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, adminEmail, decodeBody(t, w)["reviewed_by"])
}
