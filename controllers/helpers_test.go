package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/ChurchLoop/models"
	"github.com/ChurchLoop/repositories"
)

// setupTestRepos swaps every store for a fresh in-memory implementation.
func setupTestRepos(t *testing.T) {
	t.Helper()
	repositories.UseMemory()
}

// testContext builds a gin test context around a synthetic request. The
// target may carry query parameters.
func testContext(t *testing.T, method, target string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

// asUser simulates CheckAuth having resolved the principal.
func asUser(c *gin.Context, user models.User) {
	c.Set("currentUser", user)
}

func setParam(c *gin.Context, key, value string) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}

// seedChurchUser inserts a church plus an active admin user for it.
func seedChurchUser(t *testing.T, churchName, email string) (models.Church, models.User) {
	t.Helper()
	ctx := context.Background()

	church := models.NewChurch(churchName)
	require.NoError(t, repositories.Churches.Insert(ctx, &church))

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: "Admin",
		LastName:  "User",
		Role:      "admin",
		ChurchID:  church.ID,
		IsActive:  true,
	}
	require.NoError(t, repositories.Users.Insert(ctx, &user))
	return church, user
}

// seedMember inserts a member belonging to the given church.
func seedMember(t *testing.T, churchID primitive.ObjectID, firstName, lastName string) models.Member {
	t.Helper()
	member := models.Member{
		ChurchID:  churchID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     firstName + "@example.com",
	}
	member.ApplyDefaults()
	require.NoError(t, repositories.Members.Insert(context.Background(), &member))
	return member
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	env := decodeEnvelope(t, w)
	require.True(t, env.Success, "expected success envelope, got error %q", env.Error)
	require.NoError(t, json.Unmarshal(env.Data, dest))
}
