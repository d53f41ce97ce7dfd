package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ChurchLoop/models"
)

func createPrayerRequest(t *testing.T, user models.User, body map[string]any) models.PrayerRequest {
	t.Helper()
	c, w := testContext(t, "POST", "/api/prayer-requests", body)
	asUser(c, user)
	CreatePrayerRequest(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var request models.PrayerRequest
	decodeData(t, w, &request)
	return request
}

func TestCreatePrayerRequestDefaultsRequester(t *testing.T) {
	setupTestRepos(t)
	_, user := seedChurchUser(t, "Church", "admin@church.org")

	request := createPrayerRequest(t, user, map[string]any{
		"title":       "Healing",
		"description": "Please pray for my recovery",
	})

	assert.Equal(t, user.ID, request.RequesterID)
	assert.Equal(t, user.ChurchID, request.ChurchID)
	assert.Equal(t, "active", request.Status)
	assert.NotNil(t, request.PrayedBy)
	assert.Empty(t, request.PrayedBy)
}

func TestCreatePrayerRequestKeepsExplicitRequester(t *testing.T) {
	setupTestRepos(t)
	_, user := seedChurchUser(t, "Church", "admin@church.org")
	requester := primitive.NewObjectID()

	request := createPrayerRequest(t, user, map[string]any{
		"title":       "Travel mercies",
		"description": "Mission trip next month",
		"requesterId": requester.Hex(),
	})

	assert.Equal(t, requester, request.RequesterID)
}

func TestGetPrayerRequestsStatusFilter(t *testing.T) {
	setupTestRepos(t)
	_, user := seedChurchUser(t, "Church", "admin@church.org")

	createPrayerRequest(t, user, map[string]any{"title": "One", "description": "d"})
	answered := createPrayerRequest(t, user, map[string]any{
		"title": "Two", "description": "d", "status": "answered",
	})

	c, w := testContext(t, "GET", "/api/prayer-requests?status=answered", nil)
	asUser(c, user)
	GetPrayerRequests(c)

	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Data  []models.PrayerRequest `json:"data"`
		Total int64                  `json:"total"`
	}
	decodeData(t, w, &page)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, answered.ID, page.Data[0].ID)
}

func TestDeletePrayerRequest(t *testing.T) {
	setupTestRepos(t)
	_, user := seedChurchUser(t, "Church", "admin@church.org")
	request := createPrayerRequest(t, user, map[string]any{"title": "One", "description": "d"})

	c, w := testContext(t, "DELETE", "/api/prayer-requests/"+request.ID.Hex(), nil)
	asUser(c, user)
	setParam(c, "id", request.ID.Hex())
	DeletePrayerRequest(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Prayer request deleted successfully", decodeEnvelope(t, w).Message)

	again, aw := testContext(t, "DELETE", "/api/prayer-requests/"+request.ID.Hex(), nil)
	asUser(again, user)
	setParam(again, "id", request.ID.Hex())
	DeletePrayerRequest(again)
	assert.Equal(t, http.StatusNotFound, aw.Code)
}
