package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChurchLoop/models"
)

func TestCreateVolunteerDefaults(t *testing.T) {
	setupTestRepos(t)
	_, user := seedChurchUser(t, "Church", "admin@church.org")
	member := seedMember(t, user.ChurchID, "Thabo", "Nkosi")

	c, w := testContext(t, "POST", "/api/volunteers", map[string]any{
		"memberId": member.ID.Hex(),
		"role":     "usher",
	})
	asUser(c, user)
	CreateVolunteer(c)

	require.Equal(t, http.StatusCreated, w.Code)
	var volunteer models.Volunteer
	decodeData(t, w, &volunteer)

	assert.Equal(t, user.ChurchID, volunteer.ChurchID)
	assert.Equal(t, "active", volunteer.Status)
	assert.False(t, volunteer.StartDate.IsZero())
}

func TestCreateVolunteerValidation(t *testing.T) {
	setupTestRepos(t)
	_, user := seedChurchUser(t, "Church", "admin@church.org")
	member := seedMember(t, user.ChurchID, "Thabo", "Nkosi")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing member", map[string]any{"role": "usher"}},
		{"missing role", map[string]any{"memberId": member.ID.Hex()}},
		{"bad status", map[string]any{"memberId": member.ID.Hex(), "role": "usher", "status": "retired"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext(t, "POST", "/api/volunteers", tt.body)
			asUser(c, user)
			CreateVolunteer(c)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestVolunteerCrossTenantIs404(t *testing.T) {
	setupTestRepos(t)
	_, userA := seedChurchUser(t, "Church A", "a@church.org")
	_, userB := seedChurchUser(t, "Church B", "b@church.org")
	member := seedMember(t, userA.ChurchID, "Thabo", "Nkosi")

	c, w := testContext(t, "POST", "/api/volunteers", map[string]any{
		"memberId": member.ID.Hex(),
		"role":     "usher",
	})
	asUser(c, userA)
	CreateVolunteer(c)
	require.Equal(t, http.StatusCreated, w.Code)
	var volunteer models.Volunteer
	decodeData(t, w, &volunteer)

	get, gw := testContext(t, "GET", "/api/volunteers/"+volunteer.ID.Hex(), nil)
	asUser(get, userB)
	setParam(get, "id", volunteer.ID.Hex())
	GetVolunteer(get)

	assert.Equal(t, http.StatusNotFound, gw.Code)
	assert.Equal(t, "Volunteer not found", decodeEnvelope(t, gw).Error)
}
