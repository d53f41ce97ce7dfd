package controllers

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ChurchLoop/models"
	"github.com/ChurchLoop/repositories"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret-key")
	os.Exit(m.Run())
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		seedEmail      string
		expectedStatus int
		expectedError  string
	}{
		{
			name: "successful registration",
			body: models.RegisterInput{
				Email:      "pastor@gracechurch.org",
				Password:   "secret123",
				FirstName:  "John",
				LastName:   "Mokoena",
				ChurchName: "Grace Church",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate email",
			body: models.RegisterInput{
				Email:      "taken@gracechurch.org",
				Password:   "secret123",
				FirstName:  "John",
				LastName:   "Mokoena",
				ChurchName: "Grace Church",
			},
			seedEmail:      "taken@gracechurch.org",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "User already exists",
		},
		{
			name: "short password",
			body: map[string]any{
				"email":      "pastor@gracechurch.org",
				"password":   "abc",
				"firstName":  "John",
				"lastName":   "Mokoena",
				"churchName": "Grace Church",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid email",
			body: map[string]any{
				"email":      "not-an-email",
				"password":   "secret123",
				"firstName":  "John",
				"lastName":   "Mokoena",
				"churchName": "Grace Church",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing church name",
			body: map[string]any{
				"email":     "pastor@gracechurch.org",
				"password":  "secret123",
				"firstName": "John",
				"lastName":  "Mokoena",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestRepos(t)
			if tt.seedEmail != "" {
				seedChurchUser(t, "Existing Church", tt.seedEmail)
			}

			c, w := testContext(t, "POST", "/api/auth/register", tt.body)
			Register(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus != http.StatusCreated {
				env := decodeEnvelope(t, w)
				assert.False(t, env.Success)
				if tt.expectedError != "" {
					assert.Equal(t, tt.expectedError, env.Error)
				}
				return
			}

			var data struct {
				User  models.PublicUser `json:"user"`
				Token string            `json:"token"`
			}
			decodeData(t, w, &data)
			assert.Equal(t, "pastor@gracechurch.org", data.User.Email)
			assert.Equal(t, "admin", data.User.Role)
			assert.NotEmpty(t, data.Token)

			// the registration created exactly one church and one user
			churches, _, err := repositories.Churches.List(context.Background(), bson.M{}, repositories.ListOptions{})
			require.NoError(t, err)
			require.Len(t, churches, 1)
			assert.Equal(t, "Grace Church", churches[0].Name)
			assert.Equal(t, "USD", churches[0].Currency)

			user, err := repositories.Users.FindOne(context.Background(), bson.M{"email": "pastor@gracechurch.org"})
			require.NoError(t, err)
			assert.Equal(t, churches[0].ID, user.ChurchID)
			assert.True(t, user.IsActive)
			assert.NotEqual(t, "secret123", user.Password)
		})
	}
}

func TestRegisterConflictLeavesNoOrphans(t *testing.T) {
	setupTestRepos(t)
	seedChurchUser(t, "First Church", "founder@first.org")

	c, w := testContext(t, "POST", "/api/auth/register", models.RegisterInput{
		Email:      "founder@first.org",
		Password:   "secret123",
		FirstName:  "Second",
		LastName:   "Founder",
		ChurchName: "Second Church",
	})
	Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	churches, total, err := repositories.Churches.List(context.Background(), bson.M{}, repositories.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "First Church", churches[0].Name)

	users, err := repositories.Users.Count(context.Background(), bson.M{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), users)
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{"valid credentials", "admin@church.org", "password123", http.StatusOK},
		{"uppercase email", "ADMIN@Church.org", "password123", http.StatusOK},
		{"unknown email", "nobody@church.org", "password123", http.StatusUnauthorized},
		{"wrong password", "admin@church.org", "wrong-password", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestRepos(t)
			seedChurchUser(t, "Test Church", "admin@church.org")

			c, w := testContext(t, "POST", "/api/auth/login", models.LoginInput{
				Email:    tt.email,
				Password: tt.password,
			})
			Login(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var data struct {
					User  models.PublicUser `json:"user"`
					Token string            `json:"token"`
				}
				decodeData(t, w, &data)
				assert.Equal(t, "admin@church.org", data.User.Email)
				assert.NotEmpty(t, data.Token)
			}
		})
	}
}

// Unknown email and wrong password must be indistinguishable.
func TestLoginFailureModesMatch(t *testing.T) {
	setupTestRepos(t)
	seedChurchUser(t, "Test Church", "admin@church.org")

	c1, w1 := testContext(t, "POST", "/api/auth/login", models.LoginInput{
		Email: "nobody@church.org", Password: "password123",
	})
	Login(c1)

	c2, w2 := testContext(t, "POST", "/api/auth/login", models.LoginInput{
		Email: "admin@church.org", Password: "wrong-password",
	})
	Login(c2)

	assert.Equal(t, w1.Code, w2.Code)
	assert.Equal(t, decodeEnvelope(t, w1).Error, decodeEnvelope(t, w2).Error)
	assert.Equal(t, "Invalid credentials", decodeEnvelope(t, w1).Error)
}
