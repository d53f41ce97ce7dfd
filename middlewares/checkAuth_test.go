package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ChurchLoop/models"
	"github.com/ChurchLoop/repositories"
)

func signToken(userID primitive.ObjectID, expiresIn time.Duration, secret string) string {
	claims := jwt.MapClaims{
		"id":  userID.Hex(),
		"exp": float64(time.Now().Add(expiresIn).Unix()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(secret))
	return tokenString
}

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/test", nil)
	return c, w
}

func seedUser(t *testing.T, isActive bool) models.User {
	t.Helper()
	user := models.User{
		Email:     "test@example.com",
		FirstName: "Test",
		LastName:  "User",
		Role:      "admin",
		ChurchID:  primitive.NewObjectID(),
		IsActive:  isActive,
	}
	require.NoError(t, repositories.Users.Insert(context.Background(), &user))
	return user
}

func TestCheckAuth(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key")
	secret := "test-secret-key"

	tests := []struct {
		name              string
		authHeader        func(user models.User) string
		inactiveUser      bool
		unknownUser       bool
		expectAbort       bool
		expectCurrentUser bool
	}{
		{
			name:        "missing authorization header",
			authHeader:  func(models.User) string { return "" },
			expectAbort: true,
		},
		{
			name:        "no bearer prefix",
			authHeader:  func(u models.User) string { return signToken(u.ID, time.Hour, secret) },
			expectAbort: true,
		},
		{
			name:        "wrong prefix",
			authHeader:  func(u models.User) string { return "Basic " + signToken(u.ID, time.Hour, secret) },
			expectAbort: true,
		},
		{
			name:        "invalid signature",
			authHeader:  func(u models.User) string { return "Bearer " + signToken(u.ID, time.Hour, "wrong-secret") },
			expectAbort: true,
		},
		{
			name:        "expired token",
			authHeader:  func(u models.User) string { return "Bearer " + signToken(u.ID, -time.Hour, secret) },
			expectAbort: true,
		},
		{
			name:        "user no longer exists",
			authHeader:  func(models.User) string { return "Bearer " + signToken(primitive.NewObjectID(), time.Hour, secret) },
			unknownUser: true,
			expectAbort: true,
		},
		{
			name:         "deactivated user",
			authHeader:   func(u models.User) string { return "Bearer " + signToken(u.ID, time.Hour, secret) },
			inactiveUser: true,
			expectAbort:  true,
		},
		{
			name:              "valid token",
			authHeader:        func(u models.User) string { return "Bearer " + signToken(u.ID, time.Hour, secret) },
			expectCurrentUser: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repositories.UseMemory()
			user := seedUser(t, !tt.inactiveUser)

			c, w := setupTestContext()
			if header := tt.authHeader(user); header != "" {
				c.Request.Header.Set("Authorization", header)
			}

			CheckAuth(c)

			if tt.expectAbort {
				assert.True(t, c.IsAborted())
				assert.Equal(t, http.StatusUnauthorized, w.Code)
				_, exists := c.Get("currentUser")
				assert.False(t, exists)
				return
			}

			assert.False(t, c.IsAborted())
			got, exists := c.Get("currentUser")
			require.True(t, exists)
			current := got.(models.User)
			assert.Equal(t, user.ID, current.ID)
			assert.Equal(t, user.ChurchID, current.ChurchID)
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.GET("/ping", RateLimitMiddleware(1, 2, func(c *gin.Context) string { return "fixed" }), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	codes := []int{}
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestSecurityHeaders(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeaders)
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
}
