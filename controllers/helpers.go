package controllers

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ChurchLoop/models"
)

// currentUser returns the principal CheckAuth resolved for this request.
func currentUser(c *gin.Context) models.User {
	v, _ := c.Get("currentUser")
	user, _ := v.(models.User)
	return user
}

// pagination reads ?page= and ?limit= with the defaults every list shares.
func pagination(c *gin.Context) (page, limit, skip int64) {
	page, _ = strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if limit < 1 {
		limit = 50
	}
	return page, limit, (page - 1) * limit
}

// idParam parses the :id path segment. A malformed id behaves like an absent
// document so ids cannot be probed.
func idParam(c *gin.Context) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.Param("id"))
}

// parseDate accepts RFC 3339 timestamps and bare yyyy-mm-dd dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// reserved update fields clients may not touch.
var protectedFields = map[string]bool{
	"_id":       true,
	"id":        true,
	"churchId":  true,
	"createdAt": true,
	"updatedAt": true,
}

// bindUpdate reads a partial-update body and scrubs identity, tenancy and
// timestamp fields along with any operator keys.
func bindUpdate(c *gin.Context) (bson.M, error) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, err
	}
	fields := bson.M{}
	for k, v := range body {
		if protectedFields[k] || strings.HasPrefix(k, "$") {
			continue
		}
		fields[k] = scrubValue(v)
	}
	return fields, nil
}

// scrubValue removes operator keys from nested objects so a crafted body
// cannot smuggle update operators through a field value.
func scrubValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := map[string]any{}
		for k, inner := range t {
			if strings.HasPrefix(k, "$") {
				continue
			}
			out[k] = scrubValue(inner)
		}
		return out
	case []any:
		out := make([]any, 0, len(t))
		for _, inner := range t {
			out = append(out, scrubValue(inner))
		}
		return out
	}
	return v
}

// generateToken signs a 7-day (configurable) HS256 token carrying the user id.
func generateToken(userID primitive.ObjectID) (string, error) {
	expiresHours := 168
	if v := os.Getenv("JWT_EXPIRES_HOURS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			expiresHours = parsed
		}
	}

	claims := jwt.MapClaims{
		"id":  userID.Hex(),
		"exp": float64(time.Now().Add(time.Duration(expiresHours) * time.Hour).Unix()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
