package middlewares

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ChurchLoop/repositories"
)

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   message,
	})
}

func CheckAuth(c *gin.Context) {

	authHeader := c.GetHeader("Authorization")

	if authHeader == "" {
		abortUnauthorized(c, "Not authorized to access this route")
		return
	}

	authToken := strings.Split(authHeader, " ")
	if len(authToken) != 2 || authToken[0] != "Bearer" {
		abortUnauthorized(c, "Not authorized to access this route")
		return
	}

	tokenString := authToken[1]
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		abortUnauthorized(c, "Not authorized to access this route")
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		abortUnauthorized(c, "Not authorized to access this route")
		return
	}

	if exp, ok := claims["exp"].(float64); !ok || float64(time.Now().Unix()) > exp {
		abortUnauthorized(c, "Not authorized to access this route")
		return
	}

	idHex, _ := claims["id"].(string)
	userID, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		abortUnauthorized(c, "Not authorized to access this route")
		return
	}

	user, err := repositories.Users.FindOne(c.Request.Context(), bson.M{"_id": userID})
	if err != nil {
		abortUnauthorized(c, "User no longer exists")
		return
	}
	if !user.IsActive {
		abortUnauthorized(c, "User account is deactivated")
		return
	}

	c.Set("currentUser", *user)

	c.Next()

}
