package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/ChurchLoop/models"
	"github.com/ChurchLoop/repositories"
	"github.com/ChurchLoop/services"
)

// Register creates a church and its first administrator in one step.
func Register(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Email uniqueness is global across churches.
	_, err := repositories.Users.FindOne(c.Request.Context(), bson.M{"email": email})
	if err == nil {
		respondError(c, http.StatusBadRequest, "User already exists")
		return
	}
	if err != repositories.ErrNotFound {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	church := models.NewChurch(input.ChurchName)
	if err := repositories.Churches.Insert(c.Request.Context(), &church); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	user := models.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      "admin",
		ChurchID:  church.ID,
		IsActive:  true,
	}
	if err := repositories.Users.Insert(c.Request.Context(), &user); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := generateToken(user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if err := services.GetEmailService().SendWelcomeEmail(user.Email, user.FirstName, church.Name); err != nil {
		log.Printf("welcome email to %s failed: %v", user.Email, err)
	}

	respondCreated(c, gin.H{
		"user":  user.Public(),
		"token": token,
	})
}

// Login verifies credentials and issues a fresh token. Unknown email and wrong
// password produce the same response.
func Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := repositories.Users.FindOne(c.Request.Context(), bson.M{"email": email})
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := generateToken(user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, gin.H{
		"user":  user.Public(),
		"token": token,
	})
}
